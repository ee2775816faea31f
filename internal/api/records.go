package api

import (
	"net/http"

	"github.com/quillworks/mimic/internal/store"
)

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.catalog.ListGenerationRecords(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	if records == nil {
		records = []store.GenerationRecord{}
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "records": records})
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := s.catalog.GetGenerationRecord(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "record": rec})
}
