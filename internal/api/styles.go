package api

import (
	"net/http"
	"time"

	"github.com/quillworks/mimic/internal/agent"
	"github.com/quillworks/mimic/internal/store"
)

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeRequest
	if err := decodeValid(r, &req); err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.orch.Analyze(r.Context(), req.Title, req.Content)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"success": true,
		"analysis": agent.StyleFields{
			StyleName:   rec.StyleName,
			FeatureDesc: rec.FeatureDesc,
			Category:    rec.Category,
		},
		"record_id":      rec.ID,
		"execution_time": time.Since(start).Seconds(),
	})
}

type batchAnalysis struct {
	URL      string            `json:"url"`
	Analysis agent.StyleFields `json:"analysis"`
	RecordID int64             `json:"record_id"`
}

func (s *Server) analyzeURLs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeURLsRequest
	if err := decodeValid(r, &req); err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	notes, result, err := s.orch.AnalyzeFromSources(r.Context(), req.URLs)
	if err != nil {
		fail(w, err)
		return
	}

	analyses := make([]batchAnalysis, 0, len(result.Items))
	for _, item := range result.Items {
		analyses = append(analyses, batchAnalysis{
			URL:      item.Note.URL,
			Analysis: item.Analysis,
			RecordID: item.Record.ID,
		})
	}

	respond(w, http.StatusOK, map[string]any{
		"success":        true,
		"notes":          notes,
		"analyses":       analyses,
		"skipped":        result.Skipped,
		"execution_time": time.Since(start).Seconds(),
	})
}

func (s *Server) rewrite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req rewriteRequest
	if err := decodeValid(r, &req); err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.orch.Rewrite(r.Context(), req.StyleID, req.UserTask, req.WordCount)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"success":        true,
		"title":          result.Post.Title,
		"content":        result.Post.Content,
		"tags":           result.Post.Tags,
		"style_name":     result.StyleName,
		"word_count":     result.WordCount,
		"execution_time": time.Since(start).Seconds(),
	})
}

func (s *Server) listStyles(w http.ResponseWriter, r *http.Request) {
	var (
		styles []store.StyleRecord
		err    error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		styles, err = s.catalog.ListStylesByCategory(r.Context(), category)
	} else {
		styles, err = s.catalog.ListStyles(r.Context())
	}
	if err != nil {
		fail(w, err)
		return
	}
	if styles == nil {
		styles = []store.StyleRecord{}
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "styles": styles})
}

func (s *Server) getStyle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := s.catalog.GetStyle(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "style": rec})
}

func (s *Server) updateStyle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateStyleRequest
	if err := decodeValid(r, &req); err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.catalog.UpdateStyle(r.Context(), id, store.StyleUpdate{
		StyleName:   req.StyleName,
		FeatureDesc: req.FeatureDesc,
		Category:    req.Category,
		SampleTitle: req.SampleTitle,
	})
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "style": rec})
}

func (s *Server) deleteStyle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.catalog.DeleteStyle(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true})
}
