package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/quillworks/mimic/internal/agent"
	"github.com/quillworks/mimic/internal/intake"
	"github.com/quillworks/mimic/internal/llm"
	"github.com/quillworks/mimic/internal/store"
	"github.com/quillworks/mimic/internal/styletransfer"
)

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func failWith(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]any{"success": false, "error": msg})
}

// fail maps a domain error onto the wire: missing rows are 404, delete
// guards are 409, model replies that broke the contract are 422, upstream
// outages are 502, everything else is a 500.
func fail(w http.ResponseWriter, err error) {
	failWith(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	var (
		malformed *agent.MalformedReplyError
		violation *agent.SchemaViolationError
		integrity *store.ReferentialIntegrityError
		upstream  *llm.APIError
		scraper   *intake.UpstreamError
		invalid   validation.Errors
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &integrity):
		return http.StatusConflict
	case errors.As(err, &malformed), errors.As(err, &violation),
		errors.Is(err, styletransfer.ErrLevelMismatch):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream), errors.As(err, &scraper):
		return http.StatusBadGateway
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
