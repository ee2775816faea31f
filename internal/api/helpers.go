package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type validatable interface {
	Validate() error
}

func decodeValid(r *http.Request, dst validatable) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return dst.Validate()
}

func idParam(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}
