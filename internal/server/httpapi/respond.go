package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/learnable-edu/learnable/internal/common"
)

// request bodies above this size are rejected outright
const maxBodySize = 1 << 20

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(context.Background(), "encoding response", "error", err)
	}
}

func (s *Server) respondDetail(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}

// respondError maps a service error onto a status code. Unknown errors are
// logged and reported as a generic 500 so internals never leak to callers.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorInvalidInput),
		errors.Is(err, common.ErrorDuplicateEmail):
		s.respondDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorUnauthenticated),
		errors.Is(err, common.ErrInvalidToken):
		s.respondDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		s.respondDetail(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.respondDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses a JSON request body into dst. Unknown fields are
// rejected so client typos surface as 400s instead of silent drops.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			s.respondDetail(w, http.StatusBadRequest, "empty request body")
			return false
		}
		s.respondDetail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
