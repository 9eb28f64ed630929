package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_agency/internal/adapters/auth"
	"travel_agency/internal/app"
	"travel_agency/internal/domain"
)

const maxJSONBody = 1 << 20

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Values any               `json:"values,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses. Anything unknown is
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		ie *domain.IntegrityError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, problem{Title: "Not Found", Status: http.StatusNotFound, Detail: "resource not found"})
	case errors.As(err, &ve):
		writeProblem(w, problem{Title: "Validation Failed", Status: http.StatusUnprocessableEntity, Errors: ve.Fields})
	case errors.As(err, &ie):
		writeProblem(w, problem{Title: "Conflict", Status: http.StatusConflict, Detail: integrityDetail(ie)})
	case errors.Is(err, domain.ErrThrottled):
		writeProblem(w, problem{Title: "Too Many Requests", Status: http.StatusTooManyRequests, Detail: "please wait before sending another message"})
	case errors.Is(err, app.ErrUploadsDisabled):
		writeProblem(w, problem{Title: "Service Unavailable", Status: http.StatusServiceUnavailable, Detail: err.Error()})
	case errors.Is(err, auth.ErrNotStaff):
		writeProblem(w, problem{Title: "Forbidden", Status: http.StatusForbidden, Detail: "staff only"})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, problem{Title: "Internal Server Error", Status: http.StatusInternalServerError})
	}
}

func integrityDetail(ie *domain.IntegrityError) string {
	switch ie.Kind {
	case domain.IntegrityUnique:
		return "a record with the same name or slug already exists"
	case domain.IntegrityForeignKey:
		return "a referenced record does not exist or is still in use"
	}
	return "the record violates a data constraint"
}

func methodNotAllowed(allow ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", strings.Join(allow, ", "))
		writeProblem(w, problem{Title: "Method Not Allowed", Status: http.StatusMethodNotAllowed,
			Detail: "this resource is read-only"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, problem{Title: "Bad Request", Status: http.StatusBadRequest, Detail: "body must be valid JSON"})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, problem{Title: "Invalid ID", Status: http.StatusBadRequest, Detail: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

/********** query parameters **********/

func qBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func qInt64(r *http.Request, key string) *int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// qInt returns def when key is absent or outside [1, max].
func qInt(r *http.Request, key string, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 || n > max {
		return def
	}
	return n
}

// qPage turns ?page=N into an offset for size-sized pages.
func qPage(r *http.Request, size int) int {
	return (qInt(r, "page", 1, 100000) - 1) * size
}
