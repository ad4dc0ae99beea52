package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/pkg/validate"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads one JSON object into dst and checks its `validate` tags.
// Shape errors come back as *domain.ValidationError.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("body", err.Error())
	}
	return validate.Struct(dst)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyEnrolled),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrStateTaken),
		errors.Is(err, domain.ErrCapacityRace):
		return http.StatusConflict
	case errors.Is(err, domain.ErrOutOfWindow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError renders err as a translated message. Errors without a domain
// code are logged and answered with a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := r.Header.Get("Accept-Language")
	code := domain.Code(err)
	if code == "" {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal",
			Message: h.tr.T(locale, "error.internal", nil),
		})
		return
	}

	var data map[string]any
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		data = map[string]any{"Field": verr.Field, "Reason": verr.Reason}
	}
	writeJSON(w, statusFor(err), errorResponse{
		Error:   code,
		Message: h.tr.T(locale, "error."+code, data),
	})
}

func (h *Handler) message(r *http.Request, key string, data map[string]any) string {
	return h.tr.T(r.Header.Get("Accept-Language"), key, data)
}

// idParam reads a positive integer path parameter.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return uint(id), nil
}

func queryID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return uint(id), nil
}
