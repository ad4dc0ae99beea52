package discord

import (
	"errors"

	"congreso/internal/domain"
	"congreso/internal/ports/output"
)

// ErrorMessage resolves err to a translated, user-facing message.
// Errors without a domain code get the generic internal message.
func ErrorMessage(tr output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	code := domain.Code(err)
	if code == "" {
		return tr.T(locale, "error.internal", nil)
	}
	var data map[string]any
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		data = map[string]any{"Field": verr.Field, "Reason": verr.Reason}
	}
	return tr.T(locale, "error."+code, data)
}
