// Package validate runs go-playground/validator tag checks and reports the
// first failure as a *domain.ValidationError.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"congreso/internal/domain"
)

// v is safe for concurrent use and caches struct metadata.
var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	// mailbox is a plain address whose domain is fully qualified.
	if err := v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return isMailbox(v, fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func isMailbox(v *validator.Validate, s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	return v.Var(s, "email") == nil && v.Var(s[at+1:], "fqdn") == nil
}

// Struct validates the `validate` tags of s.
func Struct(s any) error {
	return translate("", v.Struct(s))
}

// Var validates a single value against tag and reports failures under field.
func Var(field string, value any, tag string) error {
	return translate(field, v.Var(value, tag))
}

func translate(field string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := verrs[0]
	name := fe.Field()
	if name == "" {
		name = field
	}
	return domain.Invalid(name, reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "required"
	case "email", "mailbox":
		return "not a valid address"
	case "unique":
		return "values must be distinct"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "len":
		return "must have exactly " + fe.Param() + " items"
	case "gtfield":
		return "must be after " + snakeCase(fe.Param())
	}
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

// fieldName reports fields by their JSON name, or the snake_case of the Go
// name for untagged structs.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return snakeCase(f.Name)
	}
	return name
}

// snakeCase keeps initialisms together: ParticipantID becomes participant_id.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
