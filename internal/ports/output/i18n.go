package output

// T renders user-facing messages. Keys follow the domain.Code values
// ("error.already_enrolled") plus outcome keys ("enroll.waitlisted").
type T interface {
	// T renders key for locale, an Accept-Language value or a tag like "es".
	// data fills template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
