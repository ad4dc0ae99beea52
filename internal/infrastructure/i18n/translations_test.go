package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("es", nil)

	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{
			name: "default locale",
			key:  "enroll.waitlisted",
			want: "El taller está lleno: quedaste en lista de espera.",
		},
		{
			name:   "english tag",
			locale: "en",
			key:    "enroll.waitlisted",
			want:   "Workshop full: you were added to the waitlist.",
		},
		{
			name:   "accept-language header",
			locale: "en-US,en;q=0.9,es;q=0.5",
			key:    "error.already_enrolled",
			want:   "You are already enrolled in a workshop. Cancel it to pick another one.",
		},
		{
			name:   "unsupported locale falls back to default",
			locale: "fr",
			key:    "cancel.done",
			want:   "Inscripción cancelada.",
		},
		{
			name: "template data",
			key:  "certificate.not_eligible",
			data: map[string]any{"Count": 1, "Required": 2},
			want: "Llevas 1 de 2 asistencias necesarias para la constancia.",
		},
		{
			name: "unknown key returns the key",
			key:  "does.not.exist",
			want: "does.not.exist",
		},
		{
			name: "empty key",
			key:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.T(tt.locale, tt.key, tt.data))
		})
	}
}

func TestTranslator_EveryKeyInBothLanguages(t *testing.T) {
	tr := NewTranslator("es", nil)
	keys := []string{
		"error.participant_not_found", "error.workshop_not_found", "error.activity_not_found",
		"error.enrollment_not_found", "error.not_found", "error.already_enrolled",
		"error.email_taken", "error.wristband_taken", "error.attendance_recorded",
		"error.already_in_team", "error.duplicate", "error.out_of_window",
		"error.capacity_race", "error.state_taken", "error.validation", "error.internal",
		"enroll.enrolled", "enroll.waitlisted", "cancel.done", "attendance.recorded",
		"certificate.eligible", "certificate.not_eligible", "notify.promoted",
		"occupancy.title", "occupancy.empty", "occupancy.line",
	}
	for _, key := range keys {
		es := tr.T("es", key, nil)
		en := tr.T("en", key, nil)
		assert.NotEqual(t, key, es, key)
		assert.NotEqual(t, key, en, key)
		assert.NotEqual(t, es, en, key)
	}
}

func TestTranslator_Match(t *testing.T) {
	tr := NewTranslator("es", nil)

	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.Spanish},
		{"en", language.English},
		{"en-US", language.English},
		{"es-MX", language.Spanish},
		{"de-DE,en;q=0.8", language.English},
		{"fr", language.Spanish},
		{"not a header;;", language.Spanish},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.locale))
		})
	}
}

func TestNewTranslator_BadDefaultFallsBackToSpanish(t *testing.T) {
	tr := NewTranslator("???", nil)
	assert.Equal(t, language.Spanish, tr.Match(""))
	assert.Equal(t, "Inscripción cancelada.", tr.T("", "cancel.done", nil))
}
