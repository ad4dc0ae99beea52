package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congreso/internal/application"
	"congreso/internal/domain"
	"congreso/internal/infrastructure/i18n"
	"congreso/internal/infrastructure/memory"
)

var testNow = time.Date(2026, 11, 3, 10, 0, 0, 0, time.UTC)

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method: method, route: route, status: status})
}

func openWindows() map[string]domain.Window {
	open := domain.Window{Start: testNow.Add(-24 * time.Hour), End: testNow.Add(24 * time.Hour)}
	return map[string]domain.Window{
		domain.WindowRegistration: open,
		domain.WindowWorkshops:    open,
		domain.WindowContest:      open,
	}
}

func newTestRouter(t *testing.T, fixed map[string]domain.Window, rec RequestRecorder) http.Handler {
	t.Helper()
	windows := domain.NewWindows(fixed, 15*time.Minute, 15*time.Minute, func() time.Time { return testNow })
	deps := application.Deps{Store: memory.New(), Windows: windows}
	h := NewHandler(Services{
		Participants: application.NewParticipantService(deps),
		Activities:   application.NewActivityService(deps),
		Enrollments:  application.NewEnrollmentService(deps),
		Attendance:   application.NewAttendanceService(deps),
		Teams:        application.NewTeamService(deps),
	}, windows, i18n.NewTranslator("es", nil), time.UTC, nil)
	return NewRouter(h, RouterOptions{Recorder: rec})
}

func do(t *testing.T, h http.Handler, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func registerParticipant(t *testing.T, h http.Handler, email string) uint {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/participants", map[string]string{
		"email":            email,
		"first_name":       "ana",
		"paternal_surname": "lópez",
		"category":         "student",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[participantResponse](t, rr).ID
}

func createWorkshop(t *testing.T, h http.Handler, capacity int) uint {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/activities", map[string]any{
		"title":        "Go concurrency",
		"starts_at":    testNow.Add(5 * time.Minute).Format(time.RFC3339),
		"ends_at":      "03/11/2026 12:00",
		"type":         "workshop",
		"max_capacity": capacity,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[activityResponse](t, rr).ID
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)
	rr := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRegisterParticipant(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)

	rr := do(t, h, http.MethodPost, "/participants", map[string]string{
		"email":            "  Ana@Example.com ",
		"first_name":       "ana maría",
		"paternal_surname": "lópez",
		"category":         "student",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	p := decode[participantResponse](t, rr)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, "Ana María López", p.FullName)

	rr = do(t, h, http.MethodGet, fmt.Sprintf("/participants/%d", p.ID), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/participants", map[string]string{
		"email":            "ana@example.com",
		"first_name":       "Otra",
		"paternal_surname": "Persona",
		"category":         "external",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "email_taken", decode[errorResponse](t, rr).Error)
}

func TestErrorMapping(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"unknown participant", http.MethodGet, "/participants/999", nil, http.StatusNotFound, "participant_not_found"},
		{"non numeric id", http.MethodGet, "/participants/abc", nil, http.StatusBadRequest, "validation"},
		{"unknown field", http.MethodPost, "/participants", map[string]string{"nickname": "x"}, http.StatusBadRequest, "validation"},
		{"bad category", http.MethodPost, "/participants", map[string]string{
			"email": "a@b.mx", "first_name": "A", "paternal_surname": "B", "category": "vip",
		}, http.StatusBadRequest, "validation"},
		{"unknown workshop occupancy", http.MethodGet, "/activities/42/occupancy", nil, http.StatusNotFound, "workshop_not_found"},
		{"bad activity time", http.MethodPost, "/activities", map[string]any{
			"title": "x", "starts_at": "mañana", "ends_at": "", "type": "workshop", "max_capacity": 1,
		}, http.StatusBadRequest, "validation"},
		{"unknown window", http.MethodGet, "/windows/lunch", nil, http.StatusBadRequest, "validation"},
		{"attendance window without activity", http.MethodGet, "/windows/attendance", nil, http.StatusBadRequest, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			resp := decode[errorResponse](t, rr)
			assert.Equal(t, tt.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestRequestShapeIsValidated(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		message string
	}{
		{"enroll without participant", http.MethodPost, "/activities/1/enrollments", map[string]any{},
			"Datos inválidos: participant_id (required)."},
		{"attendance with zero participant", http.MethodPost, "/activities/1/attendance", map[string]any{"participant_id": 0},
			"Datos inválidos: participant_id (required)."},
		{"active flag missing", http.MethodPut, "/activities/1/active", map[string]any{},
			"Datos inválidos: active (required)."},
		{"team member left blank", http.MethodPost, "/teams", map[string]any{
			"name": "Equipo", "state": "Jalisco", "captain_email": "c@example.com",
			"member_emails": []string{"a@example.com", ""},
		}, "Datos inválidos: member_emails[1] (required)."},
		{"negative capacity", http.MethodPost, "/activities", map[string]any{
			"title": "x", "starts_at": "01/11/2026 09:00", "ends_at": "01/11/2026 10:00", "type": "forum", "max_capacity": -1,
		}, "Datos inválidos: max_capacity (min=0)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			resp := decode[errorResponse](t, rr)
			assert.Equal(t, "validation", resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestErrorMessageIsTranslated(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)

	rr := do(t, h, http.MethodGet, "/participants/7", nil)
	assert.Equal(t, "Participante no encontrado.", decode[errorResponse](t, rr).Message)

	rr = do(t, h, http.MethodGet, "/participants/7", nil, "Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, "Participant not found.", decode[errorResponse](t, rr).Message)
}

func TestClosedWindowIsUnprocessable(t *testing.T) {
	h := newTestRouter(t, map[string]domain.Window{}, nil)

	rr := do(t, h, http.MethodPost, "/participants", map[string]string{
		"email": "a@b.mx", "first_name": "A", "paternal_surname": "B", "category": "student",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "out_of_window", decode[errorResponse](t, rr).Error)

	rr = do(t, h, http.MethodGet, "/windows/registration", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	w := decode[windowResponse](t, rr)
	assert.False(t, w.Open)
	assert.Nil(t, w.OpensAt)
}

func TestWorkshopLifecycle(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)

	first := registerParticipant(t, h, "first@example.com")
	second := registerParticipant(t, h, "second@example.com")
	workshop := createWorkshop(t, h, 1)
	enrollPath := fmt.Sprintf("/activities/%d/enrollments", workshop)

	rr := do(t, h, http.MethodPost, enrollPath, participantRef{ParticipantID: first}, "Accept-Language", "en")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	e := decode[enrollmentResponse](t, rr)
	assert.Equal(t, domain.StatusEnrolled, e.Status)
	assert.Equal(t, "Enrollment confirmed.", e.Message)

	rr = do(t, h, http.MethodPost, enrollPath, participantRef{ParticipantID: second})
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
	assert.Equal(t, domain.StatusWaitlisted, decode[enrollmentResponse](t, rr).Status)

	rr = do(t, h, http.MethodPost, enrollPath, participantRef{ParticipantID: second})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "already_enrolled", decode[errorResponse](t, rr).Error)

	rr = do(t, h, http.MethodGet, fmt.Sprintf("/activities/%d/occupancy", workshop), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	occ := decode[occupancyResponse](t, rr)
	assert.Equal(t, 1, occ.EnrolledCount)
	assert.Equal(t, 1, occ.WaitlistCount)
	assert.Equal(t, 0, occ.AvailableSeats)
	assert.Equal(t, domain.OccupancyFull, occ.Status)
	assert.Equal(t, "red", occ.Color)

	rr = do(t, h, http.MethodGet, fmt.Sprintf("/activities/%d/waitlist", workshop), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	waitlist := decode[[]enrollmentResponse](t, rr)
	require.Len(t, waitlist, 1)
	assert.Equal(t, second, waitlist[0].ParticipantID)

	rr = do(t, h, http.MethodDelete, fmt.Sprintf("%s/%d", enrollPath, first), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, domain.StatusCancelled, decode[enrollmentResponse](t, rr).Status)

	rr = do(t, h, http.MethodGet, fmt.Sprintf("%s/%d", enrollPath, second), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, enrollmentStatusResponse{Enrolled: true}, decode[enrollmentStatusResponse](t, rr))

	rr = do(t, h, http.MethodDelete, fmt.Sprintf("%s/%d", enrollPath, first), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "enrollment_not_found", decode[errorResponse](t, rr).Error)

	rr = do(t, h, http.MethodGet, "/workshops/occupancy", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	all := decode[[]workshopOccupancyResponse](t, rr)
	require.Len(t, all, 1)
	assert.Equal(t, workshop, all[0].Activity.ID)
	assert.Equal(t, 0, all[0].Occupancy.WaitlistCount)
}

func TestInactiveWorkshopRejectsEnrollment(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)
	p := registerParticipant(t, h, "p@example.com")
	workshop := createWorkshop(t, h, 5)

	rr := do(t, h, http.MethodPut, fmt.Sprintf("/activities/%d/active", workshop), map[string]bool{"active": false})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.False(t, decode[activityResponse](t, rr).Active)

	rr = do(t, h, http.MethodPost, fmt.Sprintf("/activities/%d/enrollments", workshop), participantRef{ParticipantID: p})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "workshop_not_found", decode[errorResponse](t, rr).Error)
}

func TestAttendanceAndCertificate(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)
	p := registerParticipant(t, h, "p@example.com")
	first := createWorkshop(t, h, 10)
	second := createWorkshop(t, h, 10)

	rr := do(t, h, http.MethodGet, fmt.Sprintf("/windows/attendance?activity_id=%d", first), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[windowResponse](t, rr).Open)

	path := fmt.Sprintf("/activities/%d/attendance", first)
	rr = do(t, h, http.MethodPost, path, participantRef{ParticipantID: p})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, domain.AttendancePresent, decode[attendanceResponse](t, rr).Status)

	rr = do(t, h, http.MethodPost, path, participantRef{ParticipantID: p})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "attendance_recorded", decode[errorResponse](t, rr).Error)

	certPath := fmt.Sprintf("/participants/%d/certificate", p)
	rr = do(t, h, http.MethodGet, certPath, nil, "Accept-Language", "en")
	require.Equal(t, http.StatusOK, rr.Code)
	cert := decode[certificateResponse](t, rr)
	assert.False(t, cert.Eligible)
	assert.Equal(t, 1, cert.Attendances)
	assert.Empty(t, cert.Folio)
	assert.Equal(t, "You have 1 of the 2 attendances needed for a certificate.", cert.Message)

	rr = do(t, h, http.MethodPost, fmt.Sprintf("/activities/%d/attendance", second), participantRef{ParticipantID: p})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodGet, certPath, nil)
	cert = decode[certificateResponse](t, rr)
	assert.True(t, cert.Eligible)
	assert.Equal(t, application.CertificateFolio("p@example.com"), cert.Folio)
}

func TestTeams(t *testing.T) {
	h := newTestRouter(t, openWindows(), nil)
	emails := make([]string, 6)
	for i := range emails {
		emails[i] = fmt.Sprintf("member%d@example.com", i)
		registerParticipant(t, h, emails[i])
	}

	rr := do(t, h, http.MethodPost, "/teams", map[string]any{
		"name":          "Gophers",
		"state":         "jalisco",
		"captain_email": emails[0],
		"member_emails": emails[1:],
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	team := decode[teamResponse](t, rr)
	assert.Equal(t, "Jalisco", team.State)
	assert.Len(t, team.MemberIDs, 6)

	rr = do(t, h, http.MethodGet, "/contest/states", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	slots := decode[[]stateSlotResponse](t, rr)
	require.Len(t, slots, len(domain.ContestStates))
	for _, s := range slots {
		assert.Equal(t, s.State == "Jalisco", s.Taken, s.State)
	}

	rr = do(t, h, http.MethodGet, "/teams", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]teamResponse](t, rr), 1)
}

func TestAccessLogRecordsRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestRouter(t, openWindows(), rec)

	do(t, h, http.MethodGet, "/participants/12", nil)
	do(t, h, http.MethodGet, "/health", nil)
	for i := 0; i < 3; i++ {
		do(t, h, http.MethodGet, fmt.Sprintf("/wp-admin/scan-%d", i), nil)
	}

	require.Len(t, rec.requests, 5)
	assert.Equal(t, recordedRequest{method: http.MethodGet, route: "/participants/{id}", status: http.StatusNotFound}, rec.requests[0])
	assert.Equal(t, recordedRequest{method: http.MethodGet, route: "/health", status: http.StatusOK}, rec.requests[1])
	for _, got := range rec.requests[2:] {
		assert.Equal(t, recordedRequest{method: http.MethodGet, route: unmatchedRoute, status: http.StatusNotFound}, got)
	}
}
