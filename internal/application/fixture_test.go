package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/infrastructure/memory"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
)

var testNow = time.Date(2026, 11, 3, 10, 0, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type promotion struct {
	activityID    uint
	participantID uint
}

type recordingNotifier struct {
	mu         sync.Mutex
	promotions []promotion
	err        error
}

func (n *recordingNotifier) WaitlistPromoted(_ context.Context, a *entities.Activity, p *entities.Participant) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.promotions = append(n.promotions, promotion{activityID: a.ID, participantID: p.ID})
	return n.err
}

type countingMetrics struct {
	mu         sync.Mutex
	resolved   map[string]int
	promoted   int
	attendance int
	rejected   map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{resolved: map[string]int{}, rejected: map[string]int{}}
}

func (m *countingMetrics) EnrollmentResolved(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved[status]++
}

func (m *countingMetrics) WaitlistPromoted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promoted++
}

func (m *countingMetrics) AttendanceRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance++
}

func (m *countingMetrics) Rejected(operation, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[operation+"/"+code]++
}

// racingStore fails the first n units of work with a capacity race.
type racingStore struct {
	output.UnitOfWork
	mu       sync.Mutex
	failures int
	calls    int
}

func (s *racingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos output.Repositories) error) error {
	s.mu.Lock()
	s.calls++
	fail := s.failures > 0
	if fail {
		s.failures--
	}
	s.mu.Unlock()
	if fail {
		return fmt.Errorf("commit: %w", domain.ErrCapacityRace)
	}
	return s.UnitOfWork.WithinTx(ctx, fn)
}

type fixture struct {
	store    output.UnitOfWork
	clock    *testClock
	notifier *recordingNotifier
	metrics  *countingMetrics

	participants *ParticipantService
	activities   *ActivityService
	enrollments  *EnrollmentService
	attendance   *AttendanceService
	teams        *TeamService
}

func openWindows() map[string]domain.Window {
	open := domain.Window{Start: testNow.Add(-24 * time.Hour), End: testNow.Add(24 * time.Hour)}
	return map[string]domain.Window{
		domain.WindowRegistration: open,
		domain.WindowWorkshops:    open,
		domain.WindowContest:      open,
	}
}

func newFixture(t testing.TB) *fixture {
	return newFixtureWith(t, memory.New(), openWindows())
}

func newFixtureWith(t testing.TB, store output.UnitOfWork, fixed map[string]domain.Window) *fixture {
	t.Helper()
	f := &fixture{
		store:    store,
		clock:    &testClock{t: testNow},
		notifier: &recordingNotifier{},
		metrics:  newCountingMetrics(),
	}
	deps := Deps{
		Store:    store,
		Windows:  domain.NewWindows(fixed, 15*time.Minute, 15*time.Minute, f.clock.Now),
		Logger:   zap.NewNop(),
		Metrics:  f.metrics,
		Notifier: f.notifier,
	}
	f.participants = NewParticipantService(deps)
	f.activities = NewActivityService(deps)
	f.enrollments = NewEnrollmentService(deps)
	f.attendance = NewAttendanceService(deps)
	f.teams = NewTeamService(deps)
	return f
}

// promotions waits for background announcements and returns what was sent.
func (f *fixture) promotions(t testing.TB) []promotion {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.enrollments.Shutdown(ctx))
	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	return append([]promotion(nil), f.notifier.promotions...)
}

func (f *fixture) participant(t testing.TB, email string) *entities.Participant {
	t.Helper()
	p, err := f.participants.Register(context.Background(), input.RegisterParticipant{
		Email:           email,
		FirstName:       "Ana",
		PaternalSurname: "López",
		Category:        domain.CategoryStudent,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) participantsN(t testing.TB, n int) []*entities.Participant {
	t.Helper()
	out := make([]*entities.Participant, n)
	for i := range out {
		out[i] = f.participant(t, fmt.Sprintf("p%03d@example.com", i))
	}
	return out
}

func (f *fixture) activity(t testing.TB, activityType string, capacity int) *entities.Activity {
	t.Helper()
	a, err := f.activities.CreateActivity(context.Background(), input.CreateActivity{
		Title:       "Introducción a Go",
		StartsAt:    testNow.Add(5 * time.Minute),
		EndsAt:      testNow.Add(2 * time.Hour),
		Type:        activityType,
		MaxCapacity: capacity,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) workshop(t testing.TB, capacity int) *entities.Activity {
	return f.activity(t, domain.ActivityWorkshop, capacity)
}

func (f *fixture) statusOf(t testing.TB, participantID, activityID uint) string {
	t.Helper()
	e, err := f.store.Enrollments().FindActive(context.Background(), participantID, activityID)
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		return domain.StatusCancelled
	}
	require.NoError(t, err)
	return e.Status
}
