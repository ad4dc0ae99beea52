package domain

import "time"

// Window names.
const (
	WindowRegistration = "registration"
	WindowWorkshops    = "workshops"
	WindowContest      = "contest"
	WindowAttendance   = "attendance"
)

// Window is an inclusive [Start, End] range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether both bounds are set and ordered.
func (w Window) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && !w.End.Before(w.Start)
}

// Contains is inclusive on both ends and false for an invalid window.
func (w Window) Contains(t time.Time) bool {
	if !w.Valid() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// Windows evaluates the configured windows against a clock.
type Windows struct {
	fixed            map[string]Window
	attendanceBefore time.Duration
	attendanceAfter  time.Duration
	now              func() time.Time
}

// NewWindows builds an evaluator. A nil clock means time.Now.
func NewWindows(fixed map[string]Window, attendanceBefore, attendanceAfter time.Duration, now func() time.Time) *Windows {
	if now == nil {
		now = time.Now
	}
	copied := make(map[string]Window, len(fixed))
	for name, w := range fixed {
		copied[name] = w
	}
	return &Windows{
		fixed:            copied,
		attendanceBefore: attendanceBefore,
		attendanceAfter:  attendanceAfter,
		now:              now,
	}
}

// Now returns the evaluator's current instant.
func (w *Windows) Now() time.Time {
	return w.now()
}

// Lookup resolves a window. For WindowAttendance, reference is the activity
// start and the window is built around it.
func (w *Windows) Lookup(name string, reference time.Time) (Window, bool) {
	if name == WindowAttendance {
		if reference.IsZero() {
			return Window{}, false
		}
		return Window{
			Start: reference.Add(-w.attendanceBefore),
			End:   reference.Add(w.attendanceAfter),
		}, true
	}
	win, ok := w.fixed[name]
	if !ok || !win.Valid() {
		return Window{}, false
	}
	return win, true
}

// IsWithinWindow reports whether the action guarded by name is permitted now.
// Unknown or incomplete windows fail closed.
func (w *Windows) IsWithinWindow(name string, reference time.Time) bool {
	win, ok := w.Lookup(name, reference)
	if !ok {
		return false
	}
	return win.Contains(w.now())
}

// Require returns a *WindowError when the window is closed.
func (w *Windows) Require(name string, reference time.Time) error {
	if !w.IsWithinWindow(name, reference) {
		return &WindowError{Window: name}
	}
	return nil
}
