package entities

import "time"

// Attendance is a one-time mark that a participant was at an activity.
type Attendance struct {
	ID            uint
	ParticipantID uint
	ActivityID    uint
	Status        string
	RecordedAt    time.Time
}

// Eligibility is the certificate decision for one participant.
type Eligibility struct {
	ParticipantID uint
	Eligible      bool
	Count         int
	Required      int
	Folio         string // set only when eligible
}
