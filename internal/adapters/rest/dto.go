package rest

import (
	"time"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
)

type registerParticipantRequest struct {
	Email           string `json:"email" validate:"required,max=254"`
	FirstName       string `json:"first_name" validate:"required,max=100"`
	PaternalSurname string `json:"paternal_surname" validate:"required,max=100"`
	MaternalSurname string `json:"maternal_surname" validate:"max=100"`
	Category        string `json:"category" validate:"required"`
	Program         string `json:"program" validate:"max=200"`
}

type wristbandRequest struct {
	Wristband string `json:"wristband" validate:"required"`
}

// Times accept RFC 3339 or DD/MM/YYYY HH:MM in the event time zone.
type createActivityRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartsAt    string `json:"starts_at" validate:"required"`
	EndsAt      string `json:"ends_at" validate:"required"`
	Location    string `json:"location"`
	Type        string `json:"type" validate:"required"`
	MaxCapacity int    `json:"max_capacity" validate:"min=0"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type participantRef struct {
	ParticipantID uint `json:"participant_id" validate:"required"`
}

type registerTeamRequest struct {
	Name         string   `json:"name" validate:"required"`
	State        string   `json:"state" validate:"required"`
	CaptainEmail string   `json:"captain_email" validate:"required"`
	MemberEmails []string `json:"member_emails" validate:"required,dive,required"`
}

func (r registerTeamRequest) toInput() input.RegisterTeam {
	return input.RegisterTeam{
		Name:         r.Name,
		State:        r.State,
		CaptainEmail: r.CaptainEmail,
		MemberEmails: r.MemberEmails,
	}
}

type participantResponse struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	PaternalSurname string    `json:"paternal_surname"`
	MaternalSurname string    `json:"maternal_surname,omitempty"`
	FullName        string    `json:"full_name"`
	Category        string    `json:"category"`
	Program         string    `json:"program,omitempty"`
	Wristband       string    `json:"wristband,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toParticipantResponse(p *entities.Participant) participantResponse {
	return participantResponse{
		ID:              p.ID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		PaternalSurname: p.PaternalSurname,
		MaternalSurname: p.MaternalSurname,
		FullName:        p.FullName(),
		Category:        p.Category,
		Program:         p.Program,
		Wristband:       p.Wristband,
		CreatedAt:       p.CreatedAt,
	}
}

type activityResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location,omitempty"`
	Type        string    `json:"type"`
	MaxCapacity int       `json:"max_capacity"`
	Active      bool      `json:"active"`
}

func toActivityResponse(a *entities.Activity, loc *time.Location) activityResponse {
	return activityResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		StartsAt:    a.StartsAt.In(loc),
		EndsAt:      a.EndsAt.In(loc),
		Location:    a.Location,
		Type:        a.Type,
		MaxCapacity: a.MaxCapacity,
		Active:      a.Active,
	}
}

type occupancyResponse struct {
	ActivityID       uint    `json:"activity_id"`
	EnrolledCount    int     `json:"enrolled_count"`
	MaxCapacity      int     `json:"max_capacity"`
	AvailableSeats   int     `json:"available_seats"`
	WaitlistCount    int     `json:"waitlist_count"`
	PercentAvailable float64 `json:"percent_available"`
	Status           string  `json:"status"`
	Color            string  `json:"color"`
}

func toOccupancyResponse(o domain.Occupancy) occupancyResponse {
	return occupancyResponse{
		ActivityID:       o.ActivityID,
		EnrolledCount:    o.EnrolledCount,
		MaxCapacity:      o.MaxCapacity,
		AvailableSeats:   o.AvailableSeats(),
		WaitlistCount:    o.WaitlistCount,
		PercentAvailable: o.PercentAvailable(),
		Status:           o.Status(),
		Color:            o.Color(),
	}
}

type workshopOccupancyResponse struct {
	Activity  activityResponse  `json:"activity"`
	Occupancy occupancyResponse `json:"occupancy"`
}

type enrollmentResponse struct {
	ID            uint      `json:"id"`
	ParticipantID uint      `json:"participant_id"`
	ActivityID    uint      `json:"activity_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	Message       string    `json:"message,omitempty"`
}

func toEnrollmentResponse(e *entities.Enrollment, message string) enrollmentResponse {
	return enrollmentResponse{
		ID:            e.ID,
		ParticipantID: e.ParticipantID,
		ActivityID:    e.ActivityID,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		Message:       message,
	}
}

type enrollmentStatusResponse struct {
	Enrolled   bool `json:"enrolled"`
	Waitlisted bool `json:"waitlisted"`
}

type attendanceResponse struct {
	ID            uint      `json:"id"`
	ParticipantID uint      `json:"participant_id"`
	ActivityID    uint      `json:"activity_id"`
	Status        string    `json:"status"`
	RecordedAt    time.Time `json:"recorded_at"`
	Message       string    `json:"message"`
}

type certificateResponse struct {
	ParticipantID uint   `json:"participant_id"`
	Eligible      bool   `json:"eligible"`
	Attendances   int    `json:"attendances"`
	Required      int    `json:"required"`
	Folio         string `json:"folio,omitempty"`
	Message       string `json:"message"`
}

type teamResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	CaptainID uint      `json:"captain_id"`
	MemberIDs []uint    `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

func toTeamResponse(t *entities.Team) teamResponse {
	return teamResponse{
		ID:        t.ID,
		Name:      t.Name,
		State:     t.State,
		CaptainID: t.CaptainID,
		MemberIDs: t.MemberIDs,
		CreatedAt: t.CreatedAt,
	}
}

type stateSlotResponse struct {
	State  string `json:"state"`
	Taken  bool   `json:"taken"`
	TeamID uint   `json:"team_id,omitempty"`
}

type windowResponse struct {
	Name     string     `json:"name"`
	Open     bool       `json:"open"`
	OpensAt  *time.Time `json:"opens_at,omitempty"`
	ClosesAt *time.Time `json:"closes_at,omitempty"`
}
