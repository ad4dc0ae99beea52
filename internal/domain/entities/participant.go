package entities

import "time"

// Participant is a registered attendee of the event.
type Participant struct {
	ID              uint
	Email           string
	FirstName       string
	PaternalSurname string
	MaternalSurname string
	Category        string
	Program         string // empty when not affiliated
	Wristband       string // empty until assigned
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName joins the name parts that are present.
func (p *Participant) FullName() string {
	name := p.FirstName
	if p.PaternalSurname != "" {
		name += " " + p.PaternalSurname
	}
	if p.MaternalSurname != "" {
		name += " " + p.MaternalSurname
	}
	return name
}
