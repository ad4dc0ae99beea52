package entities

import "time"

// TeamSize is the captain plus five members.
const TeamSize = 6

// Team is a contest team bound to one state slot.
type Team struct {
	ID        uint
	Name      string
	State     string
	CaptainID uint
	MemberIDs []uint // captain first
	CreatedAt time.Time
}

// StateSlot shows whether a contest state is still free.
type StateSlot struct {
	State  string
	Taken  bool
	TeamID uint
}
