package domain

// Enrollment statuses.
const (
	StatusEnrolled   = "enrolled"
	StatusWaitlisted = "waitlisted"
	StatusCancelled  = "cancelled"
)

// AttendancePresent is the only attendance status that counts toward a certificate.
const AttendancePresent = "presente"

// Participant categories.
const (
	CategoryStudent  = "student"
	CategorySpeaker  = "speaker"
	CategoryExternal = "external"
)

// Activity types. Only workshops take enrollments.
const (
	ActivityWorkshop   = "workshop"
	ActivityConference = "conference"
	ActivityForum      = "forum"
)
