package domain

// Occupancy thresholds, in percent of seats still available.
const (
	FullThresholdPercent       = 10
	NearlyFullThresholdPercent = 30
)

// Occupancy statuses.
const (
	OccupancyAvailable  = "available"
	OccupancyNearlyFull = "nearly_full"
	OccupancyFull       = "full"
)

// Occupancy is the seat ledger of one workshop.
type Occupancy struct {
	ActivityID    uint
	EnrolledCount int
	MaxCapacity   int
	WaitlistCount int
}

// AvailableSeats never goes below zero.
func (o Occupancy) AvailableSeats() int {
	if o.EnrolledCount >= o.MaxCapacity {
		return 0
	}
	return o.MaxCapacity - o.EnrolledCount
}

// PercentAvailable is reported for display only; Status uses integer math.
func (o Occupancy) PercentAvailable() float64 {
	if o.MaxCapacity <= 0 {
		return 0
	}
	return float64(o.AvailableSeats()) * 100 / float64(o.MaxCapacity)
}

// Status derives available / nearly_full / full.
// available*100 < threshold*max is the same comparison as
// percent < threshold without rounding.
func (o Occupancy) Status() string {
	available := o.AvailableSeats()
	if o.MaxCapacity <= 0 || available == 0 {
		return OccupancyFull
	}
	scaled := available * 100
	switch {
	case scaled < FullThresholdPercent*o.MaxCapacity:
		return OccupancyFull
	case scaled < NearlyFullThresholdPercent*o.MaxCapacity:
		return OccupancyNearlyFull
	}
	return OccupancyAvailable
}

// Color maps the status to the frontend traffic light.
func (o Occupancy) Color() string {
	switch o.Status() {
	case OccupancyFull:
		return "red"
	case OccupancyNearlyFull:
		return "yellow"
	}
	return "green"
}

// HasSeat reports whether one more participant can be enrolled.
func (o Occupancy) HasSeat() bool {
	return o.EnrolledCount < o.MaxCapacity
}
