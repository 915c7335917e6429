package timer

import "time"

// ActiveTimer is the in-flight tracking session. The JSON layout matches the
// stored activeTimer slot.
type ActiveTimer struct {
	Start       time.Time `json:"start"`
	ProjectId   string    `json:"projectId"`
	Description string    `json:"task"`
	HourlyRate  float64   `json:"rate"`
}

// Status describes the tracker at a point in time. Timer and Elapsed are only
// meaningful while Running.
type Status struct {
	Running bool
	Timer   ActiveTimer
	Elapsed time.Duration
}
