package event_bus

import "time"

const (
	CollectionSaved EventType = "collection.saved"
	TimerStarted    EventType = "timer.started"
	TimerStopped    EventType = "timer.stopped"
	DataReset       EventType = "data.reset"
)

// CollectionSavedData is published after a record collection was written to its slot.
type CollectionSavedData struct {
	Key   string
	Count int
}

type TimerStartedData struct {
	ProjectId   string
	Description string
	HourlyRate  float64
	Start       time.Time
}

type TimerStoppedData struct {
	TimeEntryId string
	ProjectId   string
	Duration    time.Duration
}

// DataResetData is published after every slot, the active timer included, was removed.
type DataResetData struct {
	TimerWasRunning bool
}
