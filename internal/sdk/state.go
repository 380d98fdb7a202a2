package sdk

// Status is the loader lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the loader state handed to watchers.
type Snapshot struct {
	Status Status
	// Err is the last load failure; nil unless Status is StatusFailed.
	Err error
}

// Ready reports whether the SDK finished initialising.
func (s Snapshot) Ready() bool { return s.Status == StatusReady }

// Loading reports whether a load attempt is in flight.
func (s Snapshot) Loading() bool { return s.Status == StatusLoading }
