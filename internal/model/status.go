package model

// RunState represents the state of the conversion orchestrator
type RunState string

const (
	// RunStateIdle means no conversion is running
	RunStateIdle RunState = "Idle"

	// RunStateConverting means a conversion is in progress
	RunStateConverting RunState = "Converting"
)

// String returns the string representation of RunState
func (rs RunState) String() string {
	return string(rs)
}

// IsActive returns true if a conversion is running
func (rs RunState) IsActive() bool {
	return rs == RunStateConverting
}
