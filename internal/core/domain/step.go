package domain

import "strings"

// StepStatusAttribute is the span attribute carrying the final status of a step.
const StepStatusAttribute = "ccdrive.step.status"

// StepStatus is the lifecycle state of one pipeline step.
type StepStatus string

const (
	// StepStatusPending indicates the step has not started.
	StepStatusPending StepStatus = "pending"
	// StepStatusRunning indicates the step is executing.
	StepStatusRunning StepStatus = "running"
	// StepStatusCompleted indicates the step finished successfully.
	StepStatusCompleted StepStatus = "completed"
	// StepStatusFailed indicates the step failed.
	StepStatusFailed StepStatus = "failed"
	// StepStatusCached indicates the work was skipped because a valid record exists.
	StepStatusCached StepStatus = "cached"
	// StepStatusSkipped indicates the step had nothing to do.
	StepStatusSkipped StepStatus = "skipped"
)

// IsTerminal checks if a status is final.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StepStatusCompleted, StepStatusFailed, StepStatusCached, StepStatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeStepStatus converts a string to a StepStatus, defaulting to pending.
func NormalizeStepStatus(s string) StepStatus {
	switch StepStatus(strings.ToLower(s)) {
	case StepStatusRunning:
		return StepStatusRunning
	case StepStatusCompleted:
		return StepStatusCompleted
	case StepStatusFailed:
		return StepStatusFailed
	case StepStatusCached:
		return StepStatusCached
	case StepStatusSkipped:
		return StepStatusSkipped
	default:
		return StepStatusPending
	}
}
