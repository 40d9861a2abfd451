package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ccdrive/internal/core/domain"
)

func TestStepStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.StepStatus
		isTerminal bool
	}{
		{"Pending", domain.StepStatusPending, false},
		{"Running", domain.StepStatusRunning, false},
		{"Completed", domain.StepStatusCompleted, true},
		{"Failed", domain.StepStatusFailed, true},
		{"Cached", domain.StepStatusCached, true},
		{"Skipped", domain.StepStatusSkipped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestNormalizeStepStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.StepStatus
	}{
		{"pending", domain.StepStatusPending},
		{"PENDING", domain.StepStatusPending},
		{"running", domain.StepStatusRunning},
		{"completed", domain.StepStatusCompleted},
		{"failed", domain.StepStatusFailed},
		{"cached", domain.StepStatusCached},
		{"skipped", domain.StepStatusSkipped},
		{"unknown", domain.StepStatusPending},
		{"", domain.StepStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeStepStatus(tt.input))
		})
	}
}
