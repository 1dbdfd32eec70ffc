package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AdoptionStatus
		to      AdoptionStatus
		allowed bool
	}{
		{"pending to accepted", AdoptionPending, AdoptionAccepted, true},
		{"pending to rejected", AdoptionPending, AdoptionRejected, true},
		{"pending to complete", AdoptionPending, AdoptionComplete, false},
		{"pending to failed", AdoptionPending, AdoptionFailed, false},
		{"accepted to complete", AdoptionAccepted, AdoptionComplete, true},
		{"accepted to failed", AdoptionAccepted, AdoptionFailed, true},
		{"accepted to rejected", AdoptionAccepted, AdoptionRejected, false},
		{"rejected is terminal", AdoptionRejected, AdoptionComplete, false},
		{"complete is terminal", AdoptionComplete, AdoptionFailed, false},
		{"failed is terminal", AdoptionFailed, AdoptionAccepted, false},
		{"no self transition", AdoptionPending, AdoptionPending, false},
		{"unknown status has no transitions", AdoptionStatus("bogus"), AdoptionAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, AdoptionPending.IsTerminal())
	assert.False(t, AdoptionAccepted.IsTerminal())
	assert.True(t, AdoptionRejected.IsTerminal())
	assert.True(t, AdoptionComplete.IsTerminal())
	assert.True(t, AdoptionFailed.IsTerminal())
}
