package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimeRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"24 hour morning", "05:30 - 06:15", "5:30 AM - 6:15 AM"},
		{"24 hour evening", "17:45-18:30", "5:45 PM - 6:30 PM"},
		{"midnight and noon", "00:00 – 12:00", "12:00 AM - 12:00 PM"},
		{"already 12 hour", "5:30 PM - 6:15 PM", "5:30 PM - 6:15 PM"},
		{"12 hour padded and lowercase", "05:30am — 06:15am", "5:30 AM - 6:15 AM"},
		{"start only", "6:00", "6:00 AM"},
		{"garbage kept", "sunrise - 7:00", "sunrise - 7:00 AM"},
		{"out of range kept", "25:00 - 26:00", "25:00 - 26:00"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTimeRange(tt.input))
		})
	}
}
