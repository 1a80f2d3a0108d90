package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityState(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no commas", "Raleigh", "Raleigh"},
		{"street city state zip country", "123 Main St, Cary, NC 27513, USA", "Cary, NC"},
		{"lowercase state", "Dorothea Dix Park, Raleigh, nc", "Raleigh, NC"},
		{"zip plus four", "Cary, NC 27513-1234", "Cary, NC"},
		{"state then country code", "Pullen Park, Raleigh, NC, US", "Raleigh, NC"},
		{"international postal code", "Hyde Park, London, W2 2UH, GB", "London, GB"},
		{"spelled out state", "500 Oak Ave, Cary, North Carolina, United States", "Cary, North Carolina"},
		{"unrecognised", "Some Park, Somewhere, Far Away", "Somewhere, Far Away"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CityState(tt.input))
		})
	}
}
