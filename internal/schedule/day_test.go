package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Weekday
		wantOK bool
	}{
		{"full name", "Thursday", time.Thursday, true},
		{"lowercase", "saturday", time.Saturday, true},
		{"uppercase", "MONDAY", time.Monday, true},
		{"padded", "  Friday ", time.Friday, true},
		{"alias sun", "Sun", time.Sunday, true},
		{"alias tues", "tues", time.Tuesday, true},
		{"alias th", "Th", time.Thursday, true},
		{"alias thurs with dot", "Thurs.", time.Thursday, true},
		{"prefix", "Wedn", time.Wednesday, true},
		{"ambiguous t picks longest", "t", time.Thursday, true},
		{"ambiguous s picks longest", "S", time.Saturday, true},
		{"empty", "", 0, false},
		{"only dot", ".", 0, false},
		{"nonsense", "Blursday", 0, false},
		{"longer than name", "Sundays", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDay(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
