package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestCoordinates(t *testing.T) {
	workouts := []Workout{
		{Name: "The Yard", Latitude: "35.771", Longitude: "-78.655"},
		{Name: "No Pin"},
	}
	assert.Equal(t, []Coordinate{
		{Lat: "35.771", Lng: "-78.655", Title: "The Yard"},
		{Title: "No Pin"},
	}, Coordinates(workouts))
	assert.Empty(t, Coordinates(nil))
}

func TestCoordinateOf(t *testing.T) {
	assert.Equal(t, Coordinate{Lat: "0", Lng: "-78.5", Title: "x"}, CoordinateOf(0, -78.5, "x"))
}

func TestSetClock(t *testing.T) {
	frozen := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	assert.True(t, Now().Equal(frozen))

	SetClock(nil)
	assert.WithinDuration(t, time.Now(), Now(), time.Minute)
}
