package domain

import "strconv"

// Workout is one weekly recurring workout as listed in the regional feed.
// Only Group and Time drive ordering and only Latitude/Longitude drive the
// map; every other field is carried through untouched.
type Workout struct {
	ID          string `json:"id"`
	Region      string `json:"region"`
	Location    string `json:"location,omitempty"`
	Group       string `json:"group"` // day of week, free text
	WorkoutType string `json:"workout_type,omitempty"`
	Time        string `json:"time"` // "5:30 AM - 6:15 AM"
	Type        string `json:"type,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Website     string `json:"website,omitempty"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`

	// Map styling columns.
	MarkerIcon  string `json:"marker_icon,omitempty"`
	MarkerColor string `json:"marker_color,omitempty"`
	IconColor   string `json:"icon_color,omitempty"`
	CustomSize  string `json:"custom_size,omitempty"`
	Image       string `json:"image,omitempty"`

	// Extra holds feed columns this package does not know about.
	Extra map[string]string `json:"extra,omitempty"`

	// Row is the sheet row the workout was read from, counting the header
	// as row 1. Zero when the workout did not come from a feed.
	Row int `json:"-"`
}

// Coordinate is an unvalidated latitude/longitude pair with a display title.
// Values stay as text until the viewport calculator parses them.
type Coordinate struct {
	Lat   string `json:"lat"`
	Lng   string `json:"lng"`
	Title string `json:"title,omitempty"`
}

// Coordinate returns the workout's map point.
func (w Workout) Coordinate() Coordinate {
	return Coordinate{Lat: w.Latitude, Lng: w.Longitude, Title: w.Name}
}

// Coordinates collects the map points of a set of workouts, preserving order.
func Coordinates(workouts []Workout) []Coordinate {
	out := make([]Coordinate, len(workouts))
	for i, w := range workouts {
		out[i] = w.Coordinate()
	}
	return out
}

// CoordinateOf builds a Coordinate from numeric degrees.
func CoordinateOf(lat, lng float64, title string) Coordinate {
	return Coordinate{
		Lat:   strconv.FormatFloat(lat, 'f', -1, 64),
		Lng:   strconv.FormatFloat(lng, 'f', -1, 64),
		Title: title,
	}
}

// LatLng is a WGS-84 point in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Marker is a validated map pin.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
}

// Viewport is a map center and zoom level framing a set of markers.
type Viewport struct {
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}
