package region

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/feed"
)

const (
	mapEmbedURL     = "https://www.google.com/maps/embed/v1/view"
	summaryMaxPlace = 3
)

// ServedLocations returns the distinct "City, ST" values of the workouts in
// first-seen order.
func ServedLocations(workouts []domain.Workout) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, w := range workouts {
		place := feed.CityState(w.Location)
		if place == "" {
			continue
		}
		if _, ok := seen[place]; ok {
			continue
		}
		seen[place] = struct{}{}
		out = append(out, place)
	}
	return out
}

// Summary describes where a region's workouts are held in one line:
// "Cary, NC, Apex, NC, Raleigh, NC, and more".
func Summary(workouts []domain.Workout) string {
	return summarize(ServedLocations(workouts))
}

func summarize(places []string) string {
	if len(places) <= summaryMaxPlace {
		return strings.Join(places, ", ")
	}
	return strings.Join(places[:summaryMaxPlace], ", ") + ", and more"
}

// MapURL builds a Google Maps embed URL for the viewport. It returns "" when
// no API key is configured.
func MapURL(vp domain.Viewport, apiKey string) string {
	if apiKey == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s?key=%s&center=%s,%s&zoom=%d",
		mapEmbedURL, url.QueryEscape(apiKey), formatDegrees(vp.Center.Lat), formatDegrees(vp.Center.Lng), vp.Zoom)
	for _, m := range vp.Markers {
		fmt.Fprintf(&b, "&markers=color:red|%s,%s", formatDegrees(m.Lat), formatDegrees(m.Lng))
	}
	return b.String()
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
