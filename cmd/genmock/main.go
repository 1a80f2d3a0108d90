// Command genmock generates a deterministic mock workout feed for local runs
// and test fixtures. The same seed always yields the same snapshot, and the
// feed deliberately includes the anomalies the service must tolerate:
// abbreviated and unknown days, 24-hour and malformed times, and missing
// coordinates.
//
// Usage:
//
//	go run ./cmd/genmock -out data/workouts.csv
//	go run ./cmd/genmock -out data/workouts.xlsx -sheet Points -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/feed"
	"github.com/couchcryptid/workout-locator/internal/region"
	"github.com/couchcryptid/workout-locator/internal/schedule"
)

// regionDef anchors one mock region around a real town.
type regionDef struct {
	name  string
	city  string
	state string
	lat   float64
	lng   float64
}

var regions = []regionDef{
	{name: "Raleigh", city: "Raleigh", state: "NC", lat: 35.7796, lng: -78.6382},
	{name: "Wake Forest", city: "Wake Forest", state: "NC", lat: 35.9799, lng: -78.5097},
	{name: "Durham", city: "Durham", state: "NC", lat: 35.9940, lng: -78.8986},
	{name: "Cary", city: "Cary", state: "NC", lat: 35.7915, lng: -78.7811},
}

var (
	days   = []string{"Monday", "Tue", "Wednesday", "Thurs", "Friday", "Sat", "Sunday"}
	types  = []string{"Bootcamp", "Run", "Ruck", "Swim"}
	places = []string{"Park", "Middle School", "Church", "Greenway", "Commons"}
	names  = []string{"The Forge", "The Pit", "The Loop", "The Yard", "The Bell", "The Hill", "Iron Bend", "Dark Horse"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path; the extension selects csv, xlsx or json")
	sheet := flag.String("sheet", "", "worksheet name for xlsx output")
	perRegion := flag.Int("per-region", 8, "workouts per region")
	seed := flag.Uint64("seed", 1, "generator seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	format, err := feed.ParseFormat("", *out)
	if err != nil {
		return err
	}

	workouts := generate(rand.New(rand.NewPCG(*seed, *seed)), *perRegion)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := feed.Encode(f, format, *sheet, workouts); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d workouts to %s", len(workouts), *out)

	printStats(workouts)
	return nil
}

func generate(rng *rand.Rand, perRegion int) []domain.Workout {
	out := make([]domain.Workout, 0, len(regions)*perRegion)
	id := 1000
	for _, r := range regions {
		for i := range perRegion {
			id++
			out = append(out, domain.Workout{
				ID:          strconv.Itoa(id),
				Region:      r.name,
				Location:    fmt.Sprintf("%d %s %s, %s, %s", 100+rng.IntN(900), r.city, pick(rng, places), r.city, r.state),
				Group:       pick(rng, days),
				Time:        mockTime(rng, i),
				Type:        pick(rng, types),
				Name:        pick(rng, names),
				Website:     "https://example.org/" + region.Slug(r.name),
				Latitude:    mockDegrees(rng, r.lat, i),
				Longitude:   mockDegrees(rng, r.lng, i),
				WorkoutType: "Open",
			})
		}
	}
	// One record per anomaly the scheduler recovers from.
	out = append(out,
		domain.Workout{ID: strconv.Itoa(id + 1), Region: regions[0].name, Group: "Blursday", Time: "5:30 AM - 6:15 AM", Name: "Lost Week"},
		domain.Workout{ID: strconv.Itoa(id + 2), Region: regions[0].name, Group: "Friday", Time: "early", Name: "Sometime"},
	)
	return out
}

// mockTime mixes 12-hour, 24-hour and dash variants the feed is known to carry.
func mockTime(rng *rand.Rand, i int) string {
	hour := 5 + rng.IntN(2)
	minute := 15 * rng.IntN(4)
	switch i % 3 {
	case 0:
		return fmt.Sprintf("%d:%02d AM - %d:%02d AM", hour, minute, hour+1, minute)
	case 1:
		return fmt.Sprintf("%02d:%02d - %02d:%02d", hour, minute, hour+1, minute)
	default:
		return fmt.Sprintf("%d:%02d AM – %d:%02d AM", hour, minute, hour, minute+10)
	}
}

// mockDegrees scatters points within roughly 15 km of the anchor. Every
// seventh point is left blank, as in real feeds.
func mockDegrees(rng *rand.Rand, anchor float64, i int) string {
	if i%7 == 6 {
		return ""
	}
	return strconv.FormatFloat(anchor+(rng.Float64()-0.5)*0.25, 'f', 5, 64)
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

type dayCount struct {
	day   string
	count int
}

func printStats(workouts []domain.Workout) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(workouts))

	for _, slug := range region.Slugs(workouts) {
		fmt.Printf("  %-12s %d\n", slug, len(region.Select(workouts, slug)))
	}

	counts := map[string]int{}
	for _, w := range workouts {
		day := "unknown"
		if d, ok := schedule.NormalizeDay(w.Group); ok {
			day = d.String()
		}
		counts[day]++
	}
	dc := make([]dayCount, 0, len(counts))
	for d, c := range counts {
		dc = append(dc, dayCount{d, c})
	}
	sort.Slice(dc, func(i, j int) bool {
		if dc[i].count != dc[j].count {
			return dc[i].count > dc[j].count
		}
		return dc[i].day < dc[j].day
	})
	fmt.Print("Days: ")
	for _, d := range dc {
		fmt.Printf("%s=%d ", d.day, d.count)
	}
	fmt.Println()
}
