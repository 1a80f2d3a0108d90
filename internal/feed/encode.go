package feed

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

// Header lists the known columns in the order they are written.
var Header = []string{
	"Entry ID", ColumnRegion, "Location", "Group", "Workout Type", ColumnTime, "Type", "Name",
	"Description", "Notes", "Website", "Latitude", "Longitude",
	"Marker Icon", "Marker Color", "Icon Color", "Custom Size", "Image",
}

// Records renders workouts as a header row followed by one row per workout.
// Extra columns found on any workout follow the known ones, sorted by name.
func Records(workouts []domain.Workout) [][]string {
	var extra []string
	for _, w := range workouts {
		for name := range w.Extra {
			if !slices.Contains(extra, name) {
				extra = append(extra, name)
			}
		}
	}
	slices.Sort(extra)

	header := append(slices.Clone(Header), extra...)
	out := make([][]string, 0, len(workouts)+1)
	out = append(out, header)
	for _, w := range workouts {
		row := make([]string, len(header))
		for i, name := range Header {
			row[i] = *columns[name](&w)
		}
		for i, name := range extra {
			row[len(Header)+i] = w.Extra[name]
		}
		out = append(out, row)
	}
	return out
}

// Encode writes workouts as a snapshot in the given format. sheet names the
// worksheet for xlsx output; empty keeps the default.
func Encode(w io.Writer, format Format, sheet string, workouts []domain.Workout) error {
	records := Records(workouts)
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, sheet, records)
	case FormatSheetsJSON:
		return WriteSheetsJSON(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteCSV writes records as CSV.
func WriteCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv snapshot: %w", err)
	}
	return nil
}

// WriteXLSX writes records to a single-sheet workbook.
func WriteXLSX(w io.Writer, sheet string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	if sheet != "" && sheet != name {
		if err := f.SetSheetName(name, sheet); err != nil {
			return fmt.Errorf("name xlsx sheet: %w", err)
		}
		name = sheet
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := rec
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx snapshot: %w", err)
	}
	return nil
}

// WriteSheetsJSON writes records in the Sheets API "values" shape.
func WriteSheetsJSON(w io.Writer, records [][]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sheetsValues{Values: records}); err != nil {
		return fmt.Errorf("write sheets snapshot: %w", err)
	}
	return nil
}
