package feed

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

// ErrUnknownFormat is returned for snapshot formats other than csv, xlsx and json.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format identifies how a snapshot file is encoded.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	// FormatSheetsJSON is a saved Sheets API values response: {"values": [[...], ...]}.
	FormatSheetsJSON Format = "json"
)

// ParseFormat validates a format name. An empty name infers the format
// from path's extension.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch f := Format(strings.ToLower(name)); f {
	case FormatCSV, FormatXLSX, FormatSheetsJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Decode reads a whole snapshot and maps it to workouts. sheet selects the
// worksheet for xlsx snapshots; empty means the first one.
func Decode(r io.Reader, format Format, sheet string) ([]domain.Workout, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = ReadCSV(r)
	case FormatXLSX:
		records, err = ReadXLSX(r, sheet)
	case FormatSheetsJSON:
		records, err = ReadSheetsJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return ParseRecords(records)
}

// ReadCSV reads every record of a CSV export. Rows may have differing
// lengths.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv snapshot: %w", err)
	}
	return records, nil
}

// ReadXLSX reads the rows of one worksheet of an XLSX export.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx snapshot: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrMissingHeader
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheet, err)
	}
	return rows, nil
}

type sheetsValues struct {
	Values [][]string `json:"values"`
}

// ReadSheetsJSON reads a saved Sheets API "values" response.
func ReadSheetsJSON(r io.Reader) ([][]string, error) {
	var resp sheetsValues
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode sheets snapshot: %w", err)
	}
	return resp.Values, nil
}

// FileSource loads workouts from a snapshot file on local disk.
type FileSource struct {
	Path   string
	Format Format
	Sheet  string
}

// Load opens and decodes the snapshot.
func (s FileSource) Load(_ context.Context) ([]domain.Workout, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	workouts, err := Decode(f, s.Format, s.Sheet)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Path, err)
	}
	return workouts, nil
}
