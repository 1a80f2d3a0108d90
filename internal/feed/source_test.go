package feed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testCSV = `Entry ID,Region,Group,Time,Name,Latitude,Longitude
49282,Raleigh,Friday,05:15 - 06:00,The Grind,35.7796,-78.6382
49297,Raleigh,Thursday,5:00 AM - 5:45 AM,"The Keep, East",35.7682,-78.6555
50001,Durham,Saturday,06:30 - 07:15,The Factory
`

func TestDecode_CSV(t *testing.T) {
	got, err := Decode(strings.NewReader(testCSV), FormatCSV, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "5:15 AM - 6:00 AM", got[0].Time)
	assert.Equal(t, "The Keep, East", got[1].Name)
	assert.Equal(t, "Durham", got[2].Region)
	assert.Empty(t, got[2].Latitude)
}

func TestDecode_SheetsJSON(t *testing.T) {
	doc := `{"range":"Points!A1:Z3","majorDimension":"ROWS","values":[
		["Entry ID","Region","Group","Time","Name"],
		["1","Raleigh","Monday","05:30 - 06:15","Iron"]
	]}`

	got, err := Decode(strings.NewReader(doc), FormatSheetsJSON, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Iron", got[0].Name)
	assert.Equal(t, "5:30 AM - 6:15 AM", got[0].Time)
}

func TestDecode_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Entry ID", "Region", "Group", "Time", "Name", "Notes"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"7", "Cary", "Tue", "17:00 - 18:00", "Evening Ruck"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := Decode(buf, FormatXLSX, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cary", got[0].Region)
	assert.Equal(t, "5:00 PM - 6:00 PM", got[0].Time)
	assert.Empty(t, got[0].Notes)
}

func TestDecode_XLSXMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = Decode(buf, FormatXLSX, "Points")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Points")
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("Name\nx\n"), FormatCSV, "")
	require.ErrorIs(t, err, ErrMissingRegionColumn)

	_, err = Decode(strings.NewReader("{not json"), FormatSheetsJSON, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode sheets snapshot")

	_, err = Decode(strings.NewReader(""), Format("tsv"), "")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		path    string
		want    Format
		wantErr bool
	}{
		{"explicit", "xlsx", "feed.dat", FormatXLSX, false},
		{"explicit uppercase", "CSV", "", FormatCSV, false},
		{"inferred", "", "data/Points.JSON", FormatSheetsJSON, false},
		{"unknown extension", "", "data/points.txt", "", true},
		{"no extension", "", "data/points", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.format, tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))

	got, err := FileSource{Path: path, Format: FormatCSV}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.csv"), Format: FormatCSV}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open snapshot")
}
