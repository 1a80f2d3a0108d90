// Package domain models F3 workout listings and the plain values derived
// from them (coordinates, viewports).
//
// # Data Source
//
// Workouts originate from a shared regional spreadsheet. Each row is one
// weekly recurring workout; the header row names the columns. A snapshot of
// the sheet (CSV, XLSX, or the Sheets API "values" JSON) is mapped into
// [Workout] records by the feed package before anything here sees it.
//
// # Feed Conventions
//
// Day of week ("Group" column):
//
//	Free text. Full names ("Thursday"), standard abbreviations ("Thu",
//	"Thurs", "Th") and unambiguous prefixes ("Wedn") are all seen in the
//	wild. Case is not significant.
//
// Time ("Time" column):
//
//	"H:MM AM - H:MM AM", e.g. "5:30 AM - 6:15 AM". The separator may be a
//	hyphen, en-dash or em-dash. Older rows use 24-hour "05:30 - 06:15",
//	which the feed package rewrites to the 12-hour form. Only the start
//	time matters for ordering.
//
// Coordinates ("Latitude" / "Longitude" columns):
//
//	Decimal degrees as text, WGS-84. Blank or non-numeric cells are common
//	for newly added workouts that have not been pinned yet.
//
// # Anomalies
//
// Nothing in the core transforms returns an error. Bad input degrades a
// single record and is reported through [AnomalyRecorder]:
//
//	unparseable_time    time falls back to midnight, workout still listed
//	unknown_day         workout sorts after every recognised day
//	invalid_coordinate  point is left out of the map viewport
package domain
