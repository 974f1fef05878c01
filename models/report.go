package models

import "strings"

// ReportTable describes one of the reference tables included in the PDF
// report and the CSV export.
type ReportTable struct {
	// Name is the table name in the database (e.g. "Match_Scores").
	Name string

	// Title is the human readable section title (e.g. "Match Scores").
	Title string

	// Labels are the column captions printed in the PDF header row.
	Labels []string
}

// FileName returns the CSV file (or object) name for the table,
// e.g. "match_scores.csv".
func (t ReportTable) FileName() string {
	return strings.ToLower(t.Name) + ".csv"
}

// ReportTables is the fixed, ordered list of reference tables.
var ReportTables = []ReportTable{
	{Name: "Teams", Title: "Teams", Labels: []string{"TeamID", "TeamName", "Country"}},
	{Name: "Players", Title: "Players", Labels: []string{"PlayerID", "PlayerName", "TeamID", "Role"}},
	{Name: "Matches", Title: "Matches", Labels: []string{"MatchID", "MatchDate", "Team1ID", "Team2ID", "Venue", "WinnerID"}},
	{Name: "Match_Scores", Title: "Match Scores", Labels: []string{"ScoreID", "MatchID", "TeamID", "Runs", "Wickets", "Overs"}},
	{Name: "Match_Results", Title: "Match Results", Labels: []string{"ResultID", "MatchID", "WinnerID", "WinningMargin"}},
}

// TableData holds all rows of a reference table rendered as strings,
// together with the column names reported by the database.
type TableData struct {
	Table   ReportTable
	Columns []string
	Rows    [][]string
}

// ExportResult is the per-table outcome of a CSV export run.
type ExportResult struct {
	Table    string `json:"table"`
	Location string `json:"location,omitempty"`
	Rows     int    `json:"rows"`
	Err      error  `json:"-"`
}

// LookupReportTable returns the entry of [ReportTables] named name.
func LookupReportTable(name string) (ReportTable, bool) {
	for _, t := range ReportTables {
		if t.Name == name {
			return t, true
		}
	}
	return ReportTable{}, false
}
