package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// ComplaintRow is one row of a fixture summary export. Empty fields are
// written as empty cells.
type ComplaintRow struct {
	ID         string
	Date       string
	Assignment string
	Beat       string
	Category   string
	Status     string
	Finding    string

	ComplainantRace string
	ComplainantSex  string
	ComplainantAge  string

	OfficerRace  string
	OfficerSex   string
	OfficerAge   string
	OfficerYears string
}

// ComplaintHeader is the header row written by WriteComplaintCSV
func ComplaintHeader() []string {
	return append([]string{"LOG_NO"}, domain.RequiredColumns()...)
}

// Record returns the row as CSV fields in ComplaintHeader order
func (r ComplaintRow) Record() []string {
	return []string{
		r.ID,
		r.Date,
		r.Assignment,
		r.Beat,
		r.Category,
		r.Status,
		r.Finding,
		r.ComplainantRace,
		r.ComplainantSex,
		r.ComplainantAge,
		r.OfficerRace,
		r.OfficerSex,
		r.OfficerAge,
		r.OfficerYears,
	}
}

// WriteComplaintCSV writes rows to a CSV file in a temp dir and returns its path
func WriteComplaintCSV(t *testing.T, rows ...ComplaintRow) string {
	t.Helper()

	records := [][]string{ComplaintHeader()}
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return WriteCSV(t, records)
}

// WriteCSV writes raw records (header first) to a temp file
func WriteCSV(t *testing.T, records [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "complaints.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// SampleComplaints is a small mixed-jurisdiction dataset used across tests
func SampleComplaints() []ComplaintRow {
	return []ComplaintRow{
		{
			ID: "1001", Date: "1/15/2016 10:30", Assignment: "IPRA", Beat: "0411|0412",
			Category: "Use of Force", Status: "Closed", Finding: "NOT SUSTAINED",
			ComplainantRace: "Black or African American|White", ComplainantSex: "Male|Female", ComplainantAge: "20-29|30-39",
			OfficerRace: "White", OfficerSex: "Male", OfficerAge: "30-39", OfficerYears: "5-9",
		},
		{
			ID: "1002", Date: "3/2/2017", Assignment: "COPA", Beat: "0412",
			Category: "Use of Force", Status: "Pending", Finding: "",
			ComplainantRace: "Hispanic, Latino, or Spanish Origin", ComplainantSex: "Male", ComplainantAge: "0-19",
			OfficerRace: "White|Black or African American", OfficerSex: "Male|Female", OfficerAge: "40-49|20-29", OfficerYears: "15-19|0-4",
		},
		{
			ID: "1003", Date: "3/20/2017 08:00", Assignment: "COPA", Beat: "0412",
			Category: "Verbal Abuse", Status: "Closed", Finding: "SUSTAINED",
			ComplainantRace: "Unknown", ComplainantSex: "Unknown", ComplainantAge: "Unknown",
			OfficerRace: "Asian or Pacific Islander", OfficerSex: "Female", OfficerAge: "30-39", OfficerYears: "10-14",
		},
		{
			ID: "1004", Date: "7/4/2017", Assignment: "BIA", Beat: "1123",
			Category: "Operation/Personnel Violations", Status: "Closed", Finding: "UNFOUNDED",
			ComplainantRace: "White", ComplainantSex: "Female", ComplainantAge: "50-59",
			OfficerRace: "White", OfficerSex: "Male", OfficerAge: "50-59", OfficerYears: "25-29",
		},
	}
}
