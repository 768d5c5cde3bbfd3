package models

import "time"

// Work entry approval states.
const (
	EntryPending  = "pending"
	EntryApproved = "approved"
	EntryRejected = "rejected"
)

// HourlyRate is the flat payout per worked hour, in effect at entry creation.
const HourlyRate = 100.0

type WorkEntry struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student"`
	StudentEmail string    `json:"studentEmail,omitempty"` // joined on admin reads
	WorkLocation string    `json:"workLocation"`
	InTime       time.Time `json:"inTime"`
	OutTime      time.Time `json:"outTime"`
	TotalHours   float64   `json:"totalHours"`
	AmountEarned float64   `json:"amountEarned"`
	Status       string    `json:"status"`

	// Snapshot of the student's details at creation time.
	FacultyName  string `json:"facultyName"`
	StudentName  string `json:"studentName"`
	ClassName    string `json:"className"`
	Division     string `json:"division"`
	CollegeName  string `json:"collegeName"`
	PRNNumber    string `json:"prnNumber"`
	AadharNumber string `json:"aadharNumber"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HoursBetween returns the elapsed wall-clock time between in and out as
// fractional hours.
func HoursBetween(in, out time.Time) float64 {
	return out.Sub(in).Hours()
}

// YearMonth identifies a calendar month that has at least one work entry.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type ReportSummary struct {
	TotalDays     int     `json:"totalDays"`
	TotalHours    float64 `json:"totalHours"`
	TotalEarnings float64 `json:"totalEarnings"`
}

type MonthlyReport struct {
	Student struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"student"`
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Entries []WorkEntry   `json:"entries"`
	Summary ReportSummary `json:"summary"`
}
