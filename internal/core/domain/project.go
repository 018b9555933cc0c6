package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProjectStatus represents where a research project is in its lifecycle.
type ProjectStatus string

const (
	StatusNew        ProjectStatus = "New"
	StatusContinuing ProjectStatus = "Continuing"
	StatusOngoing    ProjectStatus = "On-going"
	StatusCompleted  ProjectStatus = "Completed"
)

// Statuses lists every status in display order.
var Statuses = []ProjectStatus{StatusNew, StatusCompleted, StatusContinuing, StatusOngoing}

// Valid reports whether s is one of the enumerated statuses. Matching is exact.
func (s ProjectStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// DateLayout is the calendar-date format used for start and completion dates.
const DateLayout = "2006-01-02"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrValidation      = errors.New("validation failed")
)

// ProjectFields holds the user-editable attributes of a project.
type ProjectFields struct {
	Title          string        `json:"title" bson:"title"`
	Leader         string        `json:"leader" bson:"leader"`
	Staff          string        `json:"staff" bson:"staff"`
	StartDate      string        `json:"start_date" bson:"start_date"`
	CompletionDate string        `json:"completion_date" bson:"completion_date"`
	Budget         float64       `json:"budget" bson:"budget"`
	FundSource     string        `json:"fund_source" bson:"fund_source"`
	Location       string        `json:"location" bson:"location"`
	ResearchType   string        `json:"research_type" bson:"research_type"`
	Status         ProjectStatus `json:"status" bson:"status"`
	Remarks        string        `json:"remarks" bson:"remarks"`
}

// Normalize trims surrounding whitespace and defaults an empty status to New.
func (f ProjectFields) Normalize() ProjectFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Leader = strings.TrimSpace(f.Leader)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.CompletionDate = strings.TrimSpace(f.CompletionDate)
	f.FundSource = strings.TrimSpace(f.FundSource)
	f.Location = strings.TrimSpace(f.Location)
	f.ResearchType = strings.TrimSpace(f.ResearchType)
	if f.Status == "" {
		f.Status = StatusNew
	}
	return f
}

// Validate rejects records that would be nonsensical once stored. The returned
// error wraps ErrValidation and lists every violation.
func (f ProjectFields) Validate() error {
	var problems []string

	if f.Title == "" {
		problems = append(problems, "title is required")
	}
	if f.Budget < 0 {
		problems = append(problems, "budget must not be negative")
	}
	if !f.Status.Valid() {
		problems = append(problems, fmt.Sprintf("status must be one of: %s", joinStatuses()))
	}

	start, startErr := parseDate(f.StartDate)
	if startErr != nil {
		problems = append(problems, "start_date must be a YYYY-MM-DD date")
	}
	end, endErr := parseDate(f.CompletionDate)
	if endErr != nil {
		problems = append(problems, "completion_date must be a YYYY-MM-DD date")
	}
	if startErr == nil && endErr == nil && !start.IsZero() && !end.IsZero() && end.Before(start) {
		problems = append(problems, "completion_date must not be before start_date")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// StartYear returns the year of the start date, or 0 when unset or malformed.
func (f ProjectFields) StartYear() int {
	t, err := parseDate(f.StartDate)
	if err != nil || t.IsZero() {
		return 0
	}
	return t.Year()
}

// Project is a research project record. OwnerID is the account that created it.
type Project struct {
	ID            int64 `json:"id" bson:"_id"`
	OwnerID       int64 `json:"owner_id" bson:"owner_id"`
	ProjectFields `bson:",inline"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

func joinStatuses() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
