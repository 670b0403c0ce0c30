package domain

import (
	"errors"
	"time"
)

// SortDirection represents the ordering of a sorted panel
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Period represents the bucket size of a trend rollup
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ViewState holds the interaction state of a table panel.
// An empty SortKey keeps the panel's default ordering; empty SearchFields
// searches every searchable column.
type ViewState struct {
	SortKey      string
	Direction    SortDirection
	Query        string
	SearchFields []string
}

// Validate ensures the view state can be applied to a panel
func (v *ViewState) Validate() error {
	switch v.Direction {
	case "", SortAscending, SortDescending:
		return nil
	default:
		return errors.New("sort direction must be asc or desc")
	}
}

// WithDefaults fills an unset sort key and direction from the panel defaults
func (v ViewState) WithDefaults(key string, dir SortDirection) ViewState {
	if v.SortKey == "" {
		v.SortKey = key
		if v.Direction == "" {
			v.Direction = dir
		}
	}
	if v.Direction == "" {
		v.Direction = SortAscending
	}
	return v
}

// DateRange is an inclusive range of calendar days.
// A zero From or To leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Validate ensures the range is not inverted
func (r DateRange) Validate() error {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return errors.New("date range end must not be before start")
	}
	return nil
}

// Contains reports whether the calendar day of t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	day := truncateDay(t)
	if !r.From.IsZero() && day.Before(truncateDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(truncateDay(r.To)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
