package model

import "time"

// CompanyRecord is one row of the boycott/divestment reference dataset,
// immutable once loaded. EventMonth/EventYear are zero when the source row
// carried no parseable event date; that disables finance lookups for the
// record but is never a load failure.
type CompanyRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	EventMonth  int    `json:"month"` // 1-12, 0 = unknown
	EventYear   int    `json:"year"`  // 0 = unknown
	Ticker      string `json:"ticker"`
}

// HasEventDate reports whether the record carries a complete, valid event
// month and year.
func (c CompanyRecord) HasEventDate() bool {
	return c.EventMonth >= 1 && c.EventMonth <= 12 && c.EventYear != 0
}

// EventDate returns the first day of the event month in UTC. Only meaningful
// when HasEventDate is true.
func (c CompanyRecord) EventDate() time.Time {
	return time.Date(c.EventYear, time.Month(c.EventMonth), 1, 0, 0, 0, 0, time.UTC)
}

// EventMonthName returns the English month name, or "" when unknown.
func (c CompanyRecord) EventMonthName() string {
	if c.EventMonth < 1 || c.EventMonth > 12 {
		return ""
	}
	return time.Month(c.EventMonth).String()
}
