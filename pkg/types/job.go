package types

import "github.com/lib/pq"

// JobExperience rows back the read-only job history page.
type JobExperience struct {
	ID           string         `json:"id" db:"id"`
	Position     string         `json:"position" db:"position"`
	Company      string         `json:"company" db:"company"`
	Location     string         `json:"location" db:"location"`
	StartDate    string         `json:"start_date" db:"start_date"`
	EndDate      string         `json:"end_date" db:"end_date"`
	Type         string         `json:"type" db:"type"`
	Description  string         `json:"description" db:"description"`
	Achievements pq.StringArray `json:"achievements" db:"achievements"`
	Sort         int            `json:"sort" db:"sort"`
}
