package types

import (
	"fmt"
)

// CVDocument is the single aggregate each user owns. It is always read and
// written as a whole document, never as partial deltas.
type CVDocument struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Summary      string       `json:"summary"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	LastUpdated  int64        `json:"last_updated,omitempty"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Avatar   string `json:"avatar,omitempty"`
}

type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func (s Skill) Validate() error {
	if s.Level < 0 || s.Level > 100 {
		return fmt.Errorf("skill level %d out of range [0,100]", s.Level)
	}
	return nil
}

// Clone returns a deep copy. Mutation helpers work on snapshots so an
// in-flight save never observes a half-applied edit.
func (d *CVDocument) Clone() *CVDocument {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Education = append([]Education(nil), d.Education...)
	cp.Skills = append([]Skill(nil), d.Skills...)
	return &cp
}
