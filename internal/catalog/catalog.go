// Package catalog holds the static per-country education catalog.
// Data only: admission logic lives in domain/rules, state transitions
// in the engine.
package catalog

import (
	"github.com/simslyfe/server/internal/domain/life"
)

// DefaultCountry is used when a lookup misses.
const DefaultCountry = "US"

// SkillPrereq gates admission on one bounded stat.
type SkillPrereq struct {
	Stat life.StatKind `json:"stat"`
	Min  int           `json:"min"`
}

// AlternateEntry is a second admission path for personas missing the
// required education status, based on tier plus GPA.
type AlternateEntry struct {
	MinStatus life.EducationStatus `json:"minStatus"`
	MinGPA    float64              `json:"minGpa"`
}

// Course is one enrollable offering inside a country's catalog.
type Course struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Stage       life.Stage `json:"stage"`
	Description string     `json:"description,omitempty"`

	Duration float64 `json:"duration"` // in game years
	Cost     int     `json:"cost"`
	Public   bool    `json:"public"` // fee-free public institution

	RequiredAge    int                  `json:"requiredAge,omitempty"` // 0 = no floor
	MaxAge         int                  `json:"maxAge,omitempty"`      // 0 = no ceiling
	RequiredStatus life.EducationStatus `json:"requiredStatus"`
	AlternateEntry *AlternateEntry      `json:"alternateEntry,omitempty"`
	MinGPA         float64              `json:"minGpa,omitempty"`
	Skill          *SkillPrereq         `json:"skill,omitempty"`
	RequiredExam   string               `json:"requiredExam,omitempty"`
	WorkYears      int                  `json:"workYears,omitempty"`

	// Completed course IDs that bar admission here (e.g. a trade
	// certificate closing the academic path).
	BlockedBy []string `json:"blockedBy,omitempty"`

	// GrantsStatus is the tier awarded on completion. nil means the
	// course awards a certificate only (preschool, trades, online).
	GrantsStatus *life.EducationStatus `json:"grantsStatus,omitempty"`

	// Majors offered; non-empty only for university-level courses.
	Majors []string `json:"majors,omitempty"`
}

// HasMajor reports whether the course offers the given major.
func (c Course) HasMajor(major string) bool {
	for _, m := range c.Majors {
		if m == major {
			return true
		}
	}
	return false
}

// Entry is the full catalog for one country.
type Entry struct {
	Code     string
	Name     string
	Currency string
	Stages   []life.Stage // ladder order for this country
	Courses  []Course
}

// CoursesAt returns the offerings for one stage, in catalog order.
func (e Entry) CoursesAt(stage life.Stage) []Course {
	var out []Course
	for _, c := range e.Courses {
		if c.Stage == stage {
			out = append(out, c)
		}
	}
	return out
}

// FirstFree returns the first fee-free public course at the stage.
// Auto-enrollment only ever places personas into these.
func (e Entry) FirstFree(stage life.Stage) (Course, bool) {
	for _, c := range e.Courses {
		if c.Stage == stage && c.Public && c.Cost == 0 {
			return c, true
		}
	}
	return Course{}, false
}

// CourseByID finds a course in this country's catalog.
func (e Entry) CourseByID(id string) (Course, bool) {
	for _, c := range e.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// Lookup returns the catalog for a country code, falling back to the
// default country for unknown codes.
func Lookup(code string) Entry {
	if e, ok := countries[code]; ok {
		return e
	}
	return countries[DefaultCountry]
}

// Countries lists the supported country codes.
func Countries() []string {
	out := make([]string, 0, len(countries))
	for code := range countries {
		out = append(out, code)
	}
	return out
}

func statusOf(s life.EducationStatus) *life.EducationStatus {
	return &s
}
