// Package life holds the core world state of a simulated life.
// This package is PURE and must NOT import any infrastructure packages.
package life

import (
	"time"

	"github.com/simslyfe/server/internal/domain/persona"
)

// StatKind identifies one of the bounded core stats.
type StatKind string

const (
	StatHealth    StatKind = "health"
	StatHappiness StatKind = "happiness"
	StatSmarts    StatKind = "smarts"
	StatLooks     StatKind = "looks"
	StatFame      StatKind = "fame"
)

// Stat bounds. Money is deliberately unbounded and may go negative.
const (
	StatMin = 0
	StatMax = 100
)

// EducationStatus is the highest education tier ever attained.
// It only moves upward.
type EducationStatus int

const (
	StatusNone EducationStatus = iota
	StatusPrimary
	StatusSecondary
	StatusAssociate
	StatusBachelor
	StatusMaster
)

// String returns a human-readable tier name.
func (s EducationStatus) String() string {
	switch s {
	case StatusPrimary:
		return "primary"
	case StatusSecondary:
		return "secondary"
	case StatusAssociate:
		return "associate"
	case StatusBachelor:
		return "bachelor"
	case StatusMaster:
		return "master"
	default:
		return "none"
	}
}

// Stage identifies the rung of the education ladder a course belongs to.
type Stage string

const (
	StagePreschool  Stage = "preschool"
	StagePrimary    Stage = "primary"
	StageSecondary  Stage = "secondary"
	StageCommunity  Stage = "community_college"
	StageUniversity Stage = "university"
	StageGraduate   Stage = "graduate"
	StageVocational Stage = "vocational"
	StageOnline     Stage = "online"
)

// Enrollment is the single course the persona is currently attending.
type Enrollment struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Major         string           `json:"major,omitempty"`
	Stage         Stage            `json:"stage"`
	Duration      float64          `json:"duration"`
	TimeRemaining float64          `json:"timeRemaining"`
	Cost          int              `json:"cost"`
	GrantsStatus  *EducationStatus `json:"grantsStatus,omitempty"`
	CurrentGPA    float64          `json:"currentGpa"`
	FeePaying     bool             `json:"feePaying"`
}

// State is the complete snapshot of one life. A nil CurrentEnrollment
// and IsCurrentlyEnrolled==false always agree; mutate only through the
// helpers below or the engine so the pairing never drifts.
type State struct {
	Age       int       `json:"age"`
	Money     int       `json:"money"`
	Health    int       `json:"health"`
	Happiness int       `json:"happiness"`
	Smarts    int       `json:"smarts"`
	Looks     int       `json:"looks"`
	Fame      int       `json:"fame"`
	GameDate  time.Time `json:"gameDate"`

	EducationStatus     EducationStatus `json:"educationStatus"`
	IsCurrentlyEnrolled bool            `json:"isCurrentlyEnrolled"`
	CurrentEnrollment   *Enrollment     `json:"currentEnrollment"`

	CompletedDegrees           []string `json:"completedDegrees"`
	CompletedCertificates      []string `json:"completedCertificates"`
	CompletedUniversityCourses []string `json:"completedUniversityCourses"`

	EventLog []string `json:"eventLog"`

	Profile *persona.Profile `json:"profile,omitempty"`
}

// NewState returns a newborn life with the fixed starting values.
func NewState() *State {
	return &State{
		Age:                        0,
		Money:                      1000,
		Health:                     100,
		Happiness:                  70,
		Smarts:                     50,
		Looks:                      50,
		Fame:                       0,
		GameDate:                   time.Now().UTC(),
		EducationStatus:            StatusNone,
		CompletedDegrees:           []string{},
		CompletedCertificates:      []string{},
		CompletedUniversityCourses: []string{},
		EventLog:                   []string{},
	}
}

// Clamp forces v into [StatMin, StatMax].
func Clamp(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// Stat returns the current value of a bounded stat.
func (s *State) Stat(kind StatKind) int {
	switch kind {
	case StatHealth:
		return s.Health
	case StatHappiness:
		return s.Happiness
	case StatSmarts:
		return s.Smarts
	case StatLooks:
		return s.Looks
	case StatFame:
		return s.Fame
	default:
		return 0
	}
}

// AdjustStat applies delta to a bounded stat, clamping the result, and
// returns the delta that actually landed after clamping.
func (s *State) AdjustStat(kind StatKind, delta int) int {
	before := s.Stat(kind)
	after := Clamp(before + delta)
	switch kind {
	case StatHealth:
		s.Health = after
	case StatHappiness:
		s.Happiness = after
	case StatSmarts:
		s.Smarts = after
	case StatLooks:
		s.Looks = after
	case StatFame:
		s.Fame = after
	default:
		return 0
	}
	return after - before
}

// SetEnrollment installs a course and flips the enrolled flag in lockstep.
func (s *State) SetEnrollment(e *Enrollment) {
	s.CurrentEnrollment = e
	s.IsCurrentlyEnrolled = e != nil
}

// ClearEnrollment removes the current course, if any.
func (s *State) ClearEnrollment() {
	s.CurrentEnrollment = nil
	s.IsCurrentlyEnrolled = false
}

// HasCertificate reports whether the given course id was ever completed.
func (s *State) HasCertificate(id string) bool {
	for _, c := range s.CompletedCertificates {
		if c == id {
			return true
		}
	}
	return false
}

// HasUniversityCombo reports whether the exact course+major pairing was
// already completed. Combos are stored as "<courseID>-<major>".
func (s *State) HasUniversityCombo(combo string) bool {
	for _, c := range s.CompletedUniversityCourses {
		if c == combo {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Snapshots handed outside the engine must
// never alias the live state.
func (s *State) Clone() State {
	out := *s
	out.CompletedDegrees = append([]string{}, s.CompletedDegrees...)
	out.CompletedCertificates = append([]string{}, s.CompletedCertificates...)
	out.CompletedUniversityCourses = append([]string{}, s.CompletedUniversityCourses...)
	out.EventLog = append([]string{}, s.EventLog...)
	if s.CurrentEnrollment != nil {
		e := *s.CurrentEnrollment
		if s.CurrentEnrollment.GrantsStatus != nil {
			g := *s.CurrentEnrollment.GrantsStatus
			e.GrantsStatus = &g
		}
		out.CurrentEnrollment = &e
	}
	if s.Profile != nil {
		p := s.Profile.Clone()
		out.Profile = &p
	}
	return out
}
