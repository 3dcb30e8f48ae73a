// Package rules contains the pure calculation logic for life mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import (
	"fmt"
	"strings"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/domain/life"
)

// Reason classifies why an admission attempt was rejected. The order of
// checks in CheckAdmission is fixed; the first failing check wins.
type Reason string

const (
	ReasonAlreadyEnrolled        Reason = "ALREADY_ENROLLED"
	ReasonTooYoung               Reason = "TOO_YOUNG"
	ReasonPrerequisitesNotMet    Reason = "PREREQUISITES_NOT_MET"
	ReasonInsufficientFunds      Reason = "INSUFFICIENT_FUNDS"
	ReasonSkillTooLow            Reason = "SKILL_TOO_LOW"
	ReasonMissingExam            Reason = "MISSING_EXAM"
	ReasonInsufficientExperience Reason = "INSUFFICIENT_EXPERIENCE"
	ReasonBlockedByConstraint    Reason = "BLOCKED_BY_CONSTRAINT"
)

// AdmissionError is the typed rejection returned by CheckAdmission.
type AdmissionError struct {
	Reason Reason
	Detail string
}

func (e *AdmissionError) Error() string {
	return string(e.Reason) + ": " + e.Detail
}

func reject(r Reason, format string, args ...interface{}) *AdmissionError {
	return &AdmissionError{Reason: r, Detail: fmt.Sprintf(format, args...)}
}

// CheckAdmission runs the ordered eligibility checks for enrolling the
// persona into a course. A nil return means admitted. The checks run in
// a fixed order so a failing persona always gets the same reason back.
func CheckAdmission(s *life.State, c catalog.Course, major string) *AdmissionError {
	if s.IsCurrentlyEnrolled {
		return reject(ReasonAlreadyEnrolled, "already enrolled in %s", s.CurrentEnrollment.Name)
	}

	if c.RequiredAge > 0 && s.Age < c.RequiredAge {
		return reject(ReasonTooYoung, "requires age %d, persona is %d", c.RequiredAge, s.Age)
	}

	if c.MaxAge > 0 && s.Age > c.MaxAge {
		return reject(ReasonPrerequisitesNotMet, "maximum age %d exceeded", c.MaxAge)
	}
	if s.EducationStatus < c.RequiredStatus && !alternateEntryOK(s, c) {
		return reject(ReasonPrerequisitesNotMet, "requires %s education", c.RequiredStatus)
	}
	if c.MinGPA > 0 && gpaOf(s) < c.MinGPA {
		return reject(ReasonPrerequisitesNotMet, "requires GPA %.1f, persona has %.1f", c.MinGPA, gpaOf(s))
	}
	if len(c.Majors) > 0 {
		if major == "" {
			return reject(ReasonPrerequisitesNotMet, "%s requires choosing a major", c.Name)
		}
		if !c.HasMajor(major) {
			return reject(ReasonPrerequisitesNotMet, "major %s not offered by %s", major, c.Name)
		}
	}

	if s.Money < c.Cost {
		return reject(ReasonInsufficientFunds, "costs %d, persona has %d", c.Cost, s.Money)
	}

	if c.Skill != nil && s.Stat(c.Skill.Stat) < c.Skill.Min {
		return reject(ReasonSkillTooLow, "requires %s >= %d", c.Skill.Stat, c.Skill.Min)
	}

	if c.RequiredExam != "" && (s.Profile == nil || !s.Profile.HasExam(c.RequiredExam)) {
		return reject(ReasonMissingExam, "requires passing %s", c.RequiredExam)
	}

	if c.WorkYears > 0 && (s.Profile == nil || s.Profile.YearsWorked < c.WorkYears) {
		return reject(ReasonInsufficientExperience, "requires %d years of work", c.WorkYears)
	}

	for _, blocked := range c.BlockedBy {
		if s.HasCertificate(blocked) {
			return reject(ReasonBlockedByConstraint, "blocked by completed certificate %s", blocked)
		}
	}
	if major != "" && s.HasUniversityCombo(c.ID+"-"+major) {
		return reject(ReasonBlockedByConstraint, "%s already completed with major %s", c.Name, major)
	}

	return nil
}

func alternateEntryOK(s *life.State, c catalog.Course) bool {
	alt := c.AlternateEntry
	if alt == nil {
		return false
	}
	return s.EducationStatus >= alt.MinStatus && gpaOf(s) >= alt.MinGPA
}

func gpaOf(s *life.State) float64 {
	if s.Profile == nil {
		return 0
	}
	return s.Profile.GPA
}

// GrantedStatus resolves the tier a finished course awards. The
// explicit GrantsStatus field always wins; the name-keyword scan is a
// deprecated fallback for legacy catalog rows and reports inferred=true
// so callers can log the hit.
func GrantedStatus(e life.Enrollment) (status life.EducationStatus, inferred bool) {
	if e.GrantsStatus != nil {
		return *e.GrantsStatus, false
	}
	name := strings.ToLower(e.Name)
	switch {
	case strings.Contains(name, "master"):
		return life.StatusMaster, true
	case strings.Contains(name, "bachelor"):
		return life.StatusBachelor, true
	case strings.Contains(name, "associate"):
		return life.StatusAssociate, true
	default:
		return life.StatusNone, false
	}
}

// GPA bounds used everywhere a grade average is produced.
const (
	GPAMin = 2.0
	GPAMax = 4.0
)

// InitialGPA derives a starting grade average from smarts.
func InitialGPA(smarts int) float64 {
	return clampGPA(GPAMin + float64(smarts)/100.0*2.0)
}

// DriftGPA moves a grade average one year toward the smarts-implied
// target with a small random wobble. roll must be in [0,1).
func DriftGPA(gpa float64, smarts int, roll float64) float64 {
	target := InitialGPA(smarts)
	next := gpa + (target-gpa)*0.3 + (roll-0.5)*0.2
	return clampGPA(next)
}

func clampGPA(g float64) float64 {
	if g < GPAMin {
		return GPAMin
	}
	if g > GPAMax {
		return GPAMax
	}
	return g
}

// PreschoolBoost returns the smarts and happiness gain awarded when a
// preschool-stage course completes. Fee-paying programs pay out more.
func PreschoolBoost(feePaying bool) (smarts, happiness int) {
	if feePaying {
		return 20, 25
	}
	return 10, 15
}
