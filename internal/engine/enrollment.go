package engine

import (
	"fmt"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/domain/rules"
	"github.com/simslyfe/server/internal/events"
)

// EnrollCourse attempts to enroll the persona into a course. major must
// name one of the course's majors for university-level offerings and be
// empty otherwise. On rejection the state is untouched except for the
// failure event; the returned error is a *rules.AdmissionError.
func (st *Store) EnrollCourse(course catalog.Course, major string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if aerr := st.enrollLocked(course, major); aerr != nil {
		return aerr
	}
	return nil
}

// enrollLocked runs the admission checks and installs the enrollment.
// Must be called with the store lock held. Auto-enrollment paths call
// this directly so manual and automatic placement share one rulebook.
func (st *Store) enrollLocked(course catalog.Course, major string) *rules.AdmissionError {
	s := st.state

	if aerr := rules.CheckAdmission(s, course, major); aerr != nil {
		st.appendEvent(events.KindEnrollmentFailed,
			fmt.Sprintf("Enrollment in %s rejected: %s.", course.Name, aerr.Detail))
		st.notifier.Error("Enrollment failed", aerr.Detail)
		st.collector.RecordEnrollment(false, string(aerr.Reason))
		st.log.Warn("enrollment rejected",
			"course", course.ID, "reason", aerr.Reason, "detail", aerr.Detail)
		return aerr
	}

	s.Money -= course.Cost

	var grants *life.EducationStatus
	if course.GrantsStatus != nil {
		g := *course.GrantsStatus
		grants = &g
	}
	s.SetEnrollment(&life.Enrollment{
		ID:            course.ID,
		Name:          course.Name,
		Major:         major,
		Stage:         course.Stage,
		Duration:      course.Duration,
		TimeRemaining: course.Duration,
		Cost:          course.Cost,
		GrantsStatus:  grants,
		CurrentGPA:    rules.InitialGPA(s.Smarts),
		FeePaying:     !course.Public,
	})

	label := course.Name
	if major != "" {
		label = fmt.Sprintf("%s (%s)", course.Name, major)
	}
	st.appendEvent(events.KindEnrollment, fmt.Sprintf("Enrolled in %s.", label))
	st.notifier.Info("Enrolled", fmt.Sprintf("Now attending %s.", label))
	st.collector.RecordEnrollment(true, "")
	st.log.Event(string(events.KindEnrollment), s.Age, label)

	st.autosaveLocked()
	return nil
}

// DropEnrollment abandons the current course. penalty is deducted from
// money (it may push the balance negative). No-op when not enrolled.
func (st *Store) DropEnrollment(penalty int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.state
	if s.CurrentEnrollment == nil {
		return
	}
	name := s.CurrentEnrollment.Name
	if penalty > 0 {
		s.Money -= penalty
	}
	s.ClearEnrollment()

	st.appendEvent(events.KindEnrollmentDrop, fmt.Sprintf("Dropped out of %s.", name))
	st.notifier.Info("Dropped out", fmt.Sprintf("No longer attending %s.", name))
	st.log.Event(string(events.KindEnrollmentDrop), s.Age, name)
	st.autosaveLocked()
}

// completeEnrollment finalizes a finished course: records the paper
// trail, applies completion effects, clears the enrollment and tries
// the same-tick handover into the next compulsory stage.
func (st *Store) completeEnrollment(e life.Enrollment) {
	s := st.state

	s.CompletedDegrees = appendUnique(s.CompletedDegrees, e.Name)
	s.CompletedCertificates = appendUnique(s.CompletedCertificates, e.ID)
	if e.Major != "" {
		s.CompletedUniversityCourses = appendUnique(s.CompletedUniversityCourses, e.ID+"-"+e.Major)
	}
	if s.Profile != nil {
		s.Profile.GPA = e.CurrentGPA
	}

	if e.Stage == life.StagePreschool {
		// Preschool awards a development boost instead of a status tier.
		smarts, happiness := rules.PreschoolBoost(e.FeePaying)
		sd := s.AdjustStat(life.StatSmarts, smarts)
		hd := s.AdjustStat(life.StatHappiness, happiness)
		st.appendEvent(events.KindCompletion,
			fmt.Sprintf("Completed %s. Smarts %+d, Happiness %+d.", e.Name, sd, hd))
	} else {
		st.appendEvent(events.KindCompletion, fmt.Sprintf("Completed %s.", e.Name))
		granted, inferred := rules.GrantedStatus(e)
		if inferred {
			st.log.Warn("course granted status via name heuristic; catalog row should set grantsStatus",
				"course", e.ID, "status", granted)
		}
		if granted > s.EducationStatus {
			s.EducationStatus = granted
			st.appendEvent(events.KindStatusChange,
				fmt.Sprintf("Education level is now %s.", granted))
		}
	}

	s.ClearEnrollment()
	st.notifier.Info("Graduation", fmt.Sprintf("Completed %s.", e.Name))
	st.log.Event(string(events.KindCompletion), s.Age, e.Name)

	st.autoEnrollNextStage(e.Stage)
	st.autosaveLocked()
}

// autoEnrollNextStage continues compulsory schooling in the same tick
// when the completion year lands exactly on the next stage's entry age.
// Gap years (countries whose stages don't chain) are picked up by the
// yearly sweep instead.
func (st *Store) autoEnrollNextStage(finished life.Stage) {
	s := st.state
	code := st.country()
	if code == "" {
		return
	}

	var next life.Stage
	switch finished {
	case life.StagePreschool:
		next = life.StagePrimary
	case life.StagePrimary:
		next = life.StageSecondary
	default:
		return
	}

	course, ok := catalog.Lookup(code).FirstFree(next)
	if !ok || course.RequiredAge != s.Age {
		return
	}
	st.enrollLocked(course, "")
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
