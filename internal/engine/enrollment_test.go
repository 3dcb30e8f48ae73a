package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/domain/rules"
)

func openCourse(id string, cost int) catalog.Course {
	return catalog.Course{ID: id, Name: "Course " + id, Stage: life.StageOnline, Duration: 1, Cost: cost}
}

func TestEnrollDeductsCostExactlyOnce(t *testing.T) {
	st := newTestStore(1, "AU")

	err := st.EnrollCourse(openCourse("c1", 200), "")
	require.NoError(t, err)
	assert.Equal(t, 800, st.Snapshot().Money)

	// Immediate second attempt fails and must not touch the balance.
	err = st.EnrollCourse(openCourse("c2", 200), "")
	require.Error(t, err)
	var aerr *rules.AdmissionError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, rules.ReasonAlreadyEnrolled, aerr.Reason)

	s := st.Snapshot()
	assert.Equal(t, 800, s.Money)
	assert.Equal(t, "c1", s.CurrentEnrollment.ID)
}

func TestEnrollWhileEnrolledAlwaysFails(t *testing.T) {
	st := newTestStore(1, "AU")
	require.NoError(t, st.EnrollCourse(openCourse("base", 0), ""))

	// Even a free no-prerequisite course, and even the same course.
	for _, c := range []catalog.Course{openCourse("other", 0), openCourse("base", 0)} {
		err := st.EnrollCourse(c, "")
		var aerr *rules.AdmissionError
		require.True(t, errors.As(err, &aerr))
		assert.Equal(t, rules.ReasonAlreadyEnrolled, aerr.Reason)
	}
}

func TestEnrollRejectionLeavesStateUntouched(t *testing.T) {
	st := newTestStore(1, "AU")
	before := st.Snapshot()

	err := st.EnrollCourse(openCourse("pricey", 5000), "")
	var aerr *rules.AdmissionError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, rules.ReasonInsufficientFunds, aerr.Reason)

	after := st.Snapshot()
	assert.Equal(t, before.Money, after.Money)
	assert.False(t, after.IsCurrentlyEnrolled)
	// The failed attempt is still visible in the life's history.
	require.NotEmpty(t, after.EventLog)
	assert.Contains(t, after.EventLog[len(after.EventLog)-1], "rejected")
}

func TestEnrollInitializesGPAFromSmarts(t *testing.T) {
	st := newTestStore(1, "AU")
	mutateState(st, func(s *life.State) { s.Smarts = 80 })

	require.NoError(t, st.EnrollCourse(openCourse("c", 0), ""))

	assert.InDelta(t, 3.6, st.Snapshot().CurrentEnrollment.CurrentGPA, 0.001)
}

func TestEnrollRecordsMajorLabel(t *testing.T) {
	st := newTestStore(1, "US")
	mutateState(st, func(s *life.State) {
		s.Age = 18
		s.Money = 50000
		s.EducationStatus = life.StatusSecondary
		s.Profile.GPA = 3.0
		s.Profile.PassedExams = []string{"SAT"}
	})
	course, ok := catalog.Lookup("US").CourseByID("us_university")
	require.True(t, ok)

	require.NoError(t, st.EnrollCourse(course, "Biology"))

	s := st.Snapshot()
	assert.Equal(t, "Biology", s.CurrentEnrollment.Major)
	assert.Equal(t, 10000, s.Money)
	assert.Contains(t, s.EventLog[len(s.EventLog)-1], "State University (Biology)")
}

func TestUniversityCompletionRecordsComboAndBlocksRepeat(t *testing.T) {
	st := newTestStore(1, "US")
	mutateState(st, func(s *life.State) {
		s.Age = 21
		s.Money = 100000
		s.EducationStatus = life.StatusSecondary
		s.Profile.GPA = 3.0
		s.Profile.PassedExams = []string{"SAT"}
		s.SetEnrollment(&life.Enrollment{
			ID: "us_university", Name: "State University", Major: "Biology",
			Stage: life.StageUniversity, Duration: 4, TimeRemaining: 1,
			GrantsStatus: statusPtr(life.StatusBachelor), CurrentGPA: 3.4,
		})
	})

	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, life.StatusBachelor, s.EducationStatus)
	assert.Contains(t, s.CompletedUniversityCourses, "us_university-Biology")
	assert.False(t, s.IsCurrentlyEnrolled)

	// Same course, same major: blocked.
	course, _ := catalog.Lookup("US").CourseByID("us_university")
	err := st.EnrollCourse(course, "Biology")
	var aerr *rules.AdmissionError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, rules.ReasonBlockedByConstraint, aerr.Reason)

	// Same course, different major: allowed.
	require.NoError(t, st.EnrollCourse(course, "Economics"))
}

func TestStatusNeverRegresses(t *testing.T) {
	st := newTestStore(1, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 30
		s.EducationStatus = life.StatusMaster
		s.SetEnrollment(&life.Enrollment{
			ID: "au_tafe_diploma", Name: "TAFE Diploma",
			Stage: life.StageCommunity, Duration: 2, TimeRemaining: 1,
			GrantsStatus: statusPtr(life.StatusAssociate), CurrentGPA: 3.0,
		})
	})

	st.AdvanceYear()

	assert.Equal(t, life.StatusMaster, st.Snapshot().EducationStatus)
}

func TestDropEnrollment(t *testing.T) {
	st := newTestStore(1, "AU")
	require.NoError(t, st.EnrollCourse(openCourse("c", 100), ""))
	require.Equal(t, 900, st.Snapshot().Money)

	st.DropEnrollment(250)

	s := st.Snapshot()
	assert.Equal(t, 650, s.Money)
	assert.False(t, s.IsCurrentlyEnrolled)
	assert.Nil(t, s.CurrentEnrollment)
	assert.Contains(t, s.EventLog[len(s.EventLog)-1], "Dropped out")
}

func TestDropEnrollmentNoopWhenNotEnrolled(t *testing.T) {
	st := newTestStore(1, "AU")
	before := st.Snapshot()

	st.DropEnrollment(500)

	after := st.Snapshot()
	assert.Equal(t, before.Money, after.Money)
	assert.Equal(t, len(before.EventLog), len(after.EventLog))
}

func TestDroppedCourseIsNotProgressed(t *testing.T) {
	st := newTestStore(1, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 20
		s.SetEnrollment(&life.Enrollment{
			ID: "c", Name: "Course", Stage: life.StageOnline,
			Duration: 1, TimeRemaining: 1, CurrentGPA: 3.0,
		})
	})

	st.DropEnrollment(0)
	st.AdvanceYear()

	s := st.Snapshot()
	assert.NotContains(t, s.CompletedCertificates, "c")
}
