package engine

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/domain/persona"
	"github.com/simslyfe/server/internal/notify"
	"github.com/simslyfe/server/internal/platform/logger"
)

func newTestStore(seed int64, country string) *Store {
	st := NewStore(logger.NewNop(), notify.Noop{})
	st.SetRand(rand.New(rand.NewSource(seed)))
	st.SetProfile(persona.NewProfile("Test", "Persona", country))

	s := st.Snapshot()
	s.GameDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st.Restore(s)
	return st
}

// mutateState round-trips the live state through a snapshot edit.
func mutateState(st *Store, mutate func(*life.State)) {
	s := st.Snapshot()
	mutate(&s)
	st.Restore(s)
}

func statusPtr(s life.EducationStatus) *life.EducationStatus {
	return &s
}

func TestFirstTwoYearsNoSchooling(t *testing.T) {
	st := newTestStore(1, "AU")

	st.AdvanceYear()
	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, 2, s.Age)
	assert.False(t, s.IsCurrentlyEnrolled)
	assert.Nil(t, s.CurrentEnrollment)
	assert.Equal(t, life.StatusNone, s.EducationStatus)
}

func TestPreschoolGateAtAgeThree(t *testing.T) {
	st := newTestStore(1, "AU")

	st.AdvanceYear()
	st.AdvanceYear()
	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, 3, s.Age)
	require.NotNil(t, s.CurrentEnrollment)
	assert.Equal(t, life.StagePreschool, s.CurrentEnrollment.Stage)
	assert.Contains(t, s.CurrentEnrollment.Name, "Preschool")
	// Joined this tick, so the countdown hasn't started yet.
	assert.Equal(t, float64(2), s.CurrentEnrollment.TimeRemaining)

	// The enrollment lands before the year summary in the log.
	var enrollIdx, turnedIdx int
	for i, line := range s.EventLog {
		if strings.Contains(line, "Enrolled in") {
			enrollIdx = i
		}
		if strings.Contains(line, "Turned 3.") {
			turnedIdx = i
		}
	}
	assert.Less(t, enrollIdx, turnedIdx)
}

func TestPreschoolCompletionBoostsAndHandsOverToPrimary(t *testing.T) {
	st := newTestStore(7, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 4
		s.Smarts = 50
		s.Happiness = 50
		s.SetEnrollment(&life.Enrollment{
			ID: "au_preschool_public", Name: "Public Preschool",
			Stage: life.StagePreschool, Duration: 2, TimeRemaining: 1,
			CurrentGPA: 3.0,
		})
	})

	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, 5, s.Age)
	// Public preschool boost: +10 smarts, +15 happiness. Happiness also
	// takes the yearly -1..+1 drift.
	assert.Equal(t, 60, s.Smarts)
	assert.InDelta(t, 65, s.Happiness, 1)
	// No status tier from preschool, ever.
	assert.Equal(t, life.StatusNone, s.EducationStatus)
	// Completion at 5 lands exactly on AU primary entry age.
	require.NotNil(t, s.CurrentEnrollment)
	assert.Equal(t, "au_primary_public", s.CurrentEnrollment.ID)
	assert.Equal(t, float64(7), s.CurrentEnrollment.TimeRemaining)
	assert.Contains(t, s.CompletedCertificates, "au_preschool_public")
}

func TestPaidPreschoolBoostsMore(t *testing.T) {
	st := newTestStore(7, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 4
		s.Smarts = 50
		s.SetEnrollment(&life.Enrollment{
			ID: "au_preschool_montessori", Name: "Montessori Preschool",
			Stage: life.StagePreschool, Duration: 2, TimeRemaining: 1,
			FeePaying: true, CurrentGPA: 3.0,
		})
	})

	st.AdvanceYear()

	assert.Equal(t, 70, st.Snapshot().Smarts)
}

func TestPrimaryCompletionGrantsStatusAndEntersSecondary(t *testing.T) {
	st := newTestStore(3, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 11
		s.SetEnrollment(&life.Enrollment{
			ID: "au_primary_public", Name: "Public Primary School",
			Stage: life.StagePrimary, Duration: 7, TimeRemaining: 1,
			GrantsStatus: statusPtr(life.StatusPrimary), CurrentGPA: 3.0,
		})
	})

	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, 12, s.Age)
	assert.Equal(t, life.StatusPrimary, s.EducationStatus)
	require.NotNil(t, s.CurrentEnrollment)
	assert.Equal(t, "au_secondary_public", s.CurrentEnrollment.ID)
	assert.Equal(t, float64(6), s.CurrentEnrollment.TimeRemaining)
}

func TestSweepEnrollsLateStarterIntoPrimary(t *testing.T) {
	// Never attended preschool, missed the exact primary entry age.
	st := newTestStore(5, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 8
	})

	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, 9, s.Age)
	require.NotNil(t, s.CurrentEnrollment)
	assert.Equal(t, "au_primary_public", s.CurrentEnrollment.ID)
	// The sweep enrolls but never fast-forwards the course.
	assert.Equal(t, float64(7), s.CurrentEnrollment.TimeRemaining)
}

func TestSweepEnrollsPrimaryGraduateIntoSecondary(t *testing.T) {
	st := newTestStore(5, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 14
		s.EducationStatus = life.StatusPrimary
	})

	st.AdvanceYear()

	s := st.Snapshot()
	require.NotNil(t, s.CurrentEnrollment)
	assert.Equal(t, "au_secondary_public", s.CurrentEnrollment.ID)
}

func TestSweepIgnoresEnrolledPersonas(t *testing.T) {
	st := newTestStore(5, "AU")
	mutateState(st, func(s *life.State) {
		s.Age = 8
		s.SetEnrollment(&life.Enrollment{
			ID: "au_primary_private", Name: "Private Primary School",
			Stage: life.StagePrimary, Duration: 7, TimeRemaining: 5,
			GrantsStatus: statusPtr(life.StatusPrimary), CurrentGPA: 3.0,
		})
	})

	st.AdvanceYear()

	s := st.Snapshot()
	assert.Equal(t, "au_primary_private", s.CurrentEnrollment.ID)
	assert.Equal(t, float64(4), s.CurrentEnrollment.TimeRemaining)
}

func TestFullAustralianSchoolJourney(t *testing.T) {
	st := newTestStore(42, "AU")

	for year := 0; year < 18; year++ {
		st.AdvanceYear()
	}

	s := st.Snapshot()
	assert.Equal(t, 18, s.Age)
	assert.Equal(t, life.StatusSecondary, s.EducationStatus)
	assert.False(t, s.IsCurrentlyEnrolled)
	assert.Contains(t, s.CompletedDegrees, "Public Preschool")
	assert.Contains(t, s.CompletedDegrees, "Public Primary School")
	assert.Contains(t, s.CompletedDegrees, "Public Secondary School")
	// Finishing school writes the final GPA back to the persona record.
	require.NotNil(t, s.Profile)
	assert.GreaterOrEqual(t, s.Profile.GPA, 2.0)
	assert.LessOrEqual(t, s.Profile.GPA, 4.0)
}

func TestYearlyDriftRanges(t *testing.T) {
	st := newTestStore(99, "US")

	st.AdvanceYear()

	s := st.Snapshot()
	assert.GreaterOrEqual(t, s.Money, 800)
	assert.LessOrEqual(t, s.Money, 1800)
	assert.GreaterOrEqual(t, s.Health, 97)
	assert.LessOrEqual(t, s.Health, 99)
	assert.GreaterOrEqual(t, s.Happiness, 69)
	assert.LessOrEqual(t, s.Happiness, 71)
}

func TestYearEventUsesGameDate(t *testing.T) {
	st := newTestStore(1, "US")

	st.AdvanceYear()

	s := st.Snapshot()
	require.NotEmpty(t, s.EventLog)
	assert.True(t, strings.HasPrefix(s.EventLog[0], "1/1/2025: Turned 1."), s.EventLog[0])
	assert.True(t, s.GameDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestInvariantsHoldOverManyYears(t *testing.T) {
	st := newTestStore(1234, "US")

	prevStatus := life.StatusNone
	for year := 1; year <= 60; year++ {
		st.AdvanceYear()
		s := st.Snapshot()

		assert.Equal(t, year, s.Age)
		for _, stat := range []int{s.Health, s.Happiness, s.Smarts, s.Looks, s.Fame} {
			assert.GreaterOrEqual(t, stat, 0)
			assert.LessOrEqual(t, stat, 100)
		}
		assert.Equal(t, s.CurrentEnrollment != nil, s.IsCurrentlyEnrolled)
		assert.GreaterOrEqual(t, s.EducationStatus, prevStatus, "education status regressed")
		prevStatus = s.EducationStatus
	}
}
