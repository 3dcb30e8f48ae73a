package engine

import (
	"fmt"
	"time"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/domain/rules"
	"github.com/simslyfe/server/internal/events"
)

// Yearly drift ranges. Money is a net of odd jobs, gifts and expenses;
// health only ever declines with age.
const (
	yearMoneyMin = -200
	yearMoneyMax = 800

	yearHealthDeclineMin = 1
	yearHealthDeclineMax = 3

	schoolSmartsGain    = 2
	schoolHappinessGain = 1

	preschoolEntryAge = 3
)

// AdvanceYear runs one life tick. The phases are ordered: core
// advancement, the age-three preschool gate, the compulsory-school
// sweep, the year notification, enrollment progression and finally
// autosave. Only an enrollment that existed when the tick started is
// progressed, so a course joined during this tick keeps its full
// remaining time.
func (st *Store) AdvanceYear() {
	st.mu.Lock()
	defer st.mu.Unlock()

	started := time.Now()
	s := st.state
	enrolledAtTickStart := s.CurrentEnrollment

	// Phase 1: core advancement.
	s.Age++
	moneyDelta := st.rng.Intn(yearMoneyMax-yearMoneyMin+1) + yearMoneyMin
	s.Money += moneyDelta
	s.GameDate = s.GameDate.AddDate(1, 0, 0)
	decline := yearHealthDeclineMin + st.rng.Intn(yearHealthDeclineMax-yearHealthDeclineMin+1)
	healthDelta := s.AdjustStat(life.StatHealth, -decline)
	happinessDelta := s.AdjustStat(life.StatHappiness, st.rng.Intn(3)-1)

	// Phase 2: preschool gate.
	if s.Age == preschoolEntryAge && !s.IsCurrentlyEnrolled {
		if code := st.country(); code != "" {
			if course, ok := catalog.Lookup(code).FirstFree(life.StagePreschool); ok {
				st.enrollLocked(course, "")
			}
		}
	}

	// Phase 3: compulsory-school sweep.
	st.sweepCompulsorySchool()

	// Phase 4: year summary.
	st.appendEvent(events.KindYearAdvanced,
		fmt.Sprintf("Turned %d. Money %+d, Health %+d, Happiness %+d.",
			s.Age, moneyDelta, healthDelta, happinessDelta))
	if moneyDelta != 0 || healthDelta != 0 || happinessDelta != 0 {
		st.notifier.Info("A year passes",
			fmt.Sprintf("Money %+d, Health %+d, Happiness %+d.", moneyDelta, healthDelta, happinessDelta))
	}

	// Phase 5: enrollment progression.
	st.progressEnrollment(enrolledAtTickStart)

	// Phase 6: autosave.
	st.autosaveLocked()
	st.collector.RecordTick(time.Since(started))
	st.log.Debug("year advanced", "age", s.Age, "money", s.Money)
}

// sweepCompulsorySchool places unenrolled personas back into school.
// It covers late starters (no status at or past primary entry age, e.g.
// a skipped preschool) and countries whose stage ages leave a gap year
// the completion handover cannot bridge.
func (st *Store) sweepCompulsorySchool() {
	s := st.state
	if s.IsCurrentlyEnrolled {
		return
	}
	code := st.country()
	if code == "" {
		return
	}
	entry := catalog.Lookup(code)

	switch s.EducationStatus {
	case life.StatusNone:
		if c, ok := entry.FirstFree(life.StagePrimary); ok && c.RequiredAge > 0 && s.Age >= c.RequiredAge {
			st.enrollLocked(c, "")
		}
	case life.StatusPrimary:
		if c, ok := entry.FirstFree(life.StageSecondary); ok && c.RequiredAge > 0 && s.Age >= c.RequiredAge {
			st.enrollLocked(c, "")
		}
	}
}

// progressEnrollment advances the course that was active at tick start.
// A fault here is contained: the tick's other effects stand, the
// failure goes to the server log only.
func (st *Store) progressEnrollment(enrolled *life.Enrollment) {
	defer func() {
		if r := recover(); r != nil {
			st.log.Error("enrollment progression fault", "panic", r)
		}
	}()

	s := st.state
	if enrolled == nil || s.CurrentEnrollment != enrolled {
		return
	}
	e := s.CurrentEnrollment
	e.TimeRemaining--

	remaining := e.TimeRemaining
	if remaining < 0 {
		remaining = 0
	}
	st.appendEvent(events.KindSchooling,
		fmt.Sprintf("Studied another year at %s (%g remaining).", e.Name, remaining))

	if e.Stage == life.StagePrimary || e.Stage == life.StageSecondary {
		sd := s.AdjustStat(life.StatSmarts, schoolSmartsGain)
		hd := s.AdjustStat(life.StatHappiness, schoolHappinessGain)
		if sd != 0 || hd != 0 {
			st.appendEvent(events.KindSchooling,
				fmt.Sprintf("School is paying off. Smarts %+d, Happiness %+d.", sd, hd))
		}
	}

	e.CurrentGPA = rules.DriftGPA(e.CurrentGPA, s.Smarts, st.rng.Float64())

	if e.TimeRemaining <= 0 {
		st.completeEnrollment(*e)
	}
}
