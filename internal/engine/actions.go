package engine

import (
	"fmt"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/events"
)

// Action names as recorded in metrics and the audit trail.
const (
	ActionVisitClinic       = "visit_clinic"
	ActionTakePartTimeWork  = "take_part_time_work"
	ActionInvest            = "invest"
	ActionPlanDate          = "plan_date"
	ActionExercise          = "exercise"
	ActionApplyForPromotion = "apply_for_promotion"
)

const defaultClinicCost = 50

// VisitClinic pays for a checkup. cost <= 0 uses the default rate.
// Money may go negative; healthcare doesn't wait for solvency.
func (st *Store) VisitClinic(cost int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if cost <= 0 {
		cost = defaultClinicCost
	}
	s := st.state
	s.Money -= cost
	hd := s.AdjustStat(life.StatHealth, 15)
	pd := s.AdjustStat(life.StatHappiness, 6)

	st.finishAction(ActionVisitClinic,
		fmt.Sprintf("Visited the clinic. Money %+d, Health %+d, Happiness %+d.", -cost, hd, pd),
		"Clinic visit")
}

// TakePartTimeWork earns a random wage at the cost of some happiness
// and adds a year of work experience to the persona's record.
func (st *Store) TakePartTimeWork() {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.state
	earned := 100 + st.rng.Intn(701)
	s.Money += earned
	pd := s.AdjustStat(life.StatHappiness, -2)
	if s.Profile != nil {
		s.Profile.YearsWorked++
	}

	st.finishAction(ActionTakePartTimeWork,
		fmt.Sprintf("Worked a part-time job. Money %+d, Happiness %+d.", earned, pd),
		"Part-time work")
}

// Invest gambles on the market. The happiness swing scales with the
// outcome, capped at +12 for wins and -18 for losses.
func (st *Store) Invest() {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.state
	delta := st.rng.Intn(2001) - 800 // -800..+1200
	s.Money += delta

	var swing int
	if delta >= 0 {
		swing = delta * 12 / 1200
	} else {
		swing = delta * 18 / 800
	}
	pd := s.AdjustStat(life.StatHappiness, swing)

	st.finishAction(ActionInvest,
		fmt.Sprintf("Played the market. Money %+d, Happiness %+d.", delta, pd),
		"Investment")
}

// PlanDate spends an evening out.
func (st *Store) PlanDate() {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.state
	const cost = 100
	s.Money -= cost
	pd := s.AdjustStat(life.StatHappiness, 8)

	st.finishAction(ActionPlanDate,
		fmt.Sprintf("Went on a date. Money %+d, Happiness %+d.", -cost, pd),
		"Date night")
}

// Exercise works out: free, good for nearly everything.
func (st *Store) Exercise() {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.state
	hd := s.AdjustStat(life.StatHealth, 5)
	pd := s.AdjustStat(life.StatHappiness, 3)
	ld := s.AdjustStat(life.StatLooks, 2)

	st.finishAction(ActionExercise,
		fmt.Sprintf("Hit the gym. Health %+d, Happiness %+d, Looks %+d.", hd, pd, ld),
		"Workout")
}

// ApplyForPromotion asks for more money. Seniority pays: personas 25
// and older land the big bonus.
func (st *Store) ApplyForPromotion() {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.state
	bonus := 500
	if s.Age >= 25 {
		bonus = 2000
	}
	s.Money += bonus
	pd := s.AdjustStat(life.StatHappiness, bonus/250)

	st.finishAction(ActionApplyForPromotion,
		fmt.Sprintf("Got a promotion. Money %+d, Happiness %+d.", bonus, pd),
		"Promotion")
}

// finishAction does the shared bookkeeping tail of every life action.
// Must be called with the store lock held.
func (st *Store) finishAction(name, message, title string) {
	st.appendEvent(events.KindAction, message)
	st.notifier.Info(title, message)
	st.collector.RecordAction(name)
	st.log.Event(string(events.KindAction), st.state.Age, message)
	st.autosaveLocked()
}
