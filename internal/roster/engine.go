package roster

import (
	"errors"
	"fmt"
	"time"
)

// BranchCapacity is the number of shift slots per branch per day.
const BranchCapacity = 2

// DefaultWeeklyOffCap is the soft limit on engine-granted days off per
// calendar week before an employee drops to the overflow bucket.
const DefaultWeeklyOffCap = 2

// ErrNoEmployees is returned when the engine runs against an empty registry.
// The schedule map is left untouched in that case.
var ErrNoEmployees = errors.New("roster: no employees registered")

// ErrInvalidRange is wrapped by errors reported for a malformed start date or
// a non-positive day count.
var ErrInvalidRange = errors.New("roster: invalid assignment range")

// Options tune a single engine run.
type Options struct {
	// Overwrite discards pre-existing branch rosters instead of filling
	// around them.
	Overwrite bool
	// WeeklyOffCap is the soft per-week days-off preference threshold.
	WeeklyOffCap int
}

// Engine performs the automatic shift assignment. It owns no state between
// runs; weekly shift counters and the off-count ledger are rebuilt on every
// invocation.
type Engine struct {
	rand Rand
}

// NewEngine constructs an engine around the given random source. A nil source
// falls back to the shared math/rand/v2 generator.
func NewEngine(r Rand) *Engine {
	if r == nil {
		r = SystemRand()
	}
	return &Engine{rand: r}
}

type offKey struct {
	week int
	id   int
}

// Run assigns shifts for the dates [start, start+days-1], mutating the
// schedule map in place. Missing dates are created through NewDaySchedule,
// closed dates are skipped untouched, and with Options.Overwrite false any
// pre-existing roster members keep their slots. Every employee ends each
// non-closed day either on a branch roster or in the holiday list.
//
// The caller owns persistence: Run never loads or saves anything, and assumes
// the schedule map is consistent with the employee list (no dangling IDs).
func (e *Engine) Run(employees []Employee, schedules map[string]*DaySchedule, start string, days int, opts Options) error {
	startDay, err := time.Parse(DateLayout, start)
	if err != nil {
		return fmt.Errorf("%w: unparsable start date %q", ErrInvalidRange, start)
	}
	if days < 1 {
		return fmt.Errorf("%w: day count %d is not positive", ErrInvalidRange, days)
	}
	if len(employees) == 0 {
		return ErrNoEmployees
	}
	if opts.WeeklyOffCap < 0 {
		opts.WeeklyOffCap = 0
	}

	byID := make(map[int]Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	weeklyShifts := make(map[int]int, len(employees))
	offLedger := make(map[offKey]int)

	var weekIndex map[string]int
	indexedYear, indexedMonth := 0, time.Month(0)

	for i := 0; i < days; i++ {
		day := startDay.AddDate(0, 0, i)
		date := day.Format(DateLayout)

		// Weekly shift counters reset when the iteration crosses into a
		// new ISO week.
		if i > 0 && day.Weekday() == time.Monday {
			clear(weeklyShifts)
		}
		if weekIndex == nil || day.Year() != indexedYear || day.Month() != indexedMonth {
			weekIndex = MonthWeekIndex(day.Year(), day.Month())
			indexedYear, indexedMonth = day.Year(), day.Month()
		}

		sched, ok := schedules[date]
		if !ok {
			sched = NewDaySchedule(date)
			schedules[date] = sched
		}
		if sched.Closed {
			continue
		}

		if opts.Overwrite {
			sched.Working = map[Branch][]int{BranchA: {}, BranchB: {}}
		}

		// Preserved occupants hold their slots, count as assigned for the
		// day, and consume a weekly shift like any engine placement.
		assigned := make(map[int]struct{})
		for _, branch := range Branches {
			for _, id := range sched.Working[branch] {
				assigned[id] = struct{}{}
				weeklyShifts[id]++
			}
		}

		available := make(map[int]bool, len(employees))
		for _, emp := range employees {
			available[emp.ID] = emp.MaxShiftsPerWeek > weeklyShifts[emp.ID] &&
				!emp.HasFixedHoliday(day.Weekday()) &&
				!emp.HasRequestedOff(date)
		}

		for _, branch := range Branches {
			e.fillBranch(branch, sched, employees, byID, available, assigned, weeklyShifts)
		}

		sched.Holidays = e.markHolidays(employees, assigned, weekIndex[date], offLedger, opts.WeeklyOffCap)
	}
	return nil
}

// fillBranch tops the branch roster up to BranchCapacity from the available,
// not-yet-assigned candidates. A branch is only staffed when it can hold at
// least two workers; a lone candidate stays unassigned rather than opening a
// branch alone.
func (e *Engine) fillBranch(branch Branch, sched *DaySchedule, employees []Employee, byID map[int]Employee, available map[int]bool, assigned map[int]struct{}, weeklyShifts map[int]int) {
	var homeCooks, homeFloor, crossCooks, crossFloor []Employee
	for _, emp := range employees {
		if !available[emp.ID] {
			continue
		}
		if _, taken := assigned[emp.ID]; taken {
			continue
		}
		home := emp.HomeBranch == branch
		switch {
		case home && emp.Skill == SkillCook:
			homeCooks = append(homeCooks, emp)
		case home:
			homeFloor = append(homeFloor, emp)
		case emp.Skill == SkillCook:
			crossCooks = append(crossCooks, emp)
		default:
			crossFloor = append(crossFloor, emp)
		}
	}

	candidates := len(homeCooks) + len(homeFloor) + len(crossCooks) + len(crossFloor)
	if len(sched.Working[branch])+candidates < 2 {
		return
	}

	slots := func() int { return BranchCapacity - len(sched.Working[branch]) }
	place := func(emp Employee) {
		sched.Working[branch] = append(sched.Working[branch], emp.ID)
		assigned[emp.ID] = struct{}{}
		weeklyShifts[emp.ID]++
	}

	// First choice: random cook/floor pairs from the home pool.
	for slots() >= 2 && len(homeCooks) > 0 && len(homeFloor) > 0 {
		var cook, floor Employee
		homeCooks, cook = e.pick(homeCooks)
		homeFloor, floor = e.pick(homeFloor)
		place(cook)
		place(floor)
	}

	// Second choice: repair a missing skill, home pool before cross pool.
	if slots() > 0 && !rosterHasSkill(sched.Working[branch], byID, SkillCook) {
		if emp, ok := e.take(&homeCooks, &crossCooks); ok {
			place(emp)
		}
	}
	if slots() > 0 && !rosterHasSkill(sched.Working[branch], byID, SkillFloor) {
		if emp, ok := e.take(&homeFloor, &crossFloor); ok {
			place(emp)
		}
	}

	// Last choice: anyone still available, home pool before cross pool.
	for slots() > 0 {
		emp, ok := e.takeShuffled(&homeCooks, &homeFloor)
		if !ok {
			emp, ok = e.takeShuffled(&crossCooks, &crossFloor)
		}
		if !ok {
			return
		}
		place(emp)
	}
}

// markHolidays marks every unassigned employee off for the day and records the
// decision in the off-count ledger under the date's calendar week. Employees
// below the weekly off cap come first, ordered by how few days off they have
// had this week; those at or past the cap overflow behind them.
func (e *Engine) markHolidays(employees []Employee, assigned map[int]struct{}, week int, ledger map[offKey]int, offCap int) []int {
	var under, over []Employee
	for _, emp := range employees {
		if _, working := assigned[emp.ID]; working {
			continue
		}
		if ledger[offKey{week, emp.ID}] < offCap {
			under = append(under, emp)
		} else {
			over = append(over, emp)
		}
	}

	count := func(emp Employee) int { return ledger[offKey{week, emp.ID}] }
	sortByOffCount(under, count)
	sortByOffCount(over, count)

	slots := len(employees) - len(assigned)
	holidays := make([]int, 0, slots)
	for _, emp := range append(under, over...) {
		if len(holidays) >= slots {
			break
		}
		holidays = append(holidays, emp.ID)
		ledger[offKey{week, emp.ID}]++
	}
	return holidays
}

// pick removes and returns a uniformly random element of the pool.
func (e *Engine) pick(pool []Employee) ([]Employee, Employee) {
	i := e.rand.IntN(len(pool))
	emp := pool[i]
	pool[i] = pool[len(pool)-1]
	return pool[:len(pool)-1], emp
}

// take draws a random element from the first non-empty pool.
func (e *Engine) take(pools ...*[]Employee) (Employee, bool) {
	for _, pool := range pools {
		if len(*pool) == 0 {
			continue
		}
		rest, emp := e.pick(*pool)
		*pool = rest
		return emp, true
	}
	return Employee{}, false
}

// takeShuffled draws one element uniformly across both pools combined.
func (e *Engine) takeShuffled(a, b *[]Employee) (Employee, bool) {
	total := len(*a) + len(*b)
	if total == 0 {
		return Employee{}, false
	}
	i := e.rand.IntN(total)
	if i < len(*a) {
		rest, emp := removeAt(*a, i)
		*a = rest
		return emp, true
	}
	rest, emp := removeAt(*b, i-len(*a))
	*b = rest
	return emp, true
}

func removeAt(pool []Employee, i int) ([]Employee, Employee) {
	emp := pool[i]
	pool[i] = pool[len(pool)-1]
	return pool[:len(pool)-1], emp
}

func rosterHasSkill(ids []int, byID map[int]Employee, skill Skill) bool {
	for _, id := range ids {
		if byID[id].Skill == skill {
			return true
		}
	}
	return false
}

func sortByOffCount(pool []Employee, count func(Employee) int) {
	// Insertion sort keeps the original registry order for ties, so the
	// ordering stays stable and predictable in tests.
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && count(pool[j]) < count(pool[j-1]); j-- {
			pool[j], pool[j-1] = pool[j-1], pool[j]
		}
	}
}
