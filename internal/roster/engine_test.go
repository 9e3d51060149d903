package roster

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

func newTestEngine() *Engine {
	return NewEngine(rand.New(rand.NewPCG(7, 11)))
}

// fourEmployeeRegistry is two home employees per branch, one cook and one
// floor worker each.
func fourEmployeeRegistry() []Employee {
	return []Employee{
		{ID: 1, Name: "Asha", Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
		{ID: 2, Name: "Ben", Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
		{ID: 3, Name: "Chika", Skill: SkillCook, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
		{ID: 4, Name: "Dan", Skill: SkillFloor, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
	}
}

func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func assertDayInvariants(t *testing.T, sched *DaySchedule, employees []Employee) {
	t.Helper()

	seen := make(map[int]int)
	for _, branch := range Branches {
		if len(sched.Working[branch]) > BranchCapacity {
			t.Errorf("%s branch %s roster exceeds capacity: %v", sched.Date, branch, sched.Working[branch])
		}
		for _, id := range sched.Working[branch] {
			seen[id]++
		}
	}
	for _, id := range sched.Holidays {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("%s: employee %d holds %d statuses", sched.Date, id, n)
		}
	}
	if total := len(sched.Working[BranchA]) + len(sched.Working[BranchB]) + len(sched.Holidays); total != len(employees) {
		t.Errorf("%s: %d statuses for %d employees", sched.Date, total, len(employees))
	}
}

func TestEngineRun(t *testing.T) {
	t.Parallel()

	t.Run("fills each branch with its home cook and floor pair", func(t *testing.T) {
		t.Parallel()

		employees := fourEmployeeRegistry()
		schedules := map[string]*DaySchedule{}

		err := newTestEngine().Run(employees, schedules, "2025-08-01", 1, Options{WeeklyOffCap: DefaultWeeklyOffCap})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		sched := schedules["2025-08-01"]
		if sched == nil {
			t.Fatal("no schedule produced for 2025-08-01")
		}

		a := idSet(sched.Working[BranchA])
		b := idSet(sched.Working[BranchB])
		for _, id := range []int{1, 2} {
			if _, ok := a[id]; !ok {
				t.Errorf("branch A missing home employee %d: %v", id, sched.Working[BranchA])
			}
		}
		for _, id := range []int{3, 4} {
			if _, ok := b[id]; !ok {
				t.Errorf("branch B missing home employee %d: %v", id, sched.Working[BranchB])
			}
		}
		if len(sched.Holidays) != 0 {
			t.Errorf("expected no holidays, got %v", sched.Holidays)
		}
	})

	t.Run("empty registry aborts without mutation", func(t *testing.T) {
		t.Parallel()

		existing := NewDaySchedule("2025-08-01")
		existing.Working[BranchA] = []int{9}
		schedules := map[string]*DaySchedule{"2025-08-01": existing}

		err := newTestEngine().Run(nil, schedules, "2025-08-01", 1, Options{})
		if !errors.Is(err, ErrNoEmployees) {
			t.Fatalf("expected ErrNoEmployees, got %v", err)
		}
		if len(schedules) != 1 || len(schedules["2025-08-01"].Working[BranchA]) != 1 {
			t.Errorf("schedule store mutated on empty registry: %+v", schedules["2025-08-01"])
		}
	})

	t.Run("malformed start date fails before mutation", func(t *testing.T) {
		t.Parallel()

		schedules := map[string]*DaySchedule{}
		err := newTestEngine().Run(fourEmployeeRegistry(), schedules, "08/01/2025", 1, Options{})
		if !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
		if len(schedules) != 0 {
			t.Errorf("schedule store mutated on invalid input")
		}
	})

	t.Run("non-positive day count fails before mutation", func(t *testing.T) {
		t.Parallel()

		schedules := map[string]*DaySchedule{}
		err := newTestEngine().Run(fourEmployeeRegistry(), schedules, "2025-08-01", 0, Options{})
		if !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
		if len(schedules) != 0 {
			t.Errorf("schedule store mutated on invalid input")
		}
	})

	t.Run("closed days stay untouched even with overwrite", func(t *testing.T) {
		t.Parallel()

		closed := NewDaySchedule("2025-08-02")
		closed.Closed = true
		schedules := map[string]*DaySchedule{"2025-08-02": closed}

		err := newTestEngine().Run(fourEmployeeRegistry(), schedules, "2025-08-01", 3, Options{Overwrite: true, WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		got := schedules["2025-08-02"]
		if !got.Closed {
			t.Fatal("closed flag cleared")
		}
		if len(got.Working[BranchA]) != 0 || len(got.Working[BranchB]) != 0 || len(got.Holidays) != 0 {
			t.Errorf("closed day mutated: %+v", got)
		}
	})

	t.Run("single employee is off every day", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{{ID: 1, Name: "Solo", Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 6}}
		schedules := map[string]*DaySchedule{}

		err := newTestEngine().Run(employees, schedules, "2025-08-01", 7, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		for i := 0; i < 7; i++ {
			date := time.Date(2025, time.August, 1+i, 0, 0, 0, 0, time.UTC).Format(DateLayout)
			sched := schedules[date]
			if sched == nil {
				t.Fatalf("missing schedule for %s", date)
			}
			if len(sched.Working[BranchA]) != 0 || len(sched.Working[BranchB]) != 0 {
				t.Errorf("%s: lone employee assigned to a branch: %+v", date, sched.Working)
			}
			if len(sched.Holidays) != 1 || sched.Holidays[0] != 1 {
				t.Errorf("%s: expected holidays [1], got %v", date, sched.Holidays)
			}
		}
	})

	t.Run("fixed holidays and requested dates are honored", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{
			{ID: 1, Skill: SkillCook, HomeBranch: BranchA, FixedHolidays: []time.Weekday{time.Friday}, MaxShiftsPerWeek: 6},
			{ID: 2, Skill: SkillFloor, HomeBranch: BranchA, HolidayRequests: []string{"2025-08-04"}, MaxShiftsPerWeek: 6},
			{ID: 3, Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
			{ID: 4, Skill: SkillFloor, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
			{ID: 5, Skill: SkillCook, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
			{ID: 6, Skill: SkillFloor, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
		}
		byID := make(map[int]Employee)
		for _, emp := range employees {
			byID[emp.ID] = emp
		}

		schedules := map[string]*DaySchedule{}
		err := newTestEngine().Run(employees, schedules, "2025-08-01", 10, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		for date, sched := range schedules {
			day, err := time.Parse(DateLayout, date)
			if err != nil {
				t.Fatalf("bad date key %q: %v", date, err)
			}
			for _, branch := range Branches {
				for _, id := range sched.Working[branch] {
					emp := byID[id]
					if emp.HasFixedHoliday(day.Weekday()) {
						t.Errorf("%s: employee %d works on a fixed holiday", date, id)
					}
					if emp.HasRequestedOff(date) {
						t.Errorf("%s: employee %d works on a requested day off", date, id)
					}
				}
			}
			assertDayInvariants(t, sched, employees)
		}
	})

	t.Run("statuses stay disjoint and complete over a long run", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{
			{ID: 1, Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 5},
			{ID: 2, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 4},
			{ID: 3, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
			{ID: 4, Skill: SkillCook, HomeBranch: BranchB, MaxShiftsPerWeek: 5},
			{ID: 5, Skill: SkillFloor, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
			{ID: 6, Skill: SkillCook, HomeBranch: BranchB, FixedHolidays: []time.Weekday{time.Sunday}, MaxShiftsPerWeek: 6},
			{ID: 7, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 3},
			{ID: 8, Skill: SkillCook, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
			{ID: 9, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
		}

		schedules := map[string]*DaySchedule{}
		err := newTestEngine().Run(employees, schedules, "2025-08-01", 14, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if len(schedules) != 14 {
			t.Fatalf("expected 14 schedules, got %d", len(schedules))
		}
		for _, sched := range schedules {
			assertDayInvariants(t, sched, employees)
		}
	})

	t.Run("existing assignments survive without overwrite", func(t *testing.T) {
		t.Parallel()

		employees := fourEmployeeRegistry()
		pinned := NewDaySchedule("2025-08-01")
		pinned.Working[BranchB] = []int{1, 2}
		schedules := map[string]*DaySchedule{"2025-08-01": pinned}

		err := newTestEngine().Run(employees, schedules, "2025-08-01", 1, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		sched := schedules["2025-08-01"]
		if got := sched.Working[BranchB]; len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Fatalf("pinned branch B roster disturbed: %v", got)
		}
		// The remaining pair covers branch A from across the street.
		a := idSet(sched.Working[BranchA])
		for _, id := range []int{3, 4} {
			if _, ok := a[id]; !ok {
				t.Errorf("branch A missing cross-branch fill %d: %v", id, sched.Working[BranchA])
			}
		}
		assertDayInvariants(t, sched, employees)
	})

	t.Run("overwrite rebuilds rosters from scratch", func(t *testing.T) {
		t.Parallel()

		employees := fourEmployeeRegistry()
		stale := NewDaySchedule("2025-08-01")
		stale.Working[BranchB] = []int{1, 2}
		schedules := map[string]*DaySchedule{"2025-08-01": stale}

		err := newTestEngine().Run(employees, schedules, "2025-08-01", 1, Options{Overwrite: true, WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		sched := schedules["2025-08-01"]
		a := idSet(sched.Working[BranchA])
		b := idSet(sched.Working[BranchB])
		if _, ok := a[1]; !ok {
			t.Errorf("branch A should regain home employee 1: %v", sched.Working[BranchA])
		}
		if _, ok := b[3]; !ok {
			t.Errorf("branch B should regain home employee 3: %v", sched.Working[BranchB])
		}
		assertDayInvariants(t, sched, employees)
	})

	t.Run("cross-branch cook repairs a missing skill", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{
			{ID: 1, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
			{ID: 2, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
			{ID: 3, Skill: SkillCook, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
			{ID: 4, Skill: SkillCook, HomeBranch: BranchB, MaxShiftsPerWeek: 6},
		}
		schedules := map[string]*DaySchedule{}

		err := newTestEngine().Run(employees, schedules, "2025-08-01", 1, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		sched := schedules["2025-08-01"]
		a := sched.Working[BranchA]
		if len(a) != 2 {
			t.Fatalf("branch A roster not filled: %v", a)
		}
		hasCook := a[0] == 3 || a[0] == 4 || a[1] == 3 || a[1] == 4
		hasFloor := a[0] == 1 || a[0] == 2 || a[1] == 1 || a[1] == 2
		if !hasCook || !hasFloor {
			t.Errorf("branch A lacks the cook/floor mix: %v", a)
		}
		assertDayInvariants(t, sched, employees)
	})

	t.Run("weekly shift cap resets on monday", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{
			{ID: 1, Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 1},
			{ID: 2, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 1},
		}
		schedules := map[string]*DaySchedule{}

		// 2025-08-04 is a Monday; run through the following Monday.
		err := newTestEngine().Run(employees, schedules, "2025-08-04", 8, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		first := schedules["2025-08-04"]
		if len(first.Working[BranchA]) != 2 {
			t.Fatalf("monday roster not filled: %+v", first.Working)
		}
		for i := 1; i < 7; i++ {
			date := time.Date(2025, time.August, 4+i, 0, 0, 0, 0, time.UTC).Format(DateLayout)
			sched := schedules[date]
			if len(sched.Working[BranchA]) != 0 || len(sched.Working[BranchB]) != 0 {
				t.Errorf("%s: employees over their weekly cap were assigned: %+v", date, sched.Working)
			}
		}
		next := schedules["2025-08-11"]
		if len(next.Working[BranchA]) != 2 {
			t.Errorf("counter did not reset on the next monday: %+v", next.Working)
		}
	})

	t.Run("weekly caps hold with preserved assignments", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{
			{ID: 1, Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 2},
			{ID: 2, Skill: SkillFloor, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
			{ID: 3, Skill: SkillCook, HomeBranch: BranchA, MaxShiftsPerWeek: 6},
		}
		pinned := NewDaySchedule("2025-08-04")
		pinned.Working[BranchA] = []int{1, 2}
		schedules := map[string]*DaySchedule{"2025-08-04": pinned}

		err := newTestEngine().Run(employees, schedules, "2025-08-04", 7, Options{WeeklyOffCap: 2})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		worked := 0
		for _, sched := range schedules {
			for _, branch := range Branches {
				for _, id := range sched.Working[branch] {
					if id == 1 {
						worked++
					}
				}
			}
		}
		if worked > 2 {
			t.Errorf("employee 1 worked %d days in one week, cap is 2", worked)
		}
	})
}

func TestMarkHolidays(t *testing.T) {
	t.Parallel()

	t.Run("under-cap employees come first ordered by off count", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{{ID: 1}, {ID: 2}, {ID: 3}}
		ledger := map[offKey]int{
			{week: 1, id: 1}: 2,
			{week: 1, id: 2}: 0,
			{week: 1, id: 3}: 1,
		}

		engine := newTestEngine()
		holidays := engine.markHolidays(employees, map[int]struct{}{}, 1, ledger, 2)

		want := []int{2, 3, 1}
		if len(holidays) != len(want) {
			t.Fatalf("expected %v, got %v", want, holidays)
		}
		for i, id := range want {
			if holidays[i] != id {
				t.Fatalf("expected %v, got %v", want, holidays)
			}
		}
	})

	t.Run("cap zero still marks everyone through the overflow bucket", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{{ID: 1}, {ID: 2}}
		engine := newTestEngine()
		holidays := engine.markHolidays(employees, map[int]struct{}{}, 1, map[offKey]int{}, 0)

		if len(holidays) != 2 {
			t.Fatalf("expected both employees off, got %v", holidays)
		}
	})

	t.Run("assigned employees are never marked off", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{{ID: 1}, {ID: 2}}
		engine := newTestEngine()
		holidays := engine.markHolidays(employees, map[int]struct{}{1: {}}, 1, map[offKey]int{}, 2)

		if len(holidays) != 1 || holidays[0] != 2 {
			t.Fatalf("expected holidays [2], got %v", holidays)
		}
	})

	t.Run("ledger accumulates within a calendar week", func(t *testing.T) {
		t.Parallel()

		employees := []Employee{{ID: 1}, {ID: 2}}
		ledger := map[offKey]int{}
		engine := newTestEngine()

		for i := 0; i < 3; i++ {
			engine.markHolidays(employees, map[int]struct{}{}, 4, ledger, 2)
		}

		if got := ledger[offKey{week: 4, id: 1}]; got != 3 {
			t.Errorf("ledger count = %d, want 3", got)
		}
	})
}
