package roster

import (
	"errors"
	"fmt"
	"time"
)

// DaySchedule is the assignment state for a single date: one ordered roster
// per branch, the list of employees off that day, a free-text memo, and a
// store-wide closure flag. When Closed is true both rosters and the holiday
// list must stay empty.
type DaySchedule struct {
	Date     string
	Working  map[Branch][]int
	Holidays []int
	Memo     string
	Closed   bool
}

// NewDaySchedule is the single constructor for day schedules. Every collection
// is allocated so callers never need to nil-check branch rosters.
func NewDaySchedule(date string) *DaySchedule {
	return &DaySchedule{
		Date:     date,
		Working:  map[Branch][]int{BranchA: {}, BranchB: {}},
		Holidays: []int{},
	}
}

// Validate checks the day-schedule invariants: a parsable date, rosters
// within capacity, every employee holding at most one status, and nothing
// scheduled on a closed day.
func (s *DaySchedule) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("invalid schedule date %q", s.Date)
	}

	occupied := len(s.Holidays)
	for _, branch := range Branches {
		occupied += len(s.Working[branch])
		if len(s.Working[branch]) > BranchCapacity {
			return fmt.Errorf("branch %s roster exceeds %d slots", branch, BranchCapacity)
		}
	}
	if s.Closed && occupied > 0 {
		return errors.New("closed day must have no assignments")
	}

	seen := make(map[int]struct{}, occupied)
	for _, branch := range Branches {
		for _, id := range s.Working[branch] {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("employee %d holds more than one status", id)
			}
			seen[id] = struct{}{}
		}
	}
	for _, id := range s.Holidays {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("employee %d holds more than one status", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// AssignedIDs returns the set of employees on either branch roster.
func (s *DaySchedule) AssignedIDs() map[int]struct{} {
	assigned := make(map[int]struct{})
	for _, branch := range Branches {
		for _, id := range s.Working[branch] {
			assigned[id] = struct{}{}
		}
	}
	return assigned
}

// Contains reports whether the employee appears anywhere in the day's state.
func (s *DaySchedule) Contains(id int) bool {
	if _, ok := s.AssignedIDs()[id]; ok {
		return true
	}
	for _, h := range s.Holidays {
		if h == id {
			return true
		}
	}
	return false
}

// RemoveEmployee strips the employee from both rosters and the holiday list.
// It reports whether anything changed.
func (s *DaySchedule) RemoveEmployee(id int) bool {
	changed := false
	for _, branch := range Branches {
		trimmed := removeID(s.Working[branch], id)
		if len(trimmed) != len(s.Working[branch]) {
			s.Working[branch] = trimmed
			changed = true
		}
	}
	trimmed := removeID(s.Holidays, id)
	if len(trimmed) != len(s.Holidays) {
		s.Holidays = trimmed
		changed = true
	}
	return changed
}

// Clone returns a deep copy of the schedule.
func (s *DaySchedule) Clone() *DaySchedule {
	out := NewDaySchedule(s.Date)
	out.Memo = s.Memo
	out.Closed = s.Closed
	for _, branch := range Branches {
		out.Working[branch] = append([]int{}, s.Working[branch]...)
	}
	out.Holidays = append([]int{}, s.Holidays...)
	return out
}

func removeID(ids []int, target int) []int {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	if out == nil {
		return []int{}
	}
	return out
}
