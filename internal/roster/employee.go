package roster

import "time"

// DateLayout is the wire and storage format for schedule dates.
const DateLayout = "2006-01-02"

// Branch identifies one of the two store locations.
type Branch string

const (
	// BranchA is the first store location. It has first claim on shared
	// candidates during assignment.
	BranchA Branch = "A"
	// BranchB is the second store location.
	BranchB Branch = "B"
)

// Branches lists the branch codes in assignment order.
var Branches = [...]Branch{BranchA, BranchB}

// ValidBranch reports whether code names a known branch.
func ValidBranch(code Branch) bool {
	return code == BranchA || code == BranchB
}

// Skill classifies whether an employee can cover the kitchen-skilled role.
type Skill string

const (
	// SkillCook marks an employee able to run the kitchen.
	SkillCook Skill = "cook"
	// SkillFloor marks an employee without kitchen training.
	SkillFloor Skill = "floor"
)

// ValidSkill reports whether s names a known skill level.
func ValidSkill(s Skill) bool {
	return s == SkillCook || s == SkillFloor
}

// Employee carries the attributes the assignment engine needs. IDs are
// assigned monotonically by the registry.
type Employee struct {
	ID               int
	Name             string
	Role             string
	Skill            Skill
	HomeBranch       Branch
	FixedHolidays    []time.Weekday
	HolidayRequests  []string
	MinShiftsPerWeek int
	MaxShiftsPerWeek int
}

// HasFixedHoliday reports whether day is a permanent day off for the employee.
func (e Employee) HasFixedHoliday(day time.Weekday) bool {
	for _, d := range e.FixedHolidays {
		if d == day {
			return true
		}
	}
	return false
}

// HasRequestedOff reports whether the employee requested the specific date off.
func (e Employee) HasRequestedOff(date string) bool {
	for _, d := range e.HolidayRequests {
		if d == date {
			return true
		}
	}
	return false
}
