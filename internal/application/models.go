package application

import (
	"time"

	"github.com/example/branch-roster/internal/roster"
)

// EmployeeInput captures caller provided employee attributes.
type EmployeeInput struct {
	Name             string
	Role             string
	Skill            roster.Skill
	HomeBranch       roster.Branch
	FixedHolidays    []time.Weekday
	HolidayRequests  []string
	MinShiftsPerWeek int
	MaxShiftsPerWeek int
}

// DayInput captures caller provided fields for one schedule day.
type DayInput struct {
	Working  map[roster.Branch][]int
	Holidays []int
	Memo     string
	Closed   bool
}

// DayView is a schedule day decorated with its calendar week ordinal.
type DayView struct {
	Date      string
	WeekIndex int
	Working   map[roster.Branch][]int
	Holidays  []int
	Memo      string
	Closed    bool
}

// MonthView aggregates every stored day of one month.
type MonthView struct {
	Year  int
	Month time.Month
	Days  []DayView
}

// AssignParams wraps the data required to run auto-assignment.
type AssignParams struct {
	Start        string
	Days         int
	Overwrite    bool
	WeeklyOffCap int
}

// AssignResult summarizes an auto-assignment run.
type AssignResult struct {
	Start     string
	End       string
	Days      int
	Employees int
}

// AttendanceAdjustment carries override values for a punch record. Nil
// pointers leave the stored field untouched, empty strings clear it.
type AttendanceAdjustment struct {
	ClockIn  *string
	ClockOut *string
}
