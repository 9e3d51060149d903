package testfixtures

import (
	"time"

	"github.com/example/branch-roster/internal/roster"
)

// Employees returns a canned registry with a cook and a floor worker homed at
// each branch, enough to staff both branches on an open day.
func Employees() []roster.Employee {
	return []roster.Employee{
		{ID: 1, Name: "Aiko", Skill: roster.SkillCook, HomeBranch: roster.BranchA, MaxShiftsPerWeek: 6},
		{ID: 2, Name: "Goro", Skill: roster.SkillFloor, HomeBranch: roster.BranchA, MaxShiftsPerWeek: 6},
		{ID: 3, Name: "Mei", Skill: roster.SkillCook, HomeBranch: roster.BranchB, MaxShiftsPerWeek: 6},
		{ID: 4, Name: "Taro", Skill: roster.SkillFloor, HomeBranch: roster.BranchB, MaxShiftsPerWeek: 6},
	}
}

// EmployeeWithSunday returns an employee who never works Sundays.
func EmployeeWithSunday(id int, branch roster.Branch) roster.Employee {
	return roster.Employee{
		ID:               id,
		Name:             "Weekender",
		Skill:            roster.SkillFloor,
		HomeBranch:       branch,
		FixedHolidays:    []time.Weekday{time.Sunday},
		MaxShiftsPerWeek: 6,
	}
}
