package persistence

import "time"

// AttendanceRecord is one employee's punch-clock entry for a date. Times are
// stored as HH:MM strings; an empty string means not punched.
type AttendanceRecord struct {
	Date       string
	EmployeeID int
	ClockIn    string
	ClockOut   string
}

// Note is the shared free-text memo kept alongside the schedule.
type Note struct {
	Body      string
	UpdatedAt time.Time
}
