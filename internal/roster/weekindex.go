package roster

import "time"

// MonthWeekIndex maps every date of the given month (formatted with
// DateLayout) to a 1-based calendar-week ordinal. Weeks start on Sunday and
// only weeks containing at least one day of the month are counted, so a week
// straddling a month boundary is week 1 of the later month and the final week
// of the earlier one. August 2025 yields 08-01 -> 1, 08-03 -> 2, 08-31 -> 6.
func MonthWeekIndex(year int, month time.Month) map[string]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// Back up to the Sunday on or before the first of the month.
	cursor := first.AddDate(0, 0, -int(first.Weekday()))

	index := make(map[string]int, last.Day())
	week := 0
	for ; !cursor.After(last); cursor = cursor.AddDate(0, 0, 7) {
		counted := false
		for offset := 0; offset < 7; offset++ {
			day := cursor.AddDate(0, 0, offset)
			if day.Month() != month || day.Year() != year {
				continue
			}
			if !counted {
				week++
				counted = true
			}
			index[day.Format(DateLayout)] = week
		}
	}
	return index
}
