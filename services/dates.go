package services

import "time"

const dateLayout = "2006-01-02"

// NewContractCutoff: employees joining on or after this date are on the new
// contract scheme, where leave validity is deferred until probation ends.
var NewContractCutoff = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayInMonth returns the given day of the month, clamped to the month's
// length so a day-31 anchor lands on Feb 28/29, Apr 30 and so on.
func dayInMonth(year int, month time.Month, day int) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// yearsBetween returns the number of whole years elapsed from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if from.AddDate(years, 0, 0).After(to) {
		years--
	}
	return years
}

// CountWorkingDays counts Monday through Friday dates in [from, to].
func CountWorkingDays(from, to time.Time) int {
	days := 0
	for d := dateOnly(from); !d.After(dateOnly(to)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
