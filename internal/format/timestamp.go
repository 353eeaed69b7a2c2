package format

import (
	"fmt"
	"time"
)

// Never is shown for jobs that have no recorded run.
const Never = "Never"

// Clock renders timestamps relative to Now, which is read on every call.
type Clock struct {
	Now      func() time.Time
	ShowTime bool
}

func NewClock(showTime bool) Clock {
	return Clock{Now: time.Now, ShowTime: showTime}
}

// Relative renders ts as "Today, 2 Hours ago", "Yesterday" or
// "Friday, March 1st (16 days ago)". Days are counted in calendar days of
// the current location.
func (c Clock) Relative(ts time.Time) string {
	if ts.IsZero() {
		return Never
	}
	now := c.now()
	ts = ts.In(now.Location())

	days := calendarDays(ts, now)
	switch {
	case days < 0:
		// Clock skew with the director; no relative phrase fits.
		return c.Date(ts)
	case days == 0:
		elapsed := now.Sub(ts)
		if elapsed < 0 {
			elapsed = 0
		}
		if hours := int(elapsed / time.Hour); hours > 0 {
			return fmt.Sprintf("Today, %d Hours ago", hours)
		}
		return fmt.Sprintf("Today, %d Minutes ago", int(elapsed/time.Minute))
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%s (%d days ago)", c.Date(ts), days)
	}
}

// Date renders ts as "Friday, March 1st", followed by the 12-hour time when
// ShowTime is set.
func (c Clock) Date(ts time.Time) string {
	s := fmt.Sprintf("%s, %s %d%s", ts.Weekday(), ts.Month(), ts.Day(), OrdinalSuffix(ts.Day()))
	if c.ShowTime {
		s += " " + ts.Format("03:04 PM")
	}
	return s
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func OrdinalSuffix(day int) string {
	if m := day % 100; m >= 11 && m <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func calendarDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
