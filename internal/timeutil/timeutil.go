// Package timeutil implements parsing and formatting of post schedule times.
// Managers enter times in the bot's local timezone; storage is always UTC.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat indicates the input matched none of the accepted
	// schedule formats.
	ErrInvalidFormat = errors.New("invalid time format")

	// ErrInvalidDate indicates a date that does not exist on the calendar.
	ErrInvalidDate = errors.New("invalid date")

	// ErrPastTime indicates an explicit date/time that already passed.
	ErrPastTime = errors.New("date/time is in the past")
)

var (
	dateTimePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\s+([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)
	clockPattern    = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

// Schedule is a parsed post time.
type Schedule struct {
	// Time is the scheduled moment in UTC. For immediate posts it is the
	// parse reference time.
	Time time.Time

	// Display is the human rendering shown back to the user ("now",
	// "14:30 IST", "25/01 14:30 IST", ...).
	Display string

	// Immediate is true for the "now" keyword.
	Immediate bool
}

// ParsePostTime parses a schedule entered by a user. Accepted forms:
//
//	now                    post immediately
//	HH:MM                  today at that local time, or tomorrow if passed
//	DD/MM HH:MM            explicit date in the current year
//	DD/MM/YYYY HH:MM       explicit date
//
// Explicit dates in the past are rejected; clock-only times roll over to the
// next day instead.
func ParsePostTime(input string, now time.Time, loc *time.Location) (Schedule, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	localNow := now.In(loc)

	if input == "now" {
		return Schedule{Time: now.UTC(), Display: "now", Immediate: true}, nil
	}

	if m := dateTimePattern.FindStringSubmatch(input); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := localNow.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])

		t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
		// time.Date normalizes out-of-range components; reject wrap-around.
		if t.Day() != day || int(t.Month()) != month || t.Year() != year {
			return Schedule{}, fmt.Errorf("%w: %02d/%02d/%04d", ErrInvalidDate, day, month, year)
		}
		if t.Before(localNow) {
			return Schedule{}, ErrPastTime
		}
		return Schedule{Time: t.UTC(), Display: t.Format("02/01/2006 15:04 MST")}, nil
	}

	if m := clockPattern.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])

		t := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), hour, minute, 0, 0, loc)
		if !t.After(localNow) {
			t = t.AddDate(0, 0, 1)
		}

		display := t.Format("15:04 MST")
		if t.YearDay() != localNow.YearDay() || t.Year() != localNow.Year() {
			display = t.Format("02/01 15:04 MST")
		}
		return Schedule{Time: t.UTC(), Display: display}, nil
	}

	return Schedule{}, ErrInvalidFormat
}

// FormatClock renders a stored UTC time as a local wall clock ("14:30 IST").
func FormatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04 MST")
}

// FormatDayClock renders a stored UTC time with its day ("25/01 14:30 IST").
func FormatDayClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01 15:04 MST")
}

// Until renders the time remaining from now until target as "2h 5m" or "12m".
// Targets in the past render as "0m".
func Until(now, target time.Time) string {
	minutes := int(target.Sub(now).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
