// utils/dates.go
package utils

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	DateLayout = "2006-01-02" // YYYY-MM-DD
	TimeLayout = "15:04"      // HH:MM, 24-hour
)

var (
	salonLocation     *time.Location
	salonLocationOnce sync.Once
)

// SalonLocation returns the single operational timezone used for all
// day-of-week and daily-quota bucketing. Configured via SALON_TIMEZONE.
func SalonLocation() *time.Location {
	salonLocationOnce.Do(func() {
		name := os.Getenv("SALON_TIMEZONE")
		if name == "" {
			name = "Asia/Kolkata"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			loc = time.UTC
		}
		salonLocation = loc
	})
	return salonLocation
}

// Now returns the current instant in the operational timezone.
func Now() time.Time {
	return time.Now().In(SalonLocation())
}

// ParseDate parses a YYYY-MM-DD string in the operational timezone.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, SalonLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// ParseTimeOfDay validates an HH:MM string and returns minutes since midnight.
// Strictly zero-padded: unpadded forms like "9:00" are rejected, since times
// are compared and sorted lexically throughout.
func ParseTimeOfDay(timeOfDay string) (int, error) {
	if len(timeOfDay) != len(TimeLayout) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", timeOfDay)
	}
	t, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", timeOfDay)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CombineDateTime composes a YYYY-MM-DD date and an HH:MM time into a single
// instant in the operational timezone.
func CombineDateTime(date, timeOfDay string) (time.Time, error) {
	if len(timeOfDay) != len(TimeLayout) {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q", date, timeOfDay)
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeOfDay, SalonLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q", date, timeOfDay)
	}
	return t, nil
}

// WeekdayAbbrev returns the three-letter weekday abbreviation (Mon..Sun).
func WeekdayAbbrev(t time.Time) string {
	return t.Weekday().String()[:3]
}

// FormatMinutesOfDay renders minutes since midnight back to HH:MM.
func FormatMinutesOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsValidWeekdayAbbrev reports whether s is one of Mon..Sun.
func IsValidWeekdayAbbrev(s string) bool {
	switch s {
	case "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun":
		return true
	}
	return false
}
