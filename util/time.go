package util

import (
	"time"

	"github.com/jinzhu/now"
)

// DateOnlyLayout Layout for date values on query params and filter options.
const DateOnlyLayout = "2006-01-02"

// MonthOnlyLayout Layout for monthly period labels.
const MonthOnlyLayout = "2006-01"

func init() {
	// Weekly periods run Monday to Sunday.
	now.WeekStartDay = time.Monday
}

func TimeNowZ() time.Time {
	return time.Now().UTC()
}

func TimeNowUnix() int64 {
	return TimeNowZ().Unix()
}

// ParseDateOnly Parses a YYYY-MM-DD date string in UTC.
func ParseDateOnly(value string) (time.Time, error) {
	return time.Parse(DateOnlyLayout, value)
}

func GetBeginningOfDay(t time.Time) time.Time {
	return now.New(t).BeginningOfDay()
}

func GetBeginningOfWeek(t time.Time) time.Time {
	return now.New(t).BeginningOfWeek()
}

func GetBeginningOfMonth(t time.Time) time.Time {
	return now.New(t).BeginningOfMonth()
}

// GetDaysBetween Number of whole days from `from` to `to`.
// Fractional days are truncated.
func GetDaysBetween(from time.Time, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// GetDateOnlyString Formats a time as YYYY-MM-DD. Zero times format as empty string.
func GetDateOnlyString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateOnlyLayout)
}

// GetMonthOnlyString Formats a time as YYYY-MM. Zero times format as empty string.
func GetMonthOnlyString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(MonthOnlyLayout)
}
