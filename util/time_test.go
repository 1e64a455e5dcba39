package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateOnly(t *testing.T) {
	parsed, err := ParseDateOnly("2017-10-05")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2017, time.October, 5, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDateOnly("05-10-2017")
	assert.NotNil(t, err)

	_, err = ParseDateOnly("")
	assert.NotNil(t, err)
}

func TestGetBeginningOfWeek(t *testing.T) {
	// 2017-10-05 is a Thursday. Weeks start on Monday.
	thursday := time.Date(2017, time.October, 5, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2017, time.October, 2, 0, 0, 0, 0, time.UTC),
		GetBeginningOfWeek(thursday))

	// A Monday maps to itself.
	monday := time.Date(2017, time.October, 2, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2017, time.October, 2, 0, 0, 0, 0, time.UTC),
		GetBeginningOfWeek(monday))

	// A Sunday belongs to the week starting the previous Monday.
	sunday := time.Date(2017, time.October, 8, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2017, time.October, 2, 0, 0, 0, 0, time.UTC),
		GetBeginningOfWeek(sunday))
}

func TestGetBeginningOfDayAndMonth(t *testing.T) {
	ts := time.Date(2018, time.February, 14, 17, 30, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2018, time.February, 14, 0, 0, 0, 0, time.UTC), GetBeginningOfDay(ts))
	assert.Equal(t, time.Date(2018, time.February, 1, 0, 0, 0, 0, time.UTC), GetBeginningOfMonth(ts))
}

func TestGetDaysBetween(t *testing.T) {
	from := time.Date(2018, time.August, 1, 10, 0, 0, 0, time.UTC)
	to := time.Date(2018, time.August, 30, 9, 0, 0, 0, time.UTC)
	// 28 days and 23 hours truncates to 28.
	assert.Equal(t, 28, GetDaysBetween(from, to))

	to = time.Date(2018, time.August, 30, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 29, GetDaysBetween(from, to))

	assert.Equal(t, 0, GetDaysBetween(from, from))
}

func TestGetDateOnlyString(t *testing.T) {
	assert.Equal(t, "2018-08-29", GetDateOnlyString(time.Date(2018, time.August, 29, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", GetDateOnlyString(time.Time{}))
	assert.Equal(t, "2018-08", GetMonthOnlyString(time.Date(2018, time.August, 29, 15, 0, 0, 0, time.UTC)))
}
