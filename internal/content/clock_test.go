package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthickk/splash-screen/internal/signal"
)

func TestClockFieldFormats(t *testing.T) {
	ts := time.Date(2024, time.March, 2, 15, 4, 5, 0, time.UTC)
	midnight := time.Date(2024, time.December, 23, 0, 7, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		time     time.Time
		format   string
		expected string
	}{
		{name: "weekday and ordinal date", time: ts, format: "dddd, MMMM Do", expected: "Saturday, March 2nd"},
		{name: "12 hour clock", time: ts, format: "h:mm", expected: "3:04"},
		{name: "meridiem", time: ts, format: "A", expected: "PM"},
		{name: "midnight is 12", time: midnight, format: "hh:mm", expected: "12:07"},
		{name: "day of year", time: ts, format: "DDD DDDD", expected: "62 062"},
		{name: "escaped text", time: ts, format: "[Today is] dddd", expected: "Today is Saturday"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tick := signal.New[time.Time]("tick")
			field, sub := NewClockField(tc.format, nil, tick, tc.time)
			defer sub.Release()
			assert.Equal(t, tc.expected, field.Text())
		})
	}
}

func TestClockFieldFollowsTick(t *testing.T) {
	tick := signal.New[time.Time]("tick")
	start := time.Date(2024, time.March, 2, 23, 59, 0, 0, time.UTC)
	field, sub := NewClockField("dddd HH:mm", nil, tick, start)
	require.Equal(t, "Saturday 23:59", field.Text())

	tick.Emit(start.Add(time.Minute))
	assert.Equal(t, "Sunday 00:00", field.Text())

	sub.Release()
	tick.Emit(start.Add(2 * time.Minute))
	assert.Equal(t, "Sunday 00:00", field.Text())
}
