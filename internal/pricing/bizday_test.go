package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessDay_BeforeStartHourBelongsToPreviousDay(t *testing.T) {
	tf := testTariff() // StartHour 10

	assert.Equal(t, "2025-03-09", tf.BusinessDay(at(10, 9, 59)))
	assert.Equal(t, "2025-03-10", tf.BusinessDay(at(10, 10, 0)))
	assert.Equal(t, "2025-03-10", tf.BusinessDay(at(10, 23, 30)))
	assert.Equal(t, "2025-03-10", tf.BusinessDay(at(11, 2, 0)), "post-midnight checkout stays on the prior day's books")
}

func TestBusinessDay_MidnightStartHourMatchesCalendar(t *testing.T) {
	tf := testTariff()
	tf.StartHour = 0

	assert.Equal(t, "2025-03-10", tf.BusinessDay(at(10, 0, 0)))
	assert.Equal(t, "2025-03-10", tf.BusinessDay(at(10, 23, 59)))
}

func TestBusinessDay_NormalizesHostTimezone(t *testing.T) {
	tf := testTariff()

	// 2025-03-10 09:00 KST == 2025-03-10 00:00 UTC; label must follow KST.
	utc := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", tf.BusinessDay(utc), "09:00 local is before the 10:00 start")
}

func TestBusinessDay_MonotonicAndAdvancesAtStartHour(t *testing.T) {
	tf := testTariff()

	prev := ""
	for min := 0; min < 48*60; min += 7 {
		ts := at(9, 0, 0).Add(time.Duration(min) * time.Minute)
		label := tf.BusinessDay(ts)
		if prev != "" && label < prev {
			t.Fatalf("business day went backwards at %v: %s -> %s", ts, prev, label)
		}
		prev = label
	}

	// The flip happens exactly at StartHour:00:00.
	assert.NotEqual(t, tf.BusinessDay(at(10, 9, 59)), tf.BusinessDay(at(10, 10, 0)))
}

func TestBusinessDayRange(t *testing.T) {
	tf := testTariff()

	start, end, err := tf.BusinessDayRange("2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, at(10, 10, 0), start)
	assert.Equal(t, at(11, 10, 0), end)

	// Every instant in [start, end) resolves back to the same label.
	assert.Equal(t, "2025-03-10", tf.BusinessDay(start))
	assert.Equal(t, "2025-03-10", tf.BusinessDay(end.Add(-time.Second)))
	assert.Equal(t, "2025-03-11", tf.BusinessDay(end))
}

func TestBusinessDayRange_RejectsMalformedLabel(t *testing.T) {
	tf := testTariff()

	_, _, err := tf.BusinessDayRange("10/03/2025")
	assert.Error(t, err)
}
