package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_EveryHourCovered(t *testing.T) {
	tf := testTariff()

	for h := 0; h < 24; h++ {
		tier := tf.Classify(at(10, h, 0))
		if h >= 7 && h < 19 {
			assert.Equal(t, TierDay, tier, "hour %d", h)
		} else {
			assert.Equal(t, TierNight, tier, "hour %d", h)
		}
	}
}

func TestClassify_IndependentOfStartHour(t *testing.T) {
	tf := testTariff()
	tf.StartHour = 15

	assert.Equal(t, TierDay, tf.Classify(at(10, 8, 0)))
	assert.Equal(t, TierNight, tf.Classify(at(10, 19, 0)))
}

func TestClassify_UsesFacilityTimezone(t *testing.T) {
	tf := testTariff()

	// 20:00 KST expressed as 11:00 UTC — must classify as night.
	assert.Equal(t, TierNight, tf.Classify(at(10, 20, 0).UTC()))
}

func TestBasePrice(t *testing.T) {
	tf := testTariff()

	assert.Equal(t, 10000, tf.BasePrice(TierDay))
	assert.Equal(t, 15000, tf.BasePrice(TierNight))
}

func TestValidTier(t *testing.T) {
	assert.True(t, ValidTier("day"))
	assert.True(t, ValidTier("night"))
	assert.False(t, ValidTier("evening"))
}
