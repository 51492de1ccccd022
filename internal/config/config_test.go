package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/MoodTracker/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "SOLUSDT", cfg.Symbol)
	assert.Equal(t, 14, cfg.RSIPeriod)
	assert.Equal(t, 0.15, cfg.DirectionDeadband)
	assert.Equal(t, 2.0, cfg.NeutralDeadbandPct)
	assert.Equal(t, 24*time.Hour, cfg.Timeframe.Std())
	assert.Len(t, cfg.Weights, len(models.AllSources))
}

func TestLoadRejectsBrokenWeightTable(t *testing.T) {
	// Shrinking one weight breaks the sum-to-one invariant
	t.Setenv("WEIGHT_TECHNICAL", "0.15")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestLoadRejectsBadTimeframe(t *testing.T) {
	t.Setenv("PREDICTION_TIMEFRAME", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREDICTION_TIMEFRAME")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Weights: map[models.SignalSource]float64{
				models.SourceTechnical: 0.25,
				models.SourceOnChain:   0.17,
				models.SourceWhales:    0.13,
				models.SourceNews:      0.15,
				models.SourceSocial:    0.13,
				models.SourceFearGreed: 0.10,
				models.SourceYouTube:   0.07,
			},
			DirectionDeadband:  0.15,
			ConfidenceHigh:     75,
			ConfidenceMedium:   50,
			ConfidenceLow:      30,
			NeutralDeadbandPct: 2.0,
			MinSignalSamples:   3,
			Timeframe:          models.Duration(24 * time.Hour),
			RSIPeriod:          14,
			MACDFastPeriod:     12,
			MACDSlowPeriod:     26,
			MACDSignalPeriod:   9,
			BBPeriod:           20,
			BBStdDev:           2.0,
			EMAShortPeriod:     9,
			EMAMediumPeriod:    21,
			EMALongPeriod:      50,
			EMAVeryLong:        200,
			VolumeLookback:     10,
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing source in weight table", func(t *testing.T) {
		cfg := valid()
		delete(cfg.Weights, models.SourceYouTube)
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := valid()
		cfg.Weights[models.SourceNews] = -0.15
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-descending confidence thresholds", func(t *testing.T) {
		cfg := valid()
		cfg.ConfidenceMedium = 80
		assert.Error(t, cfg.Validate())
	})

	t.Run("deadband out of range", func(t *testing.T) {
		cfg := valid()
		cfg.DirectionDeadband = 1.0
		assert.Error(t, cfg.Validate())
	})

	t.Run("MACD fast period not below slow", func(t *testing.T) {
		cfg := valid()
		cfg.MACDFastPeriod = 26
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero indicator period", func(t *testing.T) {
		cfg := valid()
		cfg.BBPeriod = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeframe", func(t *testing.T) {
		cfg := valid()
		cfg.Timeframe = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestParseChatIDs(t *testing.T) {
	assert.Equal(t, []int64{12345, -100987}, parseChatIDs("12345, -100987"))
	assert.Empty(t, parseChatIDs(""))
	assert.Equal(t, []int64{42}, parseChatIDs("42,not-a-number,"))
}
