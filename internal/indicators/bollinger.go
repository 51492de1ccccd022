package indicators

import (
	"math"

	"github.com/Alias1177/MoodTracker/models"
)

// Bollinger band signals
const (
	SignalSqueeze   = "squeeze"
	SignalUpperZone = "upper_zone"
	SignalLowerZone = "lower_zone"
	SignalMiddle    = "middle"
)

// squeezeThreshold flags abnormally tight bands (bandwidth under 5% of the
// middle band), the historical precursor to a volatility breakout.
const squeezeThreshold = 0.05

// BollingerResult holds the band levels and the position-derived score
type BollingerResult struct {
	Upper     float64 `json:"upper"`
	Middle    float64 `json:"middle"`
	Lower     float64 `json:"lower"`
	Position  float64 `json:"position"` // 0 = lower band, 1 = upper band
	Bandwidth float64 `json:"bandwidth"`
	Squeeze   bool    `json:"squeeze"`
	Signal    string  `json:"signal"`
	Score     float64 `json:"score"`
}

// Bollinger computes an N-period moving average band at K standard
// deviations and scores the close position within it.
func Bollinger(candles []models.Candle, period int, stdDev float64) BollingerResult {
	if len(candles) < period {
		return BollingerResult{Signal: SignalNeutral, Position: 0.5}
	}

	var sum float64
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].Close
	}
	middle := sum / float64(period)

	var variance float64
	for i := len(candles) - period; i < len(candles); i++ {
		diff := candles[i].Close - middle
		variance += diff * diff
	}
	sd := math.Sqrt(variance / float64(period))

	upper := middle + sd*stdDev
	lower := middle - sd*stdDev
	price := candles[len(candles)-1].Close

	position := 0.5
	if bandRange := upper - lower; bandRange > 0 {
		position = (price - lower) / bandRange
	}

	bandwidth := 0.0
	if middle > 0 {
		bandwidth = (upper - lower) / middle
	}
	squeeze := bandwidth < squeezeThreshold

	result := BollingerResult{
		Upper:     upper,
		Middle:    middle,
		Lower:     lower,
		Position:  position,
		Bandwidth: bandwidth,
		Squeeze:   squeeze,
	}

	switch {
	case price >= upper:
		result.Signal = SignalOverbought
		result.Score = -0.5
	case price <= lower:
		result.Signal = SignalOversold
		result.Score = 0.5
	case squeeze:
		// Direction unclear, volatility incoming
		result.Signal = SignalSqueeze
	case position > 0.7:
		result.Signal = SignalUpperZone
		result.Score = -0.2
	case position < 0.3:
		result.Signal = SignalLowerZone
		result.Score = 0.2
	default:
		result.Signal = SignalMiddle
	}
	return result
}
