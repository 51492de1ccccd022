package indicators

import "github.com/Alias1177/MoodTracker/models"

// RSI qualitative signals
const (
	SignalNeutral    = "neutral"
	SignalBullish    = "bullish"
	SignalBearish    = "bearish"
	SignalOverbought = "overbought"
	SignalOversold   = "oversold"
)

// RSIResult holds the relative strength oscillator value and its score
type RSIResult struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
	Score  float64 `json:"score"`
	Valid  bool    `json:"valid"`
}

// RSI computes the Wilder-smoothed relative strength index over the series
// and maps it to a directional score. Insufficient history yields a neutral
// result, not an error.
func RSI(candles []models.Candle, period int) RSIResult {
	if len(candles) < period+1 {
		return RSIResult{Signal: SignalNeutral}
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	for i := period + 1; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			avgGain = (avgGain*float64(period-1) + change) / float64(period)
			avgLoss = (avgLoss * float64(period-1)) / float64(period)
		} else {
			avgGain = (avgGain * float64(period-1)) / float64(period)
			avgLoss = (avgLoss*float64(period-1) - change) / float64(period)
		}
	}

	value := 100.0
	if avgLoss > 0 {
		rs := avgGain / avgLoss
		value = 100.0 - (100.0 / (1.0 + rs))
	}

	signal, score := scoreRSI(value)
	return RSIResult{Value: value, Signal: signal, Score: score, Valid: true}
}

// scoreRSI maps an RSI value to a bounded score. Overbought/oversold scale
// linearly with depth past the 70/30 bands: 70 -> -0.5, 100 -> -1.0,
// 30 -> +0.5, 0 -> +1.0.
func scoreRSI(value float64) (string, float64) {
	switch {
	case value >= 70:
		return SignalOverbought, -0.5 - ((value-70)/30)*0.5
	case value <= 30:
		return SignalOversold, 0.5 + ((30-value)/30)*0.5
	case value >= 60:
		return SignalBullish, 0.2
	case value <= 40:
		return SignalBearish, -0.2
	default:
		return SignalNeutral, 0.0
	}
}
