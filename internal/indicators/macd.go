package indicators

import "github.com/Alias1177/MoodTracker/models"

// MACD crossover signals
const (
	SignalBullishCrossover = "bullish_crossover"
	SignalBearishCrossover = "bearish_crossover"
)

// MACDResult holds the convergence-divergence lines and their score
type MACDResult struct {
	MACDLine   float64 `json:"macd_line"`
	SignalLine float64 `json:"signal_line"`
	Histogram  float64 `json:"histogram"`
	Signal     string  `json:"signal"`
	Score      float64 `json:"score"`
}

// MACD computes the fast/slow EMA convergence-divergence with its signal
// line and detects crossovers between the last two bars. A fresh crossover
// scores +-0.8; an established fast-over-signal state with a confirming
// histogram scores +-0.4.
func MACD(candles []models.Candle, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	if len(candles) < slowPeriod+signalPeriod {
		return MACDResult{Signal: SignalNeutral}
	}

	closes := models.Closes(candles)
	fast := emaSeries(closes, fastPeriod)
	slow := emaSeries(closes, slowPeriod)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fast[i] - slow[i]
	}
	signalLine := emaSeries(macdLine, signalPeriod)

	n := len(closes)
	curr, currSig := macdLine[n-1], signalLine[n-1]
	prev, prevSig := macdLine[n-2], signalLine[n-2]
	histogram := curr - currSig

	result := MACDResult{MACDLine: curr, SignalLine: currSig, Histogram: histogram}

	bullishCrossover := prev < prevSig && curr > currSig
	bearishCrossover := prev > prevSig && curr < currSig

	switch {
	case bullishCrossover:
		result.Signal = SignalBullishCrossover
		result.Score = 0.8
	case bearishCrossover:
		result.Signal = SignalBearishCrossover
		result.Score = -0.8
	case curr > currSig && histogram > 0:
		result.Signal = SignalBullish
		result.Score = 0.4
	case curr < currSig && histogram < 0:
		result.Signal = SignalBearish
		result.Score = -0.4
	default:
		result.Signal = SignalNeutral
	}
	return result
}
