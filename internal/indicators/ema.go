package indicators

import "github.com/Alias1177/MoodTracker/models"

// EMA crossover signals
const (
	SignalGoldenCross = "golden_cross"
	SignalDeathCross  = "death_cross"
)

// CrossResult is the state of one fast/slow EMA pair
type CrossResult struct {
	Fast   float64 `json:"fast"`
	Slow   float64 `json:"slow"`
	Signal string  `json:"signal"`
	Score  float64 `json:"score"`
}

// EMAResult combines short-horizon (9/21) and long-horizon (50/200)
// crossover checks. A horizon without enough history is nil and excluded
// from the combined mean.
type EMAResult struct {
	Short    *CrossResult `json:"short,omitempty"`
	Long     *CrossResult `json:"long,omitempty"`
	Combined float64      `json:"combined_score"`
}

// emaSeries computes a recursive exponential moving average over prices,
// seeding with the first value (ewm adjust=false convention).
func emaSeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}
	multiplier := 2.0 / float64(period+1)
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// EMACrossovers evaluates both crossover horizons. A fresh cross between the
// last two bars scores higher than an established fast-over-slow state, and
// the long horizon cross outweighs the short one.
func EMACrossovers(candles []models.Candle, shortFast, shortSlow, longFast, longSlow int) EMAResult {
	closes := models.Closes(candles)

	var result EMAResult
	var total float64
	var count int

	if cross := evalCross(closes, shortFast, shortSlow, 0.5); cross != nil {
		result.Short = cross
		total += cross.Score
		count++
	}
	if cross := evalCross(closes, longFast, longSlow, 0.7); cross != nil {
		result.Long = cross
		total += cross.Score
		count++
	}

	if count > 0 {
		result.Combined = total / float64(count)
	}
	return result
}

func evalCross(closes []float64, fastPeriod, slowPeriod int, crossWeight float64) *CrossResult {
	if len(closes) < slowPeriod+2 {
		return nil
	}

	fast := emaSeries(closes, fastPeriod)
	slow := emaSeries(closes, slowPeriod)

	n := len(closes)
	currFast, currSlow := fast[n-1], slow[n-1]
	prevFast, prevSlow := fast[n-2], slow[n-2]

	goldenCross := prevFast < prevSlow && currFast > currSlow
	deathCross := prevFast > prevSlow && currFast < currSlow

	cross := &CrossResult{Fast: currFast, Slow: currSlow}
	switch {
	case goldenCross:
		cross.Signal = SignalGoldenCross
		cross.Score = crossWeight
	case deathCross:
		cross.Signal = SignalDeathCross
		cross.Score = -crossWeight
	case currFast > currSlow:
		cross.Signal = SignalBullish
		cross.Score = 0.3
	default:
		cross.Signal = SignalBearish
		cross.Score = -0.3
	}
	return cross
}
