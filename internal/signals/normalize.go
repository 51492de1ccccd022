// Package signals converts each raw source payload into a bounded score in
// [-1, +1] with deterministic, reproducible rules. Nothing here calls the
// sentiment model; pre-scored branches only pass through the clamp.
package signals

import "github.com/Alias1177/MoodTracker/models"

// FearGreedScore maps the 0-100 index contrarian-linearly: extreme fear is
// a bullish signal (+1.0), extreme greed bearish (-1.0).
func FearGreedScore(data models.FearGreedData) float64 {
	return models.Clamp(float64(50-data.Value) / 50)
}

var pressureScores = map[string]float64{
	models.PressureStrongBuy:  0.8,
	models.PressureBuy:        0.4,
	models.PressureNeutral:    0.0,
	models.PressureSell:       -0.4,
	models.PressureStrongSell: -0.8,
}

var tvlTrendScores = map[string]float64{
	models.TVLGrowing:   0.5,
	models.TVLStable:    0.0,
	models.TVLDeclining: -0.5,
}

// OnChainScore averages three sub-scores: DEX buy/sell pressure, the TVL
// trend, and the bucketed 7-day TVL change. Unknown categories score 0.
func OnChainScore(data models.OnChainData) float64 {
	pressure := pressureScores[data.DEX.BuyPressure]
	trend := tvlTrendScores[data.TVL.Trend]

	var change float64
	switch {
	case data.TVL.Change7dPct > 5:
		change = 0.4
	case data.TVL.Change7dPct > 2:
		change = 0.2
	case data.TVL.Change7dPct < -5:
		change = -0.4
	case data.TVL.Change7dPct < -2:
		change = -0.2
	}

	return models.Clamp((pressure + trend + change) / 3)
}

// WhaleScore buckets net large-holder flow by direction and magnitude.
// Accumulation is bullish, distribution bearish, scaled by flow size.
func WhaleScore(data models.WhaleData) float64 {
	var magnitude float64
	switch abs := absFloat(data.NetFlow); {
	case abs > 5000:
		magnitude = 0.8
	case abs > 1000:
		magnitude = 0.5
	default:
		magnitude = 0.3
	}

	switch data.FlowDirection {
	case models.FlowAccumulating:
		return models.Clamp(magnitude)
	case models.FlowDistributing:
		return models.Clamp(-magnitude)
	default:
		return 0.0
	}
}

// SentimentScore passes a pre-scored upstream sentiment result through the
// clamp. Missing upstream data arrives as a zero-valued result and stays
// neutral.
func SentimentScore(result models.SentimentResult) float64 {
	return models.Clamp(result.Score)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
