// Package predict fuses the normalized per-source scores into a single
// directional prediction with confidence, strength, and ranked factors.
package predict

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/internal/config"
	"github.com/Alias1177/MoodTracker/internal/indicators"
	"github.com/Alias1177/MoodTracker/models"
)

// activeThreshold separates sources that count toward the agreement ratio
// from inactive ones hovering near zero.
const activeThreshold = 0.05

// Number of ranked factors carried on the prediction payload
const (
	maxFactors = 6
	topFactors = 3
)

// Inputs carries everything one aggregation pass needs. Generate is pure
// over these: same inputs, same prediction.
type Inputs struct {
	Technical    indicators.TechnicalResult
	OnChain      models.OnChainData
	Whale        models.WhaleData
	FearGreed    models.FearGreedData
	Sentiment    models.SentimentInputs
	Scores       map[models.SignalSource]float64
	CurrentPrice float64
	Now          time.Time
}

// Engine combines normalized signal scores using the configured weights
type Engine struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: log.With().Str("component", "predict").Logger(),
	}
}

// Generate produces the prediction payload. A source missing from the score
// map contributes 0 but keeps its full configured weight: absence degrades
// the source to neutral, it does not re-normalize the table.
func (e *Engine) Generate(in Inputs) models.Prediction {
	scores := make(map[models.SignalSource]float64, len(models.AllSources))
	for _, source := range models.AllSources {
		scores[source] = models.Clamp(in.Scores[source])
	}

	var weighted float64
	for _, source := range models.AllSources {
		weighted += scores[source] * e.cfg.Weights[source]
	}
	weighted = models.Clamp(weighted)

	direction := models.DirectionNeutral
	if weighted > e.cfg.DirectionDeadband {
		direction = models.DirectionLong
	} else if weighted < -e.cfg.DirectionDeadband {
		direction = models.DirectionShort
	}

	// Agreement among active sources boosts confidence: a score carried by
	// aligned signals deserves more trust than the same score from a noisy
	// mixed field.
	var bullish, bearish int
	for _, s := range scores {
		if s > activeThreshold {
			bullish++
		} else if s < -activeThreshold {
			bearish++
		}
	}
	agreement := 0.5
	if total := bullish + bearish; total > 0 {
		agreement = float64(max(bullish, bearish)) / float64(total)
	}

	base := math.Abs(weighted) * 100
	confidence := math.Min(100, base*(0.7+0.3*agreement))

	strength := models.StrengthVeryWeak
	switch {
	case confidence >= e.cfg.ConfidenceHigh:
		strength = models.StrengthStrong
	case confidence >= e.cfg.ConfidenceMedium:
		strength = models.StrengthModerate
	case confidence >= e.cfg.ConfidenceLow:
		strength = models.StrengthWeak
	}

	factors := e.rankFactors(scores, in)

	weights := make(map[models.SignalSource]float64, len(e.cfg.Weights))
	for source, w := range e.cfg.Weights {
		weights[source] = w
	}

	prediction := models.Prediction{
		Timestamp:       in.Now.UTC(),
		Direction:       direction,
		Confidence:      confidence,
		Strength:        strength,
		WeightedScore:   weighted,
		CurrentPrice:    in.CurrentPrice,
		Timeframe:       e.cfg.Timeframe,
		SignalScores:    scores,
		SignalWeights:   weights,
		Factors:         factors,
		TopFactors:      factors[:min(topFactors, len(factors))],
		SignalsBullish:  bullish,
		SignalsBearish:  bearish,
		SignalAgreement: agreement,
	}

	e.logger.Info().
		Str("direction", string(direction)).
		Float64("confidence", confidence).
		Str("strength", strength).
		Float64("weighted_score", weighted).
		Float64("agreement", agreement).
		Msg("prediction generated")

	return prediction
}

// rankFactors orders every source by the absolute size of its contribution
// (score x weight). The sort is stable, so equal contributions keep the
// source declaration order.
func (e *Engine) rankFactors(scores map[models.SignalSource]float64, in Inputs) []models.Factor {
	factors := make([]models.Factor, 0, len(models.AllSources))
	for _, source := range models.AllSources {
		score := scores[source]
		weight := e.cfg.Weights[source]

		dir := "neutral"
		if score > 0 {
			dir = "bullish"
		} else if score < 0 {
			dir = "bearish"
		}

		factors = append(factors, models.Factor{
			Source:       source,
			Score:        score,
			Weight:       weight,
			Contribution: score * weight,
			Direction:    dir,
			Description:  describeFactor(source, dir, score, in),
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Contribution) > math.Abs(factors[j].Contribution)
	})

	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}
	return factors
}

func describeFactor(source models.SignalSource, dir string, score float64, in Inputs) string {
	switch source {
	case models.SourceTechnical:
		return fmt.Sprintf("TA %s - RSI: %.1f, MACD: %s", dir, in.Technical.RSI.Value, in.Technical.MACD.Signal)
	case models.SourceOnChain:
		return fmt.Sprintf("On-chain %s - buy pressure: %s, TVL: %s", dir, in.OnChain.DEX.BuyPressure, in.OnChain.TVL.Trend)
	case models.SourceWhales:
		return fmt.Sprintf("Whales %s - net flow: %+.0f (%d large transfers)",
			in.Whale.FlowDirection, in.Whale.NetFlow, in.Whale.TransfersFound)
	case models.SourceNews:
		return describeSentiment("News", dir, in.Sentiment.News)
	case models.SourceSocial:
		return describeSentiment("Social", dir, in.Sentiment.Social)
	case models.SourceFearGreed:
		return fmt.Sprintf("Fear & Greed: %d (%s) → contrarian %s", in.FearGreed.Value, in.FearGreed.Classification, dir)
	case models.SourceYouTube:
		return describeSentiment("YouTube", dir, in.Sentiment.YouTube)
	}
	return fmt.Sprintf("%s: %s (score %.3f)", source, dir, score)
}

func describeSentiment(label, dir string, result models.SentimentResult) string {
	if result.Analysis == "" {
		return fmt.Sprintf("%s sentiment %s", label, dir)
	}
	excerpt := result.Analysis
	if len(excerpt) > 80 {
		excerpt = excerpt[:80]
	}
	return fmt.Sprintf("%s %s - %s", label, dir, excerpt)
}
