package models

import "time"

// Direction of a prediction
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionNeutral Direction = "NEUTRAL"
)

// Strength labels derived from confidence thresholds
const (
	StrengthStrong   = "STRONG"
	StrengthModerate = "MODERATE"
	StrengthWeak     = "WEAK"
	StrengthVeryWeak = "VERY_WEAK"
)

// Factor is one ranked, human-readable contributor to a prediction
type Factor struct {
	Source       SignalSource `json:"source"`
	Score        float64      `json:"score"`
	Weight       float64      `json:"weight"`
	Contribution float64      `json:"contribution"`
	Direction    string       `json:"direction"` // bullish, bearish, neutral
	Description  string       `json:"description"`
}

// Prediction is the immutable output of the aggregation engine
type Prediction struct {
	Timestamp       time.Time                `json:"timestamp"`
	Direction       Direction                `json:"direction"`
	Confidence      float64                  `json:"confidence"` // 0-100
	Strength        string                   `json:"strength"`
	WeightedScore   float64                  `json:"weighted_score"`
	CurrentPrice    float64                  `json:"current_price_usd"`
	Timeframe       Duration                 `json:"timeframe"`
	SignalScores    map[SignalSource]float64 `json:"signal_scores"`
	SignalWeights   map[SignalSource]float64 `json:"signal_weights"`
	Factors         []Factor                 `json:"factors"`
	TopFactors      []Factor                 `json:"top_factors"`
	SignalsBullish  int                      `json:"signals_bullish"`
	SignalsBearish  int                      `json:"signals_bearish"`
	SignalAgreement float64                  `json:"signal_agreement"`
}

// Outcome holds the realized result of a prediction. All fields are nil
// until the record is evaluated, and once set are never reset.
type Outcome struct {
	PriceAfter      *float64   `json:"price_after"`
	ActualChangePct *float64   `json:"actual_change_pct"`
	WasCorrect      *bool      `json:"was_correct"`
	CheckedAt       *time.Time `json:"checked_at"`
}

// Checked reports whether the record reached its terminal state
func (o Outcome) Checked() bool {
	return o.WasCorrect != nil
}

// PredictionRecord is the durable, append-only form of a prediction
type PredictionRecord struct {
	ID                int                      `json:"id"`
	Timestamp         time.Time                `json:"timestamp"`
	Direction         Direction                `json:"direction"`
	Confidence        float64                  `json:"confidence"`
	Strength          string                   `json:"strength"`
	WeightedScore     float64                  `json:"weighted_score"`
	PriceAtPrediction float64                  `json:"price_at_prediction"`
	Timeframe         Duration                 `json:"timeframe"`
	SignalScores      map[SignalSource]float64 `json:"signal_scores"`
	Outcome           Outcome                  `json:"outcome"`
}

// Mature reports whether the record's timeframe has elapsed at the given time
func (r PredictionRecord) Mature(now time.Time) bool {
	return now.Sub(r.Timestamp) >= r.Timeframe.Std()
}

// NewRecord builds a record from a prediction payload with outcome fields unset
func NewRecord(id int, p Prediction) PredictionRecord {
	return PredictionRecord{
		ID:                id,
		Timestamp:         p.Timestamp,
		Direction:         p.Direction,
		Confidence:        p.Confidence,
		Strength:          p.Strength,
		WeightedScore:     p.WeightedScore,
		PriceAtPrediction: p.CurrentPrice,
		Timeframe:         p.Timeframe,
		SignalScores:      p.SignalScores,
	}
}
