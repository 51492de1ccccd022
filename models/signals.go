package models

import "time"

// SignalSource names one of the fixed inputs to the aggregation engine
type SignalSource string

const (
	SourceTechnical SignalSource = "technical"
	SourceOnChain   SignalSource = "onchain"
	SourceWhales    SignalSource = "whales"
	SourceNews      SignalSource = "news"
	SourceSocial    SignalSource = "social"
	SourceFearGreed SignalSource = "fear_greed"
	SourceYouTube   SignalSource = "youtube"
)

// AllSources lists every signal source in declaration order. The order is
// load-bearing: factor ranking breaks ties by it.
var AllSources = []SignalSource{
	SourceTechnical,
	SourceOnChain,
	SourceWhales,
	SourceNews,
	SourceSocial,
	SourceFearGreed,
	SourceYouTube,
}

// Clamp bounds a score to [-1, +1]. Every score leaving the indicator
// engine or the normalizer passes through here.
func Clamp(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < -1.0 {
		return -1.0
	}
	return score
}

// FearGreedData is the fear & greed index payload (0 = extreme fear, 100 = extreme greed)
type FearGreedData struct {
	Value          int    `json:"current_value"`
	Classification string `json:"classification"`
	FetchedAt      time.Time
}

// Buy-pressure categories reported by the DEX flow summary
const (
	PressureStrongBuy  = "strong_buy"
	PressureBuy        = "buy"
	PressureNeutral    = "neutral"
	PressureSell       = "sell"
	PressureStrongSell = "strong_sell"
)

// TVL trend categories
const (
	TVLGrowing   = "growing"
	TVLStable    = "stable"
	TVLDeclining = "declining"
)

// OnChainData summarizes DEX flow and TVL metrics for the tracked chain
type OnChainData struct {
	DEX DexMetrics `json:"dex"`
	TVL TVLMetrics `json:"tvl"`
}

type DexMetrics struct {
	BuyPressure  string  `json:"buy_pressure"`
	BuySellRatio float64 `json:"buy_sell_ratio,omitempty"`
	Volume24h    float64 `json:"total_volume_24h,omitempty"`
}

type TVLMetrics struct {
	Trend       string  `json:"tvl_trend"`
	Change7dPct float64 `json:"tvl_change_7d_pct"`
	CurrentUSD  float64 `json:"tvl_current_usd,omitempty"`
}

// Whale flow directions
const (
	FlowAccumulating = "accumulating"
	FlowDistributing = "distributing"
	FlowNeutral      = "neutral"
)

// WhaleData summarizes large-holder transfer activity
type WhaleData struct {
	FlowDirection  string  `json:"flow_direction"`
	NetFlow        float64 `json:"net_flow"`
	TransfersFound int     `json:"transfers_found"`
}

// SentimentResult is the bounded output of a sentiment analyzer
type SentimentResult struct {
	Score    float64 `json:"sentiment_score"` // [-1, +1]
	Analysis string  `json:"analysis,omitempty"`
}

// SentimentInputs carries the pre-scored external sentiment branches
type SentimentInputs struct {
	News    SentimentResult
	Social  SentimentResult
	YouTube SentimentResult
}

// DirectionStats is accuracy for a single predicted direction
type DirectionStats struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// AccuracyStats is the derived, non-persisted accuracy snapshot
type AccuracyStats struct {
	TotalPredictions int                          `json:"total_predictions"`
	Checked          int                          `json:"checked"`
	Correct          int                          `json:"correct"`
	OverallAccuracy  float64                      `json:"overall_accuracy"`
	Accuracy7d       *float64                     `json:"accuracy_7d"`
	Accuracy30d      *float64                     `json:"accuracy_30d"`
	DirectionStats   map[Direction]DirectionStats `json:"direction_stats"`
	SignalAccuracy   map[SignalSource]float64     `json:"signal_accuracy"`
}
