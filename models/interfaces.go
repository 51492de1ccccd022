package models

import "context"

// CandleClient fetches candle series from a market data provider
type CandleClient interface {
	GetCandles(ctx context.Context, interval string, limit int) ([]Candle, error)
}

// PriceClient fetches the current reference price
type PriceClient interface {
	GetPrice(ctx context.Context) (float64, error)
}

// SentimentAnalyzer is the black-box sentiment capability. Implementations
// must degrade to a neutral result on timeout or unparsable model output
// rather than surfacing those as pipeline failures.
type SentimentAnalyzer interface {
	Score(ctx context.Context, kind SignalSource, payload string) (SentimentResult, error)
}

// PredictionStore is the append-only prediction record log. Load on an
// empty or unreadable backing store returns an empty slice, not an error.
// Replace persists the full log atomically.
type PredictionStore interface {
	Load() ([]PredictionRecord, error)
	Replace(records []PredictionRecord) error
}
