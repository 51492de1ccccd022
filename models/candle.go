package models

import (
	"fmt"
	"time"
)

// Candle represents a single OHLCV price bar
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume,omitempty"`
}

// ValidateSeries checks the series invariant: strictly increasing
// timestamps, no duplicate bars, non-negative prices and volume.
func ValidateSeries(candles []Candle) error {
	for i, c := range candles {
		if c.Open < 0 || c.High < 0 || c.Low < 0 || c.Close < 0 {
			return fmt.Errorf("candle %d has negative price", i)
		}
		if c.Volume < 0 {
			return fmt.Errorf("candle %d has negative volume", i)
		}
		if i > 0 && !candles[i-1].Timestamp.Before(c.Timestamp) {
			return fmt.Errorf("candle %d timestamp %s is not after %s",
				i, c.Timestamp.Format(time.RFC3339), candles[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close-price column from a candle series
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
