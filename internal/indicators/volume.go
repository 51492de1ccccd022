package indicators

import "github.com/Alias1177/MoodTracker/models"

// Volume activity signals
const (
	SignalHighVolumeRally   = "high_volume_rally"
	SignalHighVolumeSelloff = "high_volume_selloff"
	SignalAboveAvgBuying    = "above_avg_buying"
	SignalAboveAvgSelling   = "above_avg_selling"
	SignalLowVolume         = "low_volume"
	SignalNormalVolume      = "normal"
)

// VolumeResult holds the volume-ratio analysis of the latest bar
type VolumeResult struct {
	CurrentVolume float64 `json:"current_volume"`
	AvgVolume     float64 `json:"avg_volume"`
	Ratio         float64 `json:"volume_ratio"`
	PriceUp       bool    `json:"price_up"`
	Signal        string  `json:"signal"`
	Score         float64 `json:"score"`
}

// VolumeAnalysis compares the latest bar's volume against the trailing
// average and pairs it with the same-bar price direction. Elevated volume
// confirms the move; starved volume means low conviction either way.
func VolumeAnalysis(candles []models.Candle, lookback int) VolumeResult {
	if len(candles) < lookback || len(candles) < 2 {
		return VolumeResult{Signal: SignalNeutral}
	}

	currVol := candles[len(candles)-1].Volume
	var sum float64
	for i := len(candles) - lookback; i < len(candles); i++ {
		sum += candles[i].Volume
	}
	avgVol := sum / float64(lookback)

	ratio := currVol / max(avgVol, 1)

	prevClose := max(candles[len(candles)-2].Close, 0.01)
	priceChange := (candles[len(candles)-1].Close - prevClose) / prevClose
	priceUp := priceChange > 0

	result := VolumeResult{
		CurrentVolume: currVol,
		AvgVolume:     avgVol,
		Ratio:         ratio,
		PriceUp:       priceUp,
	}

	switch {
	case ratio > 2.0 && priceUp:
		result.Signal = SignalHighVolumeRally
		result.Score = 0.6
	case ratio > 2.0:
		result.Signal = SignalHighVolumeSelloff
		result.Score = -0.6
	case ratio > 1.5 && priceUp:
		result.Signal = SignalAboveAvgBuying
		result.Score = 0.3
	case ratio > 1.5:
		result.Signal = SignalAboveAvgSelling
		result.Score = -0.3
	case ratio < 0.5:
		// Low conviction regardless of direction
		result.Signal = SignalLowVolume
	case priceUp:
		result.Signal = SignalNormalVolume
		result.Score = 0.1
	default:
		result.Signal = SignalNormalVolume
		result.Score = -0.1
	}
	return result
}
