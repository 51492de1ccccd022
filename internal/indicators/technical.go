package indicators

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/internal/config"
	"github.com/Alias1177/MoodTracker/models"
)

// Fixed component weights for the technical score
const (
	weightRSI       = 0.25
	weightMACD      = 0.25
	weightBollinger = 0.15
	weightEMA       = 0.20
	weightVolume    = 0.15
)

// Thresholds for the overall technical signal
const overallSignalThreshold = 0.3

// TechnicalResult is the full output of one indicator engine pass
type TechnicalResult struct {
	Score           float64            `json:"technical_score"`
	Signal          string             `json:"signal"`
	RSI             RSIResult          `json:"rsi"`
	MACD            MACDResult         `json:"macd"`
	Bollinger       BollingerResult    `json:"bollinger"`
	EMA             EMAResult          `json:"ema_crossovers"`
	Volume          VolumeResult       `json:"volume"`
	DailyRSI        RSIResult          `json:"daily_rsi"`
	ComponentScores map[string]float64 `json:"component_scores"`
}

// Engine computes technical indicators over candle series
type Engine struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: log.With().Str("component", "indicators").Logger(),
	}
}

// Analyze runs every indicator over the primary (fast interval) series and
// folds the scores into one weighted technical score. The daily series only
// feeds the longer-horizon RSI carried for context; it never enters the
// weighted sum. An empty primary series yields a neutral result.
func (e *Engine) Analyze(primary, daily []models.Candle) TechnicalResult {
	if len(primary) == 0 {
		e.logger.Warn().Msg("no candle data available for technical analysis")
		return TechnicalResult{Signal: SignalNeutral}
	}

	rsi := RSI(primary, e.cfg.RSIPeriod)
	macd := MACD(primary, e.cfg.MACDFastPeriod, e.cfg.MACDSlowPeriod, e.cfg.MACDSignalPeriod)
	bollinger := Bollinger(primary, e.cfg.BBPeriod, e.cfg.BBStdDev)
	ema := EMACrossovers(primary, e.cfg.EMAShortPeriod, e.cfg.EMAMediumPeriod, e.cfg.EMALongPeriod, e.cfg.EMAVeryLong)
	volume := VolumeAnalysis(primary, e.cfg.VolumeLookback)

	dailyRSI := RSIResult{Signal: SignalNeutral}
	if len(daily) > 0 {
		dailyRSI = RSI(daily, e.cfg.RSIPeriod)
	}

	components := map[string]float64{
		"rsi":       rsi.Score * weightRSI,
		"macd":      macd.Score * weightMACD,
		"bollinger": bollinger.Score * weightBollinger,
		"ema":       ema.Combined * weightEMA,
		"volume":    volume.Score * weightVolume,
	}

	var score float64
	for _, v := range components {
		score += v
	}
	score = models.Clamp(score)

	signal := SignalNeutral
	if score > overallSignalThreshold {
		signal = SignalBullish
	} else if score < -overallSignalThreshold {
		signal = SignalBearish
	}

	e.logger.Info().
		Float64("technical_score", score).
		Str("signal", signal).
		Float64("rsi", rsi.Value).
		Str("macd", macd.Signal).
		Str("bollinger", bollinger.Signal).
		Str("volume", volume.Signal).
		Msg("technical analysis complete")

	return TechnicalResult{
		Score:           score,
		Signal:          signal,
		RSI:             rsi,
		MACD:            macd,
		Bollinger:       bollinger,
		EMA:             ema,
		Volume:          volume,
		DailyRSI:        dailyRSI,
		ComponentScores: components,
	}
}
