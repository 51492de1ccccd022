package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/models"
)

// WeightTolerance is the floating tolerance for the weight-sum invariant
const WeightTolerance = 1e-6

// Config holds all application configuration
type Config struct {
	Symbol       string // Binance ticker symbol, e.g. SOLUSDT
	BinanceURL   string
	FearGreedURL string

	OpenAIAPIKey string
	OpenAIModel  string

	TelegramBotToken string
	TelegramChatIDs  []int64

	LogLevel         string
	RequestTimeout   int // seconds
	RunIntervalHours int

	// Indicator periods
	RSIPeriod        int
	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
	BBPeriod         int
	BBStdDev         float64
	EMAShortPeriod   int
	EMAMediumPeriod  int
	EMALongPeriod    int
	EMAVeryLong      int
	VolumeLookback   int

	// Aggregation
	Weights           map[models.SignalSource]float64
	DirectionDeadband float64
	ConfidenceHigh    float64
	ConfidenceMedium  float64
	ConfidenceLow     float64

	// Outcome tracking
	Timeframe          models.Duration
	NeutralDeadbandPct float64
	MinSignalSamples   int
	PredictionsFile    string
	PredictionsDSN     string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		Symbol:       getEnvWithDefault("SYMBOL", "SOLUSDT"),
		BinanceURL:   getEnvWithDefault("BINANCE_BASE_URL", "https://api.binance.com/api/v3"),
		FearGreedURL: getEnvWithDefault("FEAR_GREED_URL", "https://api.alternative.me/fng/"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatIDs:  parseChatIDs(os.Getenv("TELEGRAM_CHAT_IDS")),

		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		RequestTimeout:   getEnvIntWithDefault("REQUEST_TIMEOUT", 10),
		RunIntervalHours: getEnvIntWithDefault("RUN_INTERVAL_HOURS", 4),

		RSIPeriod:        getEnvIntWithDefault("RSI_PERIOD", 14),
		MACDFastPeriod:   getEnvIntWithDefault("MACD_FAST_PERIOD", 12),
		MACDSlowPeriod:   getEnvIntWithDefault("MACD_SLOW_PERIOD", 26),
		MACDSignalPeriod: getEnvIntWithDefault("MACD_SIGNAL_PERIOD", 9),
		BBPeriod:         getEnvIntWithDefault("BB_PERIOD", 20),
		BBStdDev:         getEnvFloatWithDefault("BB_STD_DEV", 2.0),
		EMAShortPeriod:   getEnvIntWithDefault("EMA_SHORT_PERIOD", 9),
		EMAMediumPeriod:  getEnvIntWithDefault("EMA_MEDIUM_PERIOD", 21),
		EMALongPeriod:    getEnvIntWithDefault("EMA_LONG_PERIOD", 50),
		EMAVeryLong:      getEnvIntWithDefault("EMA_VERY_LONG_PERIOD", 200),
		VolumeLookback:   getEnvIntWithDefault("VOLUME_LOOKBACK", 10),

		Weights: map[models.SignalSource]float64{
			models.SourceTechnical: getEnvFloatWithDefault("WEIGHT_TECHNICAL", 0.25),
			models.SourceOnChain:   getEnvFloatWithDefault("WEIGHT_ONCHAIN", 0.17),
			models.SourceWhales:    getEnvFloatWithDefault("WEIGHT_WHALES", 0.13),
			models.SourceNews:      getEnvFloatWithDefault("WEIGHT_NEWS", 0.15),
			models.SourceSocial:    getEnvFloatWithDefault("WEIGHT_SOCIAL", 0.13),
			models.SourceFearGreed: getEnvFloatWithDefault("WEIGHT_FEAR_GREED", 0.10),
			models.SourceYouTube:   getEnvFloatWithDefault("WEIGHT_YOUTUBE", 0.07),
		},
		DirectionDeadband: getEnvFloatWithDefault("DIRECTION_DEADBAND", 0.15),
		ConfidenceHigh:    getEnvFloatWithDefault("CONFIDENCE_HIGH", 75),
		ConfidenceMedium:  getEnvFloatWithDefault("CONFIDENCE_MEDIUM", 50),
		ConfidenceLow:     getEnvFloatWithDefault("CONFIDENCE_LOW", 30),

		NeutralDeadbandPct: getEnvFloatWithDefault("NEUTRAL_DEADBAND_PCT", 2.0),
		MinSignalSamples:   getEnvIntWithDefault("MIN_SIGNAL_SAMPLES", 3),
		PredictionsFile:    getEnvWithDefault("PREDICTIONS_FILE", "data/predictions.json"),
		PredictionsDSN:     os.Getenv("PREDICTIONS_DSN"),
	}

	timeframe := getEnvWithDefault("PREDICTION_TIMEFRAME", "24h")
	parsed, err := time.ParseDuration(timeframe)
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICTION_TIMEFRAME %q: %w", timeframe, err)
	}
	cfg.Timeframe = models.Duration(parsed)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the configuration invariants. Violations here are the
// only fatal error class in the core: a broken weight table or threshold
// set must stop the pipeline before any prediction is generated.
func (c *Config) Validate() error {
	var sum float64
	for _, source := range models.AllSources {
		w, ok := c.Weights[source]
		if !ok {
			return fmt.Errorf("weight table missing source %q", source)
		}
		if w < 0 {
			return fmt.Errorf("weight for %q is negative: %f", source, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("signal weights must sum to 1.0, got %.6f", sum)
	}

	if !(c.ConfidenceHigh > c.ConfidenceMedium && c.ConfidenceMedium > c.ConfidenceLow && c.ConfidenceLow > 0) {
		return fmt.Errorf("confidence thresholds must be descending and positive: high=%.1f medium=%.1f low=%.1f",
			c.ConfidenceHigh, c.ConfidenceMedium, c.ConfidenceLow)
	}
	if c.DirectionDeadband <= 0 || c.DirectionDeadband >= 1 {
		return fmt.Errorf("direction deadband must be in (0, 1), got %f", c.DirectionDeadband)
	}
	if c.NeutralDeadbandPct <= 0 {
		return fmt.Errorf("neutral deadband must be positive, got %f", c.NeutralDeadbandPct)
	}
	if c.MinSignalSamples < 1 {
		return fmt.Errorf("minimum signal sample size must be at least 1, got %d", c.MinSignalSamples)
	}
	if c.Timeframe.Std() <= 0 {
		return fmt.Errorf("prediction timeframe must be positive, got %s", c.Timeframe)
	}

	for name, p := range map[string]int{
		"RSI_PERIOD":         c.RSIPeriod,
		"MACD_FAST_PERIOD":   c.MACDFastPeriod,
		"MACD_SLOW_PERIOD":   c.MACDSlowPeriod,
		"MACD_SIGNAL_PERIOD": c.MACDSignalPeriod,
		"BB_PERIOD":          c.BBPeriod,
		"EMA_SHORT_PERIOD":   c.EMAShortPeriod,
		"EMA_MEDIUM_PERIOD":  c.EMAMediumPeriod,
		"EMA_LONG_PERIOD":    c.EMALongPeriod,
		"EMA_VERY_LONG":      c.EMAVeryLong,
		"VOLUME_LOOKBACK":    c.VolumeLookback,
	} {
		if p < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, p)
		}
	}
	if c.MACDFastPeriod >= c.MACDSlowPeriod {
		return fmt.Errorf("MACD fast period %d must be below slow period %d", c.MACDFastPeriod, c.MACDSlowPeriod)
	}
	return nil
}

func parseChatIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
