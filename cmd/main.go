package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/internal/api/binance"
	"github.com/Alias1177/MoodTracker/internal/api/feargreed"
	"github.com/Alias1177/MoodTracker/internal/config"
	"github.com/Alias1177/MoodTracker/internal/delivery"
	"github.com/Alias1177/MoodTracker/internal/history"
	"github.com/Alias1177/MoodTracker/internal/indicators"
	platformhttp "github.com/Alias1177/MoodTracker/internal/platform/http"
	"github.com/Alias1177/MoodTracker/internal/predict"
	"github.com/Alias1177/MoodTracker/internal/sentiment"
	"github.com/Alias1177/MoodTracker/internal/signals"
	"github.com/Alias1177/MoodTracker/models"
)

// Candle depth per interval: the fast series must cover the very long EMA
// horizon plus crossover lookback.
const (
	fastInterval     = "4h"
	fastLimit        = 250
	slowInterval     = "1d"
	slowLimit        = 60
	sentimentTimeout = 60 * time.Second
)

// rawSignals is the externally supplied per-source payload bundle. The
// scrapers that produce it live outside this repo; a missing file or field
// degrades that source to neutral.
type rawSignals struct {
	OnChain models.OnChainData `json:"onchain"`
	Whales  models.WhaleData   `json:"whales"`
	News    string             `json:"news"`
	Social  string             `json:"social"`
	YouTube string             `json:"youtube"`
}

func main() {
	dryRun := flag.Bool("dry-run", false, "run the full pipeline but don't send Telegram messages")
	force := flag.Bool("force", false, "skip the interval gate and run immediately")
	checkResults := flag.Bool("check-results", false, "only evaluate past predictions and print accuracy stats")
	signalsFile := flag.String("signals", "data/signals.json", "path to the raw external signal payloads")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	httpClient := platformhttp.NewClient(platformhttp.ClientOptions{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	market := binance.NewClient(httpClient, cfg.BinanceURL, cfg.Symbol)

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening prediction store")
	}
	defer cleanup()

	tracker := history.NewTracker(store, market, cfg)
	ctx := context.Background()

	if *checkResults {
		if err := tracker.CheckResults(ctx); err != nil {
			log.Error().Err(err).Msg("result check failed, will retry next run")
		}
		stats, err := tracker.AccuracyStats()
		if err != nil {
			log.Fatal().Err(err).Msg("computing accuracy stats")
		}
		out, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(out))
		return
	}

	if !*force && !shouldRunNow(cfg.RunIntervalHours) {
		log.Info().Int("interval_hours", cfg.RunIntervalHours).Msg("not scheduled to run this hour, use -force to override")
		return
	}

	if err := runPipeline(ctx, cfg, market, tracker, httpClient, *signalsFile, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}
}

func runPipeline(
	ctx context.Context,
	cfg *config.Config,
	market *binance.Client,
	tracker *history.Tracker,
	httpClient *platformhttp.Client,
	signalsFile string,
	dryRun bool,
) error {
	log.Info().Str("symbol", cfg.Symbol).Msg("starting pipeline")

	// Phase 1: market data
	fastCandles, err := market.GetCandles(ctx, fastInterval, fastLimit)
	if err != nil {
		return fmt.Errorf("fetching %s candles: %w", fastInterval, err)
	}
	slowCandles, err := market.GetCandles(ctx, slowInterval, slowLimit)
	if err != nil {
		log.Warn().Err(err).Msg("daily candles unavailable, skipping daily RSI context")
		slowCandles = nil
	}
	price, err := market.GetPrice(ctx)
	if err != nil {
		return fmt.Errorf("fetching current price: %w", err)
	}

	fearGreed := models.FearGreedData{Value: 50, Classification: "Unknown"}
	if fg, err := feargreed.NewClient(httpClient, cfg.FearGreedURL).GetIndex(ctx); err != nil {
		log.Warn().Err(err).Msg("fear & greed unavailable, using neutral value")
	} else {
		fearGreed = fg
	}

	raw := loadRawSignals(signalsFile)

	// Phase 2: technical analysis
	technical := indicators.NewEngine(cfg).Analyze(fastCandles, slowCandles)

	// Phase 3: sentiment scoring (black box; degrades to neutral)
	analyzer := sentiment.NewOpenAIAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIModel, sentimentTimeout)
	sentiments := models.SentimentInputs{
		News:    scoreSentiment(ctx, analyzer, models.SourceNews, raw.News),
		Social:  scoreSentiment(ctx, analyzer, models.SourceSocial, raw.Social),
		YouTube: scoreSentiment(ctx, analyzer, models.SourceYouTube, raw.YouTube),
	}

	// Phase 4: aggregation
	engine := predict.NewEngine(cfg)
	prediction := engine.Generate(predict.Inputs{
		Technical: technical,
		OnChain:   raw.OnChain,
		Whale:     raw.Whales,
		FearGreed: fearGreed,
		Sentiment: sentiments,
		Scores: map[models.SignalSource]float64{
			models.SourceTechnical: technical.Score,
			models.SourceOnChain:   signals.OnChainScore(raw.OnChain),
			models.SourceWhales:    signals.WhaleScore(raw.Whales),
			models.SourceNews:      signals.SentimentScore(sentiments.News),
			models.SourceSocial:    signals.SentimentScore(sentiments.Social),
			models.SourceFearGreed: signals.FearGreedScore(fearGreed),
			models.SourceYouTube:   signals.SentimentScore(sentiments.YouTube),
		},
		CurrentPrice: price,
		Now:          time.Now(),
	})

	// Phase 5: delivery and outcome tracking
	stats, err := tracker.AccuracyStats()
	if err != nil {
		log.Warn().Err(err).Msg("accuracy stats unavailable")
	}

	sender, err := delivery.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatIDs, dryRun)
	if err != nil {
		return fmt.Errorf("setting up telegram: %w", err)
	}
	if err := sender.SendPrediction(prediction, stats); err != nil {
		log.Error().Err(err).Msg("telegram delivery failed")
	}

	if _, err := tracker.LogPrediction(prediction); err != nil {
		return fmt.Errorf("logging prediction: %w", err)
	}

	// Evaluate any past predictions that are due; a failed pass just waits
	// for the next scheduled run.
	if err := tracker.CheckResults(ctx); err != nil {
		log.Error().Err(err).Msg("result check failed, will retry next run")
	}

	log.Info().
		Str("direction", string(prediction.Direction)).
		Float64("confidence", prediction.Confidence).
		Msg("pipeline complete")
	return nil
}

func openStore(cfg *config.Config) (models.PredictionStore, func(), error) {
	if cfg.PredictionsDSN != "" {
		store, err := history.NewPostgresStore(cfg.PredictionsDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return history.NewFileStore(cfg.PredictionsFile), func() {}, nil
}

// shouldRunNow gates scheduled runs to hours that are a multiple of the
// configured interval, so an hourly scheduler still runs the pipeline only
// every N hours.
func shouldRunNow(intervalHours int) bool {
	if intervalHours <= 0 {
		return true
	}
	return time.Now().Hour()%intervalHours == 0
}

func loadRawSignals(path string) rawSignals {
	var raw rawSignals
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("no external signal payloads, sources default to neutral")
		return raw
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("unparsable signal payloads, sources default to neutral")
		return rawSignals{}
	}
	return raw
}

func scoreSentiment(ctx context.Context, analyzer models.SentimentAnalyzer, kind models.SignalSource, payload string) models.SentimentResult {
	result, err := analyzer.Score(ctx, kind, payload)
	if err != nil {
		log.Warn().Err(err).Str("source", string(kind)).Msg("sentiment scoring failed, using neutral")
		return models.SentimentResult{}
	}
	return result
}
