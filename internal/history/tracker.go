package history

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/internal/config"
	"github.com/Alias1177/MoodTracker/models"
)

// Tracker owns the prediction log lifecycle: it appends new predictions and
// later scores records whose timeframe has elapsed against a fresh
// reference price. Records move PENDING -> MATURE_UNCHECKED (implicit,
// time-based) -> CHECKED (terminal).
type Tracker struct {
	store  models.PredictionStore
	price  models.PriceClient
	cfg    *config.Config
	logger zerolog.Logger
}

func NewTracker(store models.PredictionStore, price models.PriceClient, cfg *config.Config) *Tracker {
	return &Tracker{
		store:  store,
		price:  price,
		cfg:    cfg,
		logger: log.With().Str("component", "history").Logger(),
	}
}

// LogPrediction appends a prediction to the durable log with the next
// sequential id and all outcome fields unset.
func (t *Tracker) LogPrediction(p models.Prediction) (models.PredictionRecord, error) {
	records, err := t.store.Load()
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("loading prediction log: %w", err)
	}

	record := models.NewRecord(len(records)+1, p)
	records = append(records, record)

	if err := t.store.Replace(records); err != nil {
		return models.PredictionRecord{}, fmt.Errorf("persisting prediction log: %w", err)
	}

	t.logger.Info().
		Int("id", record.ID).
		Str("direction", string(record.Direction)).
		Float64("price", record.PriceAtPrediction).
		Msg("prediction logged")
	return record, nil
}

// CheckResults runs one evaluation pass: fetch the reference price once,
// then score every mature unchecked record against it. A failed price fetch
// aborts the whole pass with no mutation; the next scheduled run retries.
// Already-checked records are skipped unconditionally, so re-running a pass
// is idempotent.
func (t *Tracker) CheckResults(ctx context.Context) error {
	records, err := t.store.Load()
	if err != nil {
		return fmt.Errorf("loading prediction log: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	currentPrice, err := t.price.GetPrice(ctx)
	if err != nil {
		return fmt.Errorf("fetching reference price: %w", err)
	}

	now := time.Now().UTC()
	updated := false

	for i := range records {
		if t.evaluate(&records[i], currentPrice, now) {
			updated = true
		}
	}

	if !updated {
		return nil
	}
	if err := t.store.Replace(records); err != nil {
		return fmt.Errorf("persisting evaluated records: %w", err)
	}
	return nil
}

// evaluate scores a single record if it is mature and unchecked. Returns
// true when the record's outcome fields were populated.
func (t *Tracker) evaluate(rec *models.PredictionRecord, currentPrice float64, now time.Time) bool {
	if rec.Outcome.Checked() {
		return false
	}
	if !rec.Mature(now) {
		return false
	}
	if rec.PriceAtPrediction <= 0 {
		return false
	}

	change := ((currentPrice - rec.PriceAtPrediction) / rec.PriceAtPrediction) * 100

	var correct bool
	switch rec.Direction {
	case models.DirectionLong:
		correct = change > 0
	case models.DirectionShort:
		correct = change < 0
	default:
		// A flat call is right when the move stayed inside the deadband
		correct = math.Abs(change) < t.cfg.NeutralDeadbandPct
	}

	checkedAt := now
	rec.Outcome.PriceAfter = &currentPrice
	rec.Outcome.ActualChangePct = &change
	rec.Outcome.WasCorrect = &correct
	rec.Outcome.CheckedAt = &checkedAt

	t.logger.Info().
		Int("id", rec.ID).
		Str("direction", string(rec.Direction)).
		Float64("change_pct", change).
		Bool("correct", correct).
		Msg("prediction evaluated")
	return true
}
