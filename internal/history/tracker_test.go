package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/MoodTracker/internal/config"
	"github.com/Alias1177/MoodTracker/models"
)

type stubPriceClient struct {
	price float64
	err   error
	calls int
}

func (s *stubPriceClient) GetPrice(ctx context.Context) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.price, nil
}

func trackerConfig() *config.Config {
	return &config.Config{
		NeutralDeadbandPct: 2.0,
		MinSignalSamples:   3,
		Timeframe:          models.Duration(24 * time.Hour),
	}
}

func newTestTracker(t *testing.T, price *stubPriceClient) (*Tracker, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "predictions.json"))
	return NewTracker(store, price, trackerConfig()), store
}

func TestLogPredictionAssignsSequentialIDs(t *testing.T) {
	tracker, store := newTestTracker(t, &stubPriceClient{price: 100})

	p := models.Prediction{
		Timestamp:    time.Now().UTC(),
		Direction:    models.DirectionLong,
		CurrentPrice: 150,
		Timeframe:    models.Duration(24 * time.Hour),
	}

	first, err := tracker.LogPrediction(p)
	require.NoError(t, err)
	second, err := tracker.LogPrediction(p)
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Nil(t, first.Outcome.WasCorrect)

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 150.0, records[0].PriceAtPrediction)
}

func TestCheckResultsScoresMatureRecords(t *testing.T) {
	matured := time.Now().UTC().Add(-25 * time.Hour)

	tests := []struct {
		name        string
		direction   models.Direction
		price       float64 // entry was 100
		wantCorrect bool
		wantChange  float64
	}{
		{"long call on a rise", models.DirectionLong, 101, true, 1.0},
		{"long call on a drop", models.DirectionLong, 99, false, -1.0},
		{"long call on a flat close", models.DirectionLong, 100, false, 0.0},
		{"short call on a drop", models.DirectionShort, 99, true, -1.0},
		{"short call on a rise", models.DirectionShort, 101, false, 1.0},
		{"neutral call inside the deadband", models.DirectionNeutral, 101.5, true, 1.5},
		{"neutral call outside the deadband", models.DirectionNeutral, 103, false, 3.0},
		{"neutral call on a sharp drop", models.DirectionNeutral, 97, false, -3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := &stubPriceClient{price: tt.price}
			tracker, store := newTestTracker(t, price)

			rec := testRecord(1, tt.direction, matured)
			rec.PriceAtPrediction = 100
			require.NoError(t, store.Replace([]models.PredictionRecord{rec}))

			require.NoError(t, tracker.CheckResults(context.Background()))

			records, err := store.Load()
			require.NoError(t, err)
			require.Len(t, records, 1)
			outcome := records[0].Outcome
			require.True(t, outcome.Checked())
			assert.Equal(t, tt.wantCorrect, *outcome.WasCorrect)
			assert.InDelta(t, tt.wantChange, *outcome.ActualChangePct, 1e-9)
			assert.Equal(t, tt.price, *outcome.PriceAfter)
			assert.NotNil(t, outcome.CheckedAt)
		})
	}
}

func TestCheckResultsSkipsImmatureRecords(t *testing.T) {
	tracker, store := newTestTracker(t, &stubPriceClient{price: 120})

	rec := testRecord(1, models.DirectionLong, time.Now().UTC().Add(-1*time.Hour))
	require.NoError(t, store.Replace([]models.PredictionRecord{rec}))

	require.NoError(t, tracker.CheckResults(context.Background()))

	records, err := store.Load()
	require.NoError(t, err)
	assert.False(t, records[0].Outcome.Checked())
}

func TestCheckResultsSkipsZeroEntryPrice(t *testing.T) {
	tracker, store := newTestTracker(t, &stubPriceClient{price: 120})

	rec := testRecord(1, models.DirectionLong, time.Now().UTC().Add(-25*time.Hour))
	rec.PriceAtPrediction = 0
	require.NoError(t, store.Replace([]models.PredictionRecord{rec}))

	require.NoError(t, tracker.CheckResults(context.Background()))

	records, err := store.Load()
	require.NoError(t, err)
	assert.False(t, records[0].Outcome.Checked())
}

func TestCheckResultsAbortsOnPriceError(t *testing.T) {
	price := &stubPriceClient{err: errors.New("upstream down")}
	tracker, store := newTestTracker(t, price)

	rec := testRecord(1, models.DirectionLong, time.Now().UTC().Add(-25*time.Hour))
	require.NoError(t, store.Replace([]models.PredictionRecord{rec}))

	err := tracker.CheckResults(context.Background())
	require.Error(t, err)

	// No partial evaluation: the record is untouched for the next run
	records, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.False(t, records[0].Outcome.Checked())
}

func TestCheckResultsIsIdempotent(t *testing.T) {
	price := &stubPriceClient{price: 101}
	tracker, store := newTestTracker(t, price)

	rec := testRecord(1, models.DirectionLong, time.Now().UTC().Add(-25*time.Hour))
	rec.PriceAtPrediction = 100
	require.NoError(t, store.Replace([]models.PredictionRecord{rec}))

	require.NoError(t, tracker.CheckResults(context.Background()))

	first, err := store.Load()
	require.NoError(t, err)
	require.True(t, first[0].Outcome.Checked())

	// A later pass at a different price must not rewrite the outcome
	price.price = 99
	require.NoError(t, tracker.CheckResults(context.Background()))

	second, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, first[0].Outcome, second[0].Outcome)
	assert.Equal(t, 101.0, *second[0].Outcome.PriceAfter)
}

func TestCheckResultsFetchesPriceOnce(t *testing.T) {
	price := &stubPriceClient{price: 105}
	tracker, store := newTestTracker(t, price)

	matured := time.Now().UTC().Add(-25 * time.Hour)
	require.NoError(t, store.Replace([]models.PredictionRecord{
		testRecord(1, models.DirectionLong, matured),
		testRecord(2, models.DirectionShort, matured),
		testRecord(3, models.DirectionNeutral, matured),
	}))

	require.NoError(t, tracker.CheckResults(context.Background()))
	assert.Equal(t, 1, price.calls)
}

func TestCheckResultsEmptyLog(t *testing.T) {
	price := &stubPriceClient{price: 105}
	tracker, _ := newTestTracker(t, price)

	require.NoError(t, tracker.CheckResults(context.Background()))
	assert.Zero(t, price.calls)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	withScores := func(rec models.PredictionRecord, scores map[models.SignalSource]float64) models.PredictionRecord {
		rec.SignalScores = scores
		return rec
	}

	records := []models.PredictionRecord{
		withScores(checkedRecord(1, models.DirectionLong, now.Add(-3*24*time.Hour), true),
			map[models.SignalSource]float64{models.SourceTechnical: 0.5, models.SourceOnChain: -0.2}),
		withScores(checkedRecord(2, models.DirectionLong, now.Add(-20*24*time.Hour), true),
			map[models.SignalSource]float64{models.SourceTechnical: 0.3, models.SourceOnChain: 0.1}),
		withScores(checkedRecord(3, models.DirectionLong, now.Add(-40*24*time.Hour), false),
			map[models.SignalSource]float64{models.SourceTechnical: 0.4, models.SourceOnChain: -0.3}),
		withScores(checkedRecord(4, models.DirectionShort, now.Add(-2*24*time.Hour), true),
			map[models.SignalSource]float64{models.SourceTechnical: -0.2, models.SourceOnChain: -0.4}),
		testRecord(5, models.DirectionNeutral, now.Add(-1*time.Hour)), // still pending
	}

	stats := ComputeStats(records, now, 3)

	assert.Equal(t, 5, stats.TotalPredictions)
	assert.Equal(t, 4, stats.Checked)
	assert.Equal(t, 3, stats.Correct)
	assert.InDelta(t, 75.0, stats.OverallAccuracy, 1e-9)

	// Rolling windows filter on creation time: ids 1 and 4 in 7d, plus 2 in 30d
	require.NotNil(t, stats.Accuracy7d)
	assert.InDelta(t, 100.0, *stats.Accuracy7d, 1e-9)
	require.NotNil(t, stats.Accuracy30d)
	assert.InDelta(t, 100.0, *stats.Accuracy30d, 1e-9)

	long := stats.DirectionStats[models.DirectionLong]
	assert.Equal(t, 3, long.Total)
	assert.Equal(t, 2, long.Correct)
	assert.InDelta(t, 100.0/1.5, long.Accuracy, 1e-9)

	short := stats.DirectionStats[models.DirectionShort]
	assert.Equal(t, 1, short.Total)
	assert.InDelta(t, 100.0, short.Accuracy, 1e-9)

	_, hasNeutral := stats.DirectionStats[models.DirectionNeutral]
	assert.False(t, hasNeutral, "pending records must not produce direction stats")

	// Technical agreed with the call in all four checked records, three of
	// which were right. On-chain agreed only twice, below the sample floor.
	require.Contains(t, stats.SignalAccuracy, models.SourceTechnical)
	assert.InDelta(t, 75.0, stats.SignalAccuracy[models.SourceTechnical], 1e-9)
	assert.NotContains(t, stats.SignalAccuracy, models.SourceOnChain)
}

func TestComputeStatsEmptyAndUncheckedLogs(t *testing.T) {
	now := time.Now().UTC()

	empty := ComputeStats(nil, now, 3)
	assert.Zero(t, empty.TotalPredictions)
	assert.Zero(t, empty.Checked)
	assert.Nil(t, empty.Accuracy7d)

	pendingOnly := ComputeStats([]models.PredictionRecord{
		testRecord(1, models.DirectionLong, now.Add(-time.Hour)),
	}, now, 3)
	assert.Equal(t, 1, pendingOnly.TotalPredictions)
	assert.Zero(t, pendingOnly.Checked)
	assert.Zero(t, pendingOnly.OverallAccuracy)
	assert.Nil(t, pendingOnly.Accuracy30d)
}
