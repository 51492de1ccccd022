package history

import (
	"fmt"
	"time"

	"github.com/Alias1177/MoodTracker/models"
)

// AccuracyStats recomputes the accuracy snapshot from the full record log
func (t *Tracker) AccuracyStats() (models.AccuracyStats, error) {
	records, err := t.store.Load()
	if err != nil {
		return models.AccuracyStats{}, fmt.Errorf("loading prediction log: %w", err)
	}
	return ComputeStats(records, time.Now().UTC(), t.cfg.MinSignalSamples), nil
}

// ComputeStats is the pure read-side fold over the record log: overall and
// rolling-window accuracy, per-direction accuracy, and per-signal agreement
// accuracy. Rolling windows filter on the record's creation timestamp.
func ComputeStats(records []models.PredictionRecord, now time.Time, minSamples int) models.AccuracyStats {
	stats := models.AccuracyStats{
		TotalPredictions: len(records),
		DirectionStats:   make(map[models.Direction]models.DirectionStats),
		SignalAccuracy:   make(map[models.SignalSource]float64),
	}

	var checked []models.PredictionRecord
	for _, rec := range records {
		if rec.Outcome.Checked() {
			checked = append(checked, rec)
		}
	}
	stats.Checked = len(checked)
	if len(checked) == 0 {
		return stats
	}

	for _, rec := range checked {
		if *rec.Outcome.WasCorrect {
			stats.Correct++
		}
	}
	stats.OverallAccuracy = float64(stats.Correct) / float64(len(checked)) * 100

	stats.Accuracy7d = windowAccuracy(checked, now, 7*24*time.Hour)
	stats.Accuracy30d = windowAccuracy(checked, now, 30*24*time.Hour)

	for _, dir := range []models.Direction{models.DirectionLong, models.DirectionShort, models.DirectionNeutral} {
		var total, correct int
		for _, rec := range checked {
			if rec.Direction != dir {
				continue
			}
			total++
			if *rec.Outcome.WasCorrect {
				correct++
			}
		}
		if total > 0 {
			stats.DirectionStats[dir] = models.DirectionStats{
				Total:    total,
				Correct:  correct,
				Accuracy: float64(correct) / float64(total) * 100,
			}
		}
	}

	// Per-signal attribution: a source is credited only when its sign
	// agreed with the predicted direction. Measuring each source against
	// the realized outcome instead would be the stricter design; kept
	// as-is so historical figures stay comparable.
	type tally struct{ correct, total int }
	signalTallies := make(map[models.SignalSource]*tally)
	for _, rec := range checked {
		for source, score := range rec.SignalScores {
			agreed := (score > 0 && rec.Direction == models.DirectionLong) ||
				(score < 0 && rec.Direction == models.DirectionShort)
			if !agreed {
				continue
			}
			tl := signalTallies[source]
			if tl == nil {
				tl = &tally{}
				signalTallies[source] = tl
			}
			tl.total++
			if *rec.Outcome.WasCorrect {
				tl.correct++
			}
		}
	}
	for source, tl := range signalTallies {
		// Small samples produce noise, not signal
		if tl.total < minSamples {
			continue
		}
		stats.SignalAccuracy[source] = float64(tl.correct) / float64(tl.total) * 100
	}

	return stats
}

func windowAccuracy(checked []models.PredictionRecord, now time.Time, window time.Duration) *float64 {
	var total, correct int
	for _, rec := range checked {
		if now.Sub(rec.Timestamp) >= window {
			continue
		}
		total++
		if *rec.Outcome.WasCorrect {
			correct++
		}
	}
	if total == 0 {
		return nil
	}
	accuracy := float64(correct) / float64(total) * 100
	return &accuracy
}
