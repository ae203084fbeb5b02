// Package stats reduces a finished batch into the run statistics
// snapshot and label distributions.
package stats

import (
	"errors"

	"github.com/tidemill/logtriage/internal/model"
)

// ErrEmptyBatch is returned when aggregation is asked to reduce a batch
// with no records. Every per-record average divides by the record count,
// so an empty batch cannot produce stats.
var ErrEmptyBatch = errors.New("stats: empty batch")

// Aggregate computes the full statistics snapshot from a finished batch.
// wallSeconds is the wall-clock duration of the parallel run and workers
// the pool size used; both are recorded verbatim. The result is fully
// determined by the batch contents, independent of processing order.
func Aggregate(batch []model.Record, wallSeconds float64, workers int) (model.Stats, error) {
	if len(batch) == 0 {
		return model.Stats{}, ErrEmptyBatch
	}

	var sumStage1Ms, sumStage2Ms float64
	var totalKeywords, totalKeywordChars, correct int

	for i := range batch {
		rec := &batch[i]
		sumStage1Ms += float64(rec.Stage1.Nanoseconds()) / 1e6
		sumStage2Ms += float64(rec.Stage2.Nanoseconds()) / 1e6

		totalKeywords += len(rec.Keywords)
		for _, kw := range rec.Keywords {
			totalKeywordChars += len(kw)
		}

		if rec.PredictedLabel == rec.Label {
			correct++
		}
	}

	n := float64(len(batch))
	s := model.Stats{
		TotalLogs:       len(batch),
		NumWorkers:      workers,
		TotalTimeSec:    wallSeconds,
		AvgTimePerLogMs: (sumStage1Ms + sumStage2Ms) / n,

		Stage1TimeSec: sumStage1Ms / 1000.0,
		Stage2TimeSec: sumStage2Ms / 1000.0,

		Correct:            correct,
		AccuracyPercentage: 100.0 * float64(correct) / n,

		AvgKeywordsCount: float64(totalKeywords) / n,
		AvgKeywordsChars: float64(totalKeywordChars) / n,
	}

	if wallSeconds > 0 {
		s.LogsPerSecond = n / wallSeconds
	}

	// Percentages stay zero when no stage time was recorded.
	if totalStage := s.Stage1TimeSec + s.Stage2TimeSec; totalStage > 0 {
		s.Stage1Percentage = s.Stage1TimeSec / totalStage * 100.0
		s.Stage2Percentage = s.Stage2TimeSec / totalStage * 100.0
	}

	return s, nil
}

// Distribution tallies ground-truth and predicted labels across the batch.
func Distribution(batch []model.Record) model.Distribution {
	d := model.Distribution{
		GroundTruth: make(map[string]int),
		Predicted:   make(map[string]int),
	}
	for i := range batch {
		d.GroundTruth[batch[i].Label]++
		d.Predicted[batch[i].PredictedLabel]++
	}
	return d
}
