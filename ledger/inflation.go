package ledger

import (
	"iter"
	"sort"
	"time"

	"github.com/fgiusti90/psico-app/model"
	"github.com/shopspring/decimal"
)

// AccumulateSince sums the percentage of every record whose month is on or
// after since. Records with an unreadable month are ignored. Duplicated months
// are summed as they come, negative months subtract.
func AccumulateSince(records []model.InflationRecord, since time.Time) float64 {
	total := decimal.Zero
	for _, r := range records {
		month, err := ParseDate(r.Month)
		if err != nil || month.Before(since) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(r.Percentage))
	}
	return total.InexactFloat64()
}

// RunningAccumulation yields every record in ascending month order together with
// the prefix sum of percentages up to and including it. The input is copied, so
// the sequence can be ranged over any number of times.
func RunningAccumulation(records []model.InflationRecord) iter.Seq2[model.InflationRecord, float64] {
	sorted := make([]model.InflationRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	return func(yield func(model.InflationRecord, float64) bool) {
		total := decimal.Zero
		for _, r := range sorted {
			total = total.Add(decimal.NewFromFloat(r.Percentage))
			if !yield(r, total.InexactFloat64()) {
				return
			}
		}
	}
}

// AccumulatedRecord is an inflation record with its running total.
type AccumulatedRecord struct {
	model.InflationRecord
	Accumulated float64 `json:"accumulated" example:"8.2"`
}

// InflationSeries is the materialised running accumulation plus its span.
type InflationSeries struct {
	Records []AccumulatedRecord `json:"records"`
	Total   float64             `json:"total"`
	From    string              `json:"from,omitempty"`
	To      string              `json:"to,omitempty"`
}

// BuildInflationSeries collects RunningAccumulation into a value ready to render.
func BuildInflationSeries(records []model.InflationRecord) InflationSeries {
	series := InflationSeries{Records: make([]AccumulatedRecord, 0, len(records))}
	for r, total := range RunningAccumulation(records) {
		series.Records = append(series.Records, AccumulatedRecord{InflationRecord: r, Accumulated: total})
		series.Total = total
	}
	if n := len(series.Records); n > 0 {
		series.From = series.Records[0].Month
		series.To = series.Records[n-1].Month
	}
	return series
}
