package usecase

import (
	"sort"

	"fleetfuel/internal/domain/entity"
)

// GroupStreams bundles one group's raw streams for aggregation.
type GroupStreams struct {
	Key     entity.GroupKey
	Streams []entity.SampleStream
}

// SummarizeGroup runs one group through the whole pipeline: align, fill,
// model, convert to per-second, integrate. The filled table is returned
// alongside the summary so callers can archive it. An empty group yields a
// zero summary with RateDefined false, not an error; only structural faults
// (mismatched keys) fail.
func SummarizeGroup(gs GroupStreams, params FuelParams) (entity.GroupSummary, *entity.FilledTable, error) {
	aligned, err := AlignStreams(gs.Streams)
	if err != nil {
		return entity.GroupSummary{}, nil, err
	}
	aligned.Key = gs.Key

	filled := FillTable(aligned)
	rows := ModelRowsFromTable(filled)
	rates := ComputeRates(rows, params)

	points := make([]entity.FuelRatePoint, len(rows))
	speeds := make([]float64, len(rows))
	for i, row := range rows {
		points[i] = entity.FuelRatePoint{
			Timestamp: row.Timestamp,
			Rate:      PerHourToPerSecond(rates[i]),
		}
		speeds[i] = row.Speed
	}

	summary := entity.GroupSummary{
		Site:         gs.Key.Site,
		Day:          gs.Key.Day,
		UnitID:       gs.Key.UnitID,
		Gallons:      Integrate(points),
		ElapsedHours: ElapsedHours(points),
		MeanSpeed:    Mean(speeds),
	}
	if summary.ElapsedHours > 0 {
		summary.GallonsPerHour = summary.Gallons / summary.ElapsedHours
		summary.RateDefined = true
	}
	return summary, filled, nil
}

// Aggregate runs every group independently and splits results from
// failures. One malformed group never aborts the batch. Output is sorted
// by group key so identical input yields identical output.
func Aggregate(groups []GroupStreams, params FuelParams) ([]entity.GroupSummary, []entity.GroupFailure) {
	summaries := make([]entity.GroupSummary, 0, len(groups))
	var failures []entity.GroupFailure

	for _, gs := range groups {
		summary, _, err := SummarizeGroup(gs, params)
		if err != nil {
			failures = append(failures, entity.GroupFailure{
				Key:    gs.Key,
				Reason: entity.ReasonInvalidInput,
				Detail: err.Error(),
			})
			continue
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Key().Less(summaries[j].Key())
	})
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Key.Less(failures[j].Key)
	})
	return summaries, failures
}
