package usecase

import (
	"errors"
	"fmt"
	"sort"

	"fleetfuel/internal/domain/entity"
)

// ErrKeyMismatch means streams from different groups were fed into one
// alignment call. This is a caller error, fatal to that group only.
var ErrKeyMismatch = errors.New("sample streams do not share one group key")

// AlignStreams full outer-joins the streams of one group onto the sorted
// union of their timestamps. A variable with no samples still gets a column,
// entirely absent. When one stream carries the same timestamp twice, the
// last-seen value wins. The result does not depend on stream order: samples
// are sorted by timestamp first, so "last seen" is the latest occurrence in
// the source's own ordering of equal timestamps, which is stable input.
func AlignStreams(streams []entity.SampleStream) (*entity.AlignedTable, error) {
	if len(streams) == 0 {
		return &entity.AlignedTable{Columns: map[string]map[int64]float64{}}, nil
	}

	key := streams[0].Key
	for _, s := range streams[1:] {
		if s.Key != key {
			return nil, fmt.Errorf("%w: %s vs %s", ErrKeyMismatch, key, s.Key)
		}
	}

	axis := make(map[int64]struct{})
	columns := make(map[string]map[int64]float64, len(streams))
	for _, s := range streams {
		col, ok := columns[s.Variable]
		if !ok {
			col = make(map[int64]float64, len(s.Samples))
			columns[s.Variable] = col
		}
		samples := append([]entity.Sample(nil), s.Samples...)
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].Timestamp < samples[j].Timestamp
		})
		for _, sm := range samples {
			col[sm.Timestamp] = sm.Value
			axis[sm.Timestamp] = struct{}{}
		}
	}

	timestamps := make([]int64, 0, len(axis))
	for ts := range axis {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	return &entity.AlignedTable{Key: key, Timestamps: timestamps, Columns: columns}, nil
}
