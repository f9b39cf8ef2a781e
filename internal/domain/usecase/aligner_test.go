package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"fleetfuel/internal/domain/entity"
	"fleetfuel/internal/domain/usecase"
)

var testKey = entity.GroupKey{Site: "JFK", Day: "2026-07-14", UnitID: "GSU-17"}

func stream(variable string, samples ...entity.Sample) entity.SampleStream {
	return entity.SampleStream{Key: testKey, Variable: variable, Samples: samples}
}

func TestAlignUnionTimestamps(t *testing.T) {
	table, err := usecase.AlignStreams([]entity.SampleStream{
		stream("rpm", entity.Sample{Timestamp: 10, Value: 1500}, entity.Sample{Timestamp: 0, Value: 1000}),
		stream("speed", entity.Sample{Timestamp: 5, Value: 20}, entity.Sample{Timestamp: 10, Value: 25}),
	})
	require.NoError(t, err)
	require.Equal(t, []int64{0, 5, 10}, table.Timestamps)

	// rpm has no sample at t=5: explicit absence, not a fabricated value.
	_, ok := table.Value("rpm", 5)
	require.False(t, ok)
	v, ok := table.Value("speed", 5)
	require.True(t, ok)
	require.Equal(t, 20.0, v)
}

func TestAlignToleratesUnsortedAndDuplicates(t *testing.T) {
	table, err := usecase.AlignStreams([]entity.SampleStream{
		stream("rpm",
			entity.Sample{Timestamp: 10, Value: 1},
			entity.Sample{Timestamp: 5, Value: 2},
			entity.Sample{Timestamp: 10, Value: 3},
		),
	})
	require.NoError(t, err)
	require.Equal(t, []int64{5, 10}, table.Timestamps)

	// Duplicate timestamp keeps the last-seen value in source order.
	v, ok := table.Value("rpm", 10)
	require.True(t, ok)
	require.Equal(t, 3.0, v)
}

func TestAlignEmptyVariableStillHasColumn(t *testing.T) {
	table, err := usecase.AlignStreams([]entity.SampleStream{
		stream("rpm", entity.Sample{Timestamp: 0, Value: 800}),
		stream("gear"),
	})
	require.NoError(t, err)
	require.Contains(t, table.Columns, "gear")
	require.Empty(t, table.Columns["gear"])
}

func TestAlignDeterministicAcrossStreamOrder(t *testing.T) {
	a := stream("rpm", entity.Sample{Timestamp: 0, Value: 1000}, entity.Sample{Timestamp: 10, Value: 1500})
	b := stream("speed", entity.Sample{Timestamp: 0, Value: 30}, entity.Sample{Timestamp: 10, Value: 32})
	c := stream("gear", entity.Sample{Timestamp: 5, Value: 2})

	first, err := usecase.AlignStreams([]entity.SampleStream{a, b, c})
	require.NoError(t, err)
	second, err := usecase.AlignStreams([]entity.SampleStream{c, b, a})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAlignRejectsMismatchedKeys(t *testing.T) {
	other := entity.SampleStream{
		Key:      entity.GroupKey{Site: "LGA", Day: "2026-07-14", UnitID: "GSU-17"},
		Variable: "speed",
	}
	_, err := usecase.AlignStreams([]entity.SampleStream{stream("rpm"), other})
	require.Error(t, err)
	require.True(t, errors.Is(err, usecase.ErrKeyMismatch))
}

func TestAlignNoStreams(t *testing.T) {
	table, err := usecase.AlignStreams(nil)
	require.NoError(t, err)
	require.Empty(t, table.Timestamps)
	require.Empty(t, table.Columns)
}
