package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"fleetfuel/internal/domain/entity"
	"fleetfuel/internal/domain/usecase"
)

type fakeStore struct {
	samples   map[string][]entity.Sample
	summaries map[string]entity.GroupSummary
	archived  map[string][]byte
	saved     []entity.GroupSummary
	readErr   map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		samples:   map[string][]entity.Sample{},
		summaries: map[string]entity.GroupSummary{},
		archived:  map[string][]byte{},
		readErr:   map[string]error{},
	}
}

func (f *fakeStore) GetSamples(_ context.Context, key entity.GroupKey, variable string) ([]entity.Sample, error) {
	row := key.SampleRowKey(variable)
	if err := f.readErr[row]; err != nil {
		return nil, err
	}
	return f.samples[row], nil
}

func (f *fakeStore) PutSummary(_ context.Context, summary entity.GroupSummary, _ []byte) error {
	f.summaries[summary.Key().SummaryRowKey()] = summary
	return nil
}

func (f *fakeStore) SaveSummaries(_ context.Context, summaries []entity.GroupSummary) error {
	f.saved = append(f.saved, summaries...)
	return nil
}

func (f *fakeStore) UploadTable(_ context.Context, key entity.GroupKey, csv []byte) error {
	f.archived[key.String()] = csv
	return nil
}

func TestProcessJobPersistsSummaries(t *testing.T) {
	store := newFakeStore()
	key := entity.GroupKey{Site: "JFK", Day: "2026-07-14", UnitID: "GSU-17"}
	store.samples[key.SampleRowKey("gear")] = []entity.Sample{{Timestamp: 0, Value: 2}, {Timestamp: 10, Value: 2}}
	store.samples[key.SampleRowKey("rpm")] = []entity.Sample{{Timestamp: 10, Value: 1500}, {Timestamp: 0, Value: 1000}}
	store.samples[key.SampleRowKey("speed")] = []entity.Sample{{Timestamp: 0, Value: 30}, {Timestamp: 10, Value: 32}}

	uc := usecase.NewPipelineUseCase(store, store, store, store, usecase.DefaultFuelParams())
	result, err := uc.ProcessJob(context.Background(), &entity.AggregationJob{
		Site: "JFK", Day: "2026-07-14", Units: []string{"GSU-17"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.JobID)
	require.Len(t, result.Summaries, 1)
	require.Empty(t, result.Failures)

	require.Contains(t, store.summaries, key.SummaryRowKey())
	require.Contains(t, store.archived, key.String())
	require.Len(t, store.saved, 1)
	require.InDelta(t, 31.0, store.saved[0].MeanSpeed, 1e-12)
}

func TestProcessJobIsolatesReadFailures(t *testing.T) {
	store := newFakeStore()
	good := entity.GroupKey{Site: "JFK", Day: "2026-07-14", UnitID: "GSU-01"}
	bad := entity.GroupKey{Site: "JFK", Day: "2026-07-14", UnitID: "GSU-02"}
	store.samples[good.SampleRowKey("speed")] = []entity.Sample{{Timestamp: 0, Value: 10}, {Timestamp: 60, Value: 12}}
	store.readErr[bad.SampleRowKey("gear")] = errors.New("connection reset")

	uc := usecase.NewPipelineUseCase(store, store, store, store, usecase.DefaultFuelParams())
	result, err := uc.ProcessJob(context.Background(), &entity.AggregationJob{
		JobID: "job-1", Site: "JFK", Day: "2026-07-14", Units: []string{"GSU-01", "GSU-02"},
	})
	require.NoError(t, err)
	require.Len(t, result.Summaries, 1)
	require.Equal(t, "GSU-01", result.Summaries[0].UnitID)
	require.Len(t, result.Failures, 1)
	require.Equal(t, bad, result.Failures[0].Key)
	require.Equal(t, entity.ReasonReadFailed, result.Failures[0].Reason)
}

func TestProcessJobEmptyGroupStillSummarized(t *testing.T) {
	store := newFakeStore()
	uc := usecase.NewPipelineUseCase(store, store, store, store, usecase.DefaultFuelParams())
	result, err := uc.ProcessJob(context.Background(), &entity.AggregationJob{
		JobID: "job-2", Site: "JFK", Day: "2026-07-14", Units: []string{"GSU-09"},
	})
	require.NoError(t, err)
	require.Len(t, result.Summaries, 1)
	require.Equal(t, 0.0, result.Summaries[0].Gallons)
	require.False(t, result.Summaries[0].RateDefined)
}
