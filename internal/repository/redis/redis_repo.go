package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"fleetfuel/internal/domain/entity"
)

// ColumnarRepo maps the columnar key-value store onto redis hashes: one
// hash per row key, one hash field per column. Raw samples live under
// samples:{site}:{day}:{unit}:{variable} with the timestamp as field name,
// so reads come back unordered — the pipeline sorts on ingest.
type ColumnarRepo struct {
	client *redis.Client
}

func NewColumnarRepo(client *redis.Client) *ColumnarRepo {
	return &ColumnarRepo{client: client}
}

func (r *ColumnarRepo) GetSamples(ctx context.Context, key entity.GroupKey, variable string) ([]entity.Sample, error) {
	fields, err := r.client.HGetAll(ctx, key.SampleRowKey(variable)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key.SampleRowKey(variable), err)
	}

	samples := make([]entity.Sample, 0, len(fields))
	for field, raw := range fields {
		ts, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp field %q: %w", field, err)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value for %s at %d: %w", variable, ts, err)
		}
		samples = append(samples, entity.Sample{Timestamp: ts, Value: v})
	}
	return samples, nil
}

// PutSample writes one raw reading; ingest feeds land here.
func (r *ColumnarRepo) PutSample(ctx context.Context, key entity.GroupKey, variable string, s entity.Sample) error {
	field := strconv.FormatInt(s.Timestamp, 10)
	value := strconv.FormatFloat(s.Value, 'g', -1, 64)
	return r.client.HSet(ctx, key.SampleRowKey(variable), field, value).Err()
}

// PutSummary flattens a group summary into (row-key, column, value)
// triples on the summary hash, plus the serialized filled table for
// downstream reuse.
func (r *ColumnarRepo) PutSummary(ctx context.Context, summary entity.GroupSummary, filledCSV []byte) error {
	columns := map[string]interface{}{
		"gallons":          strconv.FormatFloat(summary.Gallons, 'g', -1, 64),
		"elapsed_hours":    strconv.FormatFloat(summary.ElapsedHours, 'g', -1, 64),
		"mean_speed":       strconv.FormatFloat(summary.MeanSpeed, 'g', -1, 64),
		"gallons_per_hour": strconv.FormatFloat(summary.GallonsPerHour, 'g', -1, 64),
		"rate_defined":     strconv.FormatBool(summary.RateDefined),
	}
	if len(filledCSV) > 0 {
		columns["filled_table"] = string(filledCSV)
	}
	return r.client.HSet(ctx, summary.Key().SummaryRowKey(), columns).Err()
}
