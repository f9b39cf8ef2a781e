package entity

import "time"

// FuelRatePoint is one computed consumption sample. Rate units depend on
// where the point sits in the pipeline: the model emits gallons per hour,
// the integrator consumes gallons per second.
type FuelRatePoint struct {
	Timestamp int64   `json:"timestamp"`
	Rate      float64 `json:"rate"`
}

// FuelRateSeries is the derived consumption series for one group.
type FuelRateSeries struct {
	Key    GroupKey
	Points []FuelRatePoint
}

// GroupSummary is the per-group aggregation result persisted for fleet
// reporting. RateDefined is false when the group spans zero elapsed time,
// in which case GallonsPerHour is meaningless and held at zero.
type GroupSummary struct {
	Site           string  `gorm:"primaryKey;type:text" json:"site"`
	Day            string  `gorm:"primaryKey;type:text" json:"day"`
	UnitID         string  `gorm:"primaryKey;type:text" json:"unit_id"`
	Gallons        float64 `json:"gallons"`
	ElapsedHours   float64 `json:"elapsed_hours"`
	MeanSpeed      float64 `json:"mean_speed"`
	GallonsPerHour float64 `json:"gallons_per_hour"`
	RateDefined    bool    `json:"rate_defined"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (GroupSummary) TableName() string { return "group_summaries" }

func (s GroupSummary) Key() GroupKey {
	return GroupKey{Site: s.Site, Day: s.Day, UnitID: s.UnitID}
}

// FailureReason codes per-group faults without aborting a batch.
type FailureReason string

const (
	ReasonInvalidInput FailureReason = "INVALID_INPUT"
	ReasonReadFailed   FailureReason = "READ_FAILED"
	ReasonWriteFailed  FailureReason = "WRITE_FAILED"
)

// GroupFailure records why one group produced no summary. Other groups in
// the same batch are unaffected.
type GroupFailure struct {
	Key    GroupKey      `json:"key"`
	Reason FailureReason `json:"reason"`
	Detail string        `json:"detail"`
}
