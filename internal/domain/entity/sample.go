package entity

import "fmt"

// Variable names carried by the fleet telemetry feed.
const (
	VarGear  = "gear"
	VarRPM   = "rpm"
	VarSpeed = "speed"
)

// GroupKey identifies one independent unit of work: one vehicle at one
// site on one day. All streams fed into a single pipeline run must share it.
type GroupKey struct {
	Site   string `json:"site"`
	Day    string `json:"day"`
	UnitID string `json:"unit_id"`
}

func (k GroupKey) String() string {
	return k.Site + ":" + k.Day + ":" + k.UnitID
}

// SampleRowKey is the store row key holding raw samples for one variable.
func (k GroupKey) SampleRowKey(variable string) string {
	return fmt.Sprintf("samples:%s:%s:%s:%s", k.Site, k.Day, k.UnitID, variable)
}

// SummaryRowKey is the store row key holding the flattened group summary.
func (k GroupKey) SummaryRowKey() string {
	return fmt.Sprintf("summary:%s:%s:%s", k.Site, k.Day, k.UnitID)
}

// Less orders keys by (site, day, unit) for stable batch output.
func (k GroupKey) Less(other GroupKey) bool {
	if k.Site != other.Site {
		return k.Site < other.Site
	}
	if k.Day != other.Day {
		return k.Day < other.Day
	}
	return k.UnitID < other.UnitID
}

// Sample is a single timestamped reading. Immutable once read from the store.
type Sample struct {
	Timestamp int64   `json:"timestamp"` // seconds since epoch
	Value     float64 `json:"value"`
}

// SampleStream is one variable's raw readings for one group. The store may
// hand samples back unsorted and with duplicate timestamps; the pipeline
// sorts on ingest.
type SampleStream struct {
	Key      GroupKey
	Variable string
	Samples  []Sample
}
