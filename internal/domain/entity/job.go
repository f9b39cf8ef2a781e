package entity

// AggregationJob is the batch message driving one pipeline run: every
// listed unit at (Site, Day) is processed as an independent group.
// Variables defaults to gear/rpm/speed when empty.
type AggregationJob struct {
	JobID     string   `json:"job_id"`
	Site      string   `json:"site"`
	Day       string   `json:"day"`
	Units     []string `json:"units"`
	Variables []string `json:"variables,omitempty"`
}

// BatchResult is published after a job finishes.
type BatchResult struct {
	JobID     string         `json:"job_id"`
	Site      string         `json:"site"`
	Day       string         `json:"day"`
	Summaries []GroupSummary `json:"summaries"`
	Failures  []GroupFailure `json:"failures,omitempty"`
}
