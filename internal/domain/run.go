package domain

import "time"

// RunSummary describes one ingestion run.
type RunSummary struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Categories int       `json:"categories"`
	Items      int       `json:"items"`
	Skipped    int       `json:"skipped"`
	Records    int       `json:"records"`
	Error      string    `json:"error,omitempty"`
}

// Succeeded reports whether the run finished without error.
func (r *RunSummary) Succeeded() bool {
	return r.Error == ""
}
