package ports

import (
	"context"
	"time"
)

// RunEvent describes one finished import run.
type RunEvent struct {
	RunID           string    `json:"run_id"`
	DataSourceID    string    `json:"data_source_id"`
	Provider        string    `json:"provider"`
	Resource        string    `json:"resource"`
	RecordsImported int       `json:"records_imported"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// RunNotifier publishes run completions for downstream consumers.
// Publishing is best-effort; import results never depend on it.
type RunNotifier interface {
	PublishRunCompleted(ctx context.Context, event RunEvent) error
}
