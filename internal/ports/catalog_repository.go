package ports

import (
	"context"
	"errors"
	"time"

	"devpulse/internal/domain/tracker"
)

var (
	ErrDataSourceNotFound = errors.New("data source not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrRunNotFound        = errors.New("data source run not found")
)

// DataSource is a tenant's configured connection to an external provider.
// The ingestion pipeline reads it and never mutates it.
type DataSource struct {
	ID       string
	Provider tracker.Provider
	Name     string
	Env      map[string]string
	Enabled  bool
}

// DataSourceRun records one execution of an import script for one
// resource type. RecordsImported is written exactly once at the end.
type DataSourceRun struct {
	ID              string
	DataSourceID    string
	Resource        string
	StartedAt       time.Time
	FinishedAt      *time.Time
	RecordsImported int
}

// ImportLogEntry is an append-only audit row; the pipeline only writes
// these, operators read them.
type ImportLogEntry struct {
	RunID   string
	Level   tracker.LogLevel
	Message string
	Details string
}

// Project is a tenant-scoped issue-tracker container.
type Project struct {
	ID           uint64
	DataSourceID string
	Provider     tracker.Provider
	Key          string
	Name         string
	Enabled      bool
}

// Repository is a tenant-scoped source repository container.
type Repository struct {
	ID           uint64
	DataSourceID string
	Provider     tracker.Provider
	FullName     string
	Language     string
	ProjectID    *uint64
	Enabled      bool
}

type CatalogRepository interface {
	GetDataSource(ctx context.Context, id string) (DataSource, error)
	ListDataSources(ctx context.Context, enabledOnly bool) ([]DataSource, error)
	UpsertDataSource(ctx context.Context, source DataSource) (DataSource, error)

	ListProjects(ctx context.Context, dataSourceID string, enabledOnly bool) ([]Project, error)
	GetProjectByKey(ctx context.Context, provider tracker.Provider, key string) (Project, error)
	UpsertProject(ctx context.Context, project Project) (Project, error)

	ListRepositories(ctx context.Context, dataSourceID string, enabledOnly bool) ([]Repository, error)
	GetRepositoryByFullName(ctx context.Context, provider tracker.Provider, fullName string) (Repository, error)
	UpsertRepository(ctx context.Context, repository Repository) (Repository, error)
}

type RunRepository interface {
	CreateRun(ctx context.Context, dataSourceID, resource string) (DataSourceRun, error)
	// FinishRun sets finished_at and the final records_imported counter.
	FinishRun(ctx context.Context, runID string, recordsImported int) error
	GetRun(ctx context.Context, runID string) (DataSourceRun, error)
	AppendLog(ctx context.Context, entry ImportLogEntry) error
	ListLogs(ctx context.Context, runID string) ([]ImportLogEntry, error)
}
