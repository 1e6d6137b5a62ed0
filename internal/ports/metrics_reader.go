package ports

import (
	"context"
	"time"

	"devpulse/internal/domain/tracker"
)

// Fact rows are flat, denormalized projections of the normalized store,
// loaded per aggregator call. The aggregator treats them as an immutable
// snapshot; no cross-call consistency is promised.

type CommitFact struct {
	AuthorID       uint64
	RepositoryName string
	Language       string
	Additions      int
	Deletions      int
	AuthoredAt     time.Time
}

type PullRequestFact struct {
	AuthorID   uint64
	State      tracker.PullRequestState
	Iterations int
	Additions  int
	Deletions  int
	CreatedAt  time.Time
	MergedAt   *time.Time
}

type ReviewFact struct {
	ReviewerID  uint64
	State       string
	SubmittedAt time.Time
}

type IssueFact struct {
	AssigneeID  *uint64
	Type        tracker.IssueType
	Status      tracker.IssueStatus
	Priority    tracker.IssuePriority
	StoryPoints *float64
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

type PipelineFact struct {
	RepositoryName  string
	Status          tracker.PipelineStatus
	DurationSeconds int
	StartedAt       time.Time
}

type ScanFact struct {
	RepositoryID    uint64
	RepositoryName  string
	Coverage        *float64
	NewCodeCoverage *float64
	Bugs            int
	CodeSmells      int
	ScannedAt       time.Time
}

type VulnerabilityFact struct {
	Severity   tracker.Severity
	Status     string
	DetectedAt time.Time
}

// LifetimeStats feed the achievement rules; they are all-time, not
// windowed.
type LifetimeStats struct {
	TotalCommits         int
	TotalReviews         int
	HasMergedPullRequest bool
}

// MetricsReader is the read side consumed by the dashboard aggregator.
// A nil contributor filter means organization-wide. All methods return
// empty slices, never errors, when no data matches.
type MetricsReader interface {
	CommitsInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]CommitFact, error)
	PullRequestsInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]PullRequestFact, error)
	ReviewsInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]ReviewFact, error)
	IssuesInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]IssueFact, error)
	PipelineRunsInRange(ctx context.Context, from, to time.Time) ([]PipelineFact, error)

	// ContributionDates returns the distinct UTC days with at least one
	// commit by the contributor, sorted descending.
	ContributionDates(ctx context.Context, contributorID uint64) ([]time.Time, error)
	LifetimeStats(ctx context.Context, contributorID uint64) (LifetimeStats, error)

	// LatestScans returns the most recent scan per repository as of the
	// given instant.
	LatestScans(ctx context.Context, asOf time.Time) ([]ScanFact, error)
	OpenVulnerabilities(ctx context.Context, asOf time.Time) ([]VulnerabilityFact, error)

	GetContributor(ctx context.Context, contributorID uint64) (Contributor, error)
}
