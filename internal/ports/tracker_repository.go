package ports

import (
	"context"
	"errors"
	"time"

	"devpulse/internal/domain/tracker"
)

var ErrContributorNotFound = errors.New("contributor not found")

// Contributor is the canonical person record, unique per (provider, email).
type Contributor struct {
	ID        uint64
	Provider  tracker.Provider
	Email     string
	Name      string
	AvatarURL string
}

// ContributorUpsert creates the contributor on first sight and refreshes
// name/avatar afterwards; the (provider, email) key never changes.
type ContributorUpsert struct {
	Provider  tracker.Provider
	Email     string
	Name      string
	AvatarURL string
}

// IssueRecord is the canonical work item keyed by a synthetic provider
// key (`org/repo#123` for GitHub, the provider's own key for Jira).
type IssueRecord struct {
	Key         string
	ProjectID   uint64
	Title       string
	Description *string
	Type        tracker.IssueType
	Status      tracker.IssueStatus
	Priority    tracker.IssuePriority
	ReporterID  *uint64
	AssigneeID  *uint64
	BoardID     *string
	SprintID    *string
	StoryPoints *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}

type CommitRecord struct {
	RepositoryID uint64
	SHA          string
	AuthorID     *uint64
	Message      string
	Additions    int
	Deletions    int
	AuthoredAt   time.Time
}

type PullRequestRecord struct {
	Key          string
	RepositoryID uint64
	Number       int
	Title        string
	AuthorID     *uint64
	State        tracker.PullRequestState
	Iterations   int
	Additions    int
	Deletions    int
	CreatedAt    time.Time
	MergedAt     *time.Time
	ClosedAt     *time.Time
}

type ReviewRecord struct {
	PullRequestKey   string
	ProviderReviewID int64
	ReviewerID       *uint64
	State            string
	SubmittedAt      time.Time
}

// TrackerRepository is the write side of the normalized store. Every
// upsert is atomic per key: the create branch sets all fields, the update
// branch refreshes mutable fields without touching creation metadata.
type TrackerRepository interface {
	UpsertContributor(ctx context.Context, upsert ContributorUpsert) (Contributor, error)
	UpsertIssue(ctx context.Context, record IssueRecord) error
	UpsertCommit(ctx context.Context, record CommitRecord) error
	UpsertPullRequest(ctx context.Context, record PullRequestRecord) error
	UpsertReview(ctx context.Context, record ReviewRecord) error
}
