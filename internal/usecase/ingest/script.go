package ingest

import (
	"context"
	"time"

	gogithub "github.com/google/go-github/v68/github"

	"devpulse/internal/infrastructure/provider/jira"
)

// Resource names shared between script metadata and DependsOn lists.
const (
	ResourceRepository  = "repository"
	ResourceProject     = "project"
	ResourceContributor = "contributor"
	ResourceIssue       = "issue"
	ResourceCommit      = "commit"
	ResourcePullRequest = "pull_request"
)

// RunContext carries everything one script execution needs: the data
// source, its pre-created run row, the import window, and the provider
// credentials from the data-source env.
type RunContext struct {
	DataSourceID string
	RunID        string
	StartDate    time.Time
	EndDate      time.Time
	Env          map[string]string
}

// ImportScript is the contract the scheduler consumes. Metadata is
// static and introspectable so the scheduler can order scripts by
// DependsOn before any of them runs.
type ImportScript interface {
	DataSourceName() string
	Resource() string
	DependsOn() []string
	ImportWindowDays() int
	Run(ctx context.Context, rc RunContext) error
}

// GitHubSource is the paginated fetch surface the GitHub scripts
// consume; the concrete client lives in infrastructure.
type GitHubSource interface {
	ForEachIssuePage(ctx context.Context, owner, repo string, since time.Time, fn func(page []*gogithub.Issue) error) error
	ForEachCommitPage(ctx context.Context, owner, repo string, since, until time.Time, fn func(page []*gogithub.RepositoryCommit) error) error
	ForEachPullPage(ctx context.Context, owner, repo string, fn func(page []*gogithub.PullRequest) error) error
	ListReviews(ctx context.Context, owner, repo string, number int) ([]*gogithub.PullRequestReview, error)
}

// JiraSource is the paginated fetch surface the Jira scripts consume.
type JiraSource interface {
	ForEachIssuePage(ctx context.Context, projectKey string, updatedSince time.Time, fn func(page []jira.Issue) error) error
}

// Factories build provider clients from a data source's env map.
type (
	GitHubSourceFactory func(ctx context.Context, env map[string]string) (GitHubSource, error)
	JiraSourceFactory   func(ctx context.Context, env map[string]string) (JiraSource, error)
)
