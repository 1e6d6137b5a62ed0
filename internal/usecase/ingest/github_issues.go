package ingest

import (
	"context"
	"fmt"
	"log/slog"

	gogithub "github.com/google/go-github/v68/github"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
)

// githubIssuesScript imports GitHub issues per repository. Repositories
// fail independently; a failed repository leaves one ERROR import log
// and never aborts the run.
type githubIssuesScript struct {
	deps scriptDeps
}

func (s *githubIssuesScript) DataSourceName() string { return string(tracker.ProviderGitHub) }
func (s *githubIssuesScript) Resource() string       { return ResourceIssue }
func (s *githubIssuesScript) ImportWindowDays() int  { return defaultWindowDays }

func (s *githubIssuesScript) DependsOn() []string {
	return []string{ResourceRepository, ResourceProject, ResourceContributor}
}

func (s *githubIssuesScript) Run(ctx context.Context, rc RunContext) error {
	logCtx := logging.WithAttrs(ctx,
		slog.String("script", "github.issue"),
		slog.String("run_id", rc.RunID),
	)

	repositories, err := s.deps.catalog.ListRepositories(ctx, rc.DataSourceID, true)
	if err != nil {
		return errs.Wrap(err, "list repositories")
	}
	if len(repositories) == 0 {
		// An empty scope is a zero-work success, not an error.
		logging.Info(logCtx, "no enabled repositories for data source")
		return s.deps.runs.FinishRun(ctx, rc.RunID, 0)
	}

	source, err := s.deps.githubSource(ctx, rc.Env)
	if err != nil {
		return errs.Wrap(err, "build github client")
	}

	window := importWindow{start: rc.StartDate, end: rc.EndDate}
	resolver := contributorResolver{store: s.deps.store}

	total := 0
	for _, repo := range repositories {
		imported, repoErr := s.importRepository(logCtx, rc, source, resolver, repo, window)
		total += imported
		if repoErr != nil {
			logging.Error(logCtx, "repository import failed",
				slog.String("repository", repo.FullName),
				slog.Any("err", errs.Loggable(repoErr)),
			)
			s.deps.logContainerError(logCtx, rc.RunID, fmt.Sprintf("import issues for %s failed", repo.FullName), repoErr)
		}
	}

	logging.Info(logCtx, "issue import finished", slog.Int("records_imported", total))
	return s.deps.runs.FinishRun(ctx, rc.RunID, total)
}

func (s *githubIssuesScript) importRepository(
	ctx context.Context,
	rc RunContext,
	source GitHubSource,
	resolver contributorResolver,
	repo ports.Repository,
	window importWindow,
) (int, error) {
	if repo.ProjectID == nil {
		return 0, fmt.Errorf("project not found for repository %s", repo.FullName)
	}
	owner, name, err := splitFullName(repo.FullName)
	if err != nil {
		return 0, err
	}
	projectID := *repo.ProjectID

	count := 0
	err = source.ForEachIssuePage(ctx, owner, name, window.start, func(page []*gogithub.Issue) error {
		for _, raw := range page {
			// The issues endpoint also yields pull requests.
			if raw.IsPullRequest() {
				continue
			}
			if !window.contains(raw.GetUpdatedAt().Time) {
				continue
			}

			if recordErr := s.importOne(ctx, resolver, repo.FullName, projectID, raw); recordErr != nil {
				s.deps.logRecordError(ctx, rc.RunID, githubIssueKey(repo.FullName, raw.GetNumber()), recordErr)
				continue
			}
			count++
		}
		return nil
	})
	return count, err
}

func (s *githubIssuesScript) importOne(ctx context.Context, resolver contributorResolver, fullName string, projectID uint64, raw *gogithub.Issue) error {
	return s.deps.uow.WithTx(ctx, func(txCtx context.Context) error {
		reporterID, err := resolver.resolveOptional(txCtx, tracker.ProviderGitHub, githubUser(raw.User))
		if err != nil {
			return err
		}
		assigneeID, err := resolver.resolveOptional(txCtx, tracker.ProviderGitHub, githubUser(raw.Assignee))
		if err != nil {
			return err
		}

		return s.deps.store.UpsertIssue(txCtx, mapGitHubIssue(fullName, raw, projectID, reporterID, assigneeID))
	})
}
