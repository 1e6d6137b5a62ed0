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

// githubCommitsScript imports commits per repository. The listing
// endpoint already filters by the since/until window, so the local
// window check only guards boundary drift between list and hydrate.
type githubCommitsScript struct {
	deps scriptDeps
}

func (s *githubCommitsScript) DataSourceName() string { return string(tracker.ProviderGitHub) }
func (s *githubCommitsScript) Resource() string       { return ResourceCommit }
func (s *githubCommitsScript) ImportWindowDays() int  { return defaultWindowDays }

func (s *githubCommitsScript) DependsOn() []string {
	return []string{ResourceRepository, ResourceContributor}
}

func (s *githubCommitsScript) Run(ctx context.Context, rc RunContext) error {
	logCtx := logging.WithAttrs(ctx,
		slog.String("script", "github.commit"),
		slog.String("run_id", rc.RunID),
	)

	repositories, err := s.deps.catalog.ListRepositories(ctx, rc.DataSourceID, true)
	if err != nil {
		return errs.Wrap(err, "list repositories")
	}
	if len(repositories) == 0 {
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
			s.deps.logContainerError(logCtx, rc.RunID, fmt.Sprintf("import commits for %s failed", repo.FullName), repoErr)
		}
	}

	logging.Info(logCtx, "commit import finished", slog.Int("records_imported", total))
	return s.deps.runs.FinishRun(ctx, rc.RunID, total)
}

func (s *githubCommitsScript) importRepository(
	ctx context.Context,
	rc RunContext,
	source GitHubSource,
	resolver contributorResolver,
	repo ports.Repository,
	window importWindow,
) (int, error) {
	owner, name, err := splitFullName(repo.FullName)
	if err != nil {
		return 0, err
	}

	count := 0
	err = source.ForEachCommitPage(ctx, owner, name, window.start, window.end, func(page []*gogithub.RepositoryCommit) error {
		for _, raw := range page {
			authoredAt := raw.GetCommit().GetAuthor().GetDate().Time
			if !window.contains(authoredAt) {
				continue
			}

			if recordErr := s.importOne(ctx, resolver, repo.ID, raw); recordErr != nil {
				s.deps.logRecordError(ctx, rc.RunID, raw.GetSHA(), recordErr)
				continue
			}
			count++
		}
		return nil
	})
	return count, err
}

func (s *githubCommitsScript) importOne(ctx context.Context, resolver contributorResolver, repositoryID uint64, raw *gogithub.RepositoryCommit) error {
	return s.deps.uow.WithTx(ctx, func(txCtx context.Context) error {
		authorID, err := resolver.resolveOptional(txCtx, tracker.ProviderGitHub, githubCommitAuthor(raw))
		if err != nil {
			return err
		}

		return s.deps.store.UpsertCommit(txCtx, ports.CommitRecord{
			RepositoryID: repositoryID,
			SHA:          raw.GetSHA(),
			AuthorID:     authorID,
			Message:      raw.GetCommit().GetMessage(),
			Additions:    raw.GetStats().GetAdditions(),
			Deletions:    raw.GetStats().GetDeletions(),
			AuthoredAt:   raw.GetCommit().GetAuthor().GetDate().Time,
		})
	})
}
