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

// githubPullsScript imports pull requests and their reviews per
// repository. Reviews ride along with their pull request so iteration
// counts and review rows land in the same transaction.
type githubPullsScript struct {
	deps scriptDeps
}

func (s *githubPullsScript) DataSourceName() string { return string(tracker.ProviderGitHub) }
func (s *githubPullsScript) Resource() string       { return ResourcePullRequest }
func (s *githubPullsScript) ImportWindowDays() int  { return defaultWindowDays }

func (s *githubPullsScript) DependsOn() []string {
	return []string{ResourceRepository, ResourceContributor}
}

func (s *githubPullsScript) Run(ctx context.Context, rc RunContext) error {
	logCtx := logging.WithAttrs(ctx,
		slog.String("script", "github.pull_request"),
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
			s.deps.logContainerError(logCtx, rc.RunID, fmt.Sprintf("import pull requests for %s failed", repo.FullName), repoErr)
		}
	}

	logging.Info(logCtx, "pull request import finished", slog.Int("records_imported", total))
	return s.deps.runs.FinishRun(ctx, rc.RunID, total)
}

func (s *githubPullsScript) importRepository(
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
	err = source.ForEachPullPage(ctx, owner, name, func(page []*gogithub.PullRequest) error {
		for _, raw := range page {
			if !window.contains(raw.GetUpdatedAt().Time) {
				continue
			}

			reviews, reviewErr := source.ListReviews(ctx, owner, name, raw.GetNumber())
			if reviewErr != nil {
				s.deps.logRecordError(ctx, rc.RunID, githubPullKey(repo.FullName, raw.GetNumber()), errs.Wrap(reviewErr, "list reviews"))
				continue
			}

			if recordErr := s.importOne(ctx, resolver, repo, raw, reviews); recordErr != nil {
				s.deps.logRecordError(ctx, rc.RunID, githubPullKey(repo.FullName, raw.GetNumber()), recordErr)
				continue
			}
			count++
		}
		return nil
	})
	return count, err
}

func (s *githubPullsScript) importOne(
	ctx context.Context,
	resolver contributorResolver,
	repo ports.Repository,
	raw *gogithub.PullRequest,
	reviews []*gogithub.PullRequestReview,
) error {
	return s.deps.uow.WithTx(ctx, func(txCtx context.Context) error {
		authorID, err := resolver.resolveOptional(txCtx, tracker.ProviderGitHub, githubUser(raw.User))
		if err != nil {
			return err
		}

		record := mapGitHubPull(repo.FullName, raw, repo.ID, authorID, reviewIterations(reviews))
		if err := s.deps.store.UpsertPullRequest(txCtx, record); err != nil {
			return err
		}

		for _, review := range reviews {
			if review.GetSubmittedAt().IsZero() {
				// Pending reviews have no submission timestamp yet.
				continue
			}
			reviewerID, err := resolver.resolveOptional(txCtx, tracker.ProviderGitHub, githubUser(review.User))
			if err != nil {
				return err
			}
			err = s.deps.store.UpsertReview(txCtx, ports.ReviewRecord{
				PullRequestKey:   record.Key,
				ProviderReviewID: review.GetID(),
				ReviewerID:       reviewerID,
				State:            review.GetState(),
				SubmittedAt:      review.GetSubmittedAt().Time,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
