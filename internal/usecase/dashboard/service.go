package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/ports"
)

const responseCacheTTL = 5 * time.Minute

// Service composes the aggregation functions into the dashboard
// responses. Responses are cached briefly; the cache is best-effort and
// a broken cache never fails a request.
type Service struct {
	reader ports.MetricsReader
	cache  ports.Cache
}

func NewService(reader ports.MetricsReader, cache ports.Cache) *Service {
	return &Service{reader: reader, cache: cache}
}

type ContributorDashboardInput struct {
	ContributorID uint64
	From          time.Time
	To            time.Time
}

type OrgDashboardInput struct {
	From time.Time
	To   time.Time
}

// previousWindow is the equal-length window immediately before
// [from, to]; trends compare against it.
func previousWindow(from, to time.Time) (time.Time, time.Time) {
	return from.Add(-to.Sub(from)), from
}

func (s *Service) ContributorDashboard(ctx context.Context, input ContributorDashboardInput) (ContributorDashboard, error) {
	if ctx == nil {
		return ContributorDashboard{}, errors.New("context is required")
	}

	cacheKey := fmt.Sprintf("dashboard:contributor:%d:%d:%d", input.ContributorID, input.From.Unix(), input.To.Unix())
	var cached ContributorDashboard
	if s.readCached(ctx, cacheKey, &cached) {
		return cached, nil
	}

	contributor, err := s.reader.GetContributor(ctx, input.ContributorID)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "get contributor")
	}

	id := input.ContributorID
	prevFrom, prevTo := previousWindow(input.From, input.To)

	commits, err := s.reader.CommitsInRange(ctx, &id, input.From, input.To)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load commits")
	}
	prevCommits, err := s.reader.CommitsInRange(ctx, &id, prevFrom, prevTo)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load previous commits")
	}
	pulls, err := s.reader.PullRequestsInRange(ctx, &id, input.From, input.To)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load pull requests")
	}
	prevPulls, err := s.reader.PullRequestsInRange(ctx, &id, prevFrom, prevTo)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load previous pull requests")
	}
	reviews, err := s.reader.ReviewsInRange(ctx, &id, input.From, input.To)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load reviews")
	}
	prevReviews, err := s.reader.ReviewsInRange(ctx, &id, prevFrom, prevTo)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load previous reviews")
	}
	contributionDates, err := s.reader.ContributionDates(ctx, id)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load contribution dates")
	}
	lifetime, err := s.reader.LifetimeStats(ctx, id)
	if err != nil {
		return ContributorDashboard{}, errs.Wrap(err, "load lifetime stats")
	}

	streak := calcStreaks(contributionDates, time.Now())

	commitTimestamps := make([]time.Time, 0, len(commits))
	for _, commit := range commits {
		commitTimestamps = append(commitTimestamps, commit.AuthoredAt)
	}

	response := ContributorDashboard{
		ContributorID: contributor.ID,
		Name:          contributor.Name,
		AvatarURL:     contributor.AvatarURL,
		Commits:       commitMetrics(commits, prevCommits, input.From, input.To),
		PullRequests:  pullRequestMetrics(pulls, prevPulls),
		Reviews:       reviewMetrics(reviews, prevReviews),
		Streak:        streak,
		Achievements: earnedAchievements(achievementStats{
			TotalCommits:         lifetime.TotalCommits,
			TotalReviews:         lifetime.TotalReviews,
			HasMergedPullRequest: lifetime.HasMergedPullRequest,
			LongestStreak:        streak.LongestStreak,
		}),
		Heatmap:       heatmap(input.From, input.To, commitTimestamps),
		Distributions: commitDistributions(commits),
	}

	s.writeCached(ctx, cacheKey, response)
	return response, nil
}

func (s *Service) OrgDashboard(ctx context.Context, input OrgDashboardInput) (OrgDashboard, error) {
	if ctx == nil {
		return OrgDashboard{}, errors.New("context is required")
	}

	cacheKey := fmt.Sprintf("dashboard:org:%d:%d", input.From.Unix(), input.To.Unix())
	var cached OrgDashboard
	if s.readCached(ctx, cacheKey, &cached) {
		return cached, nil
	}

	prevFrom, prevTo := previousWindow(input.From, input.To)

	commits, err := s.reader.CommitsInRange(ctx, nil, input.From, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load commits")
	}
	prevCommits, err := s.reader.CommitsInRange(ctx, nil, prevFrom, prevTo)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load previous commits")
	}
	pulls, err := s.reader.PullRequestsInRange(ctx, nil, input.From, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load pull requests")
	}
	prevPulls, err := s.reader.PullRequestsInRange(ctx, nil, prevFrom, prevTo)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load previous pull requests")
	}
	reviews, err := s.reader.ReviewsInRange(ctx, nil, input.From, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load reviews")
	}
	issues, err := s.reader.IssuesInRange(ctx, nil, input.From, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load issues")
	}
	pipelineRuns, err := s.reader.PipelineRunsInRange(ctx, input.From, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load pipeline runs")
	}
	scans, err := s.reader.LatestScans(ctx, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load quality scans")
	}
	vulnerabilities, err := s.reader.OpenVulnerabilities(ctx, input.To)
	if err != nil {
		return OrgDashboard{}, errs.Wrap(err, "load vulnerabilities")
	}

	response := OrgDashboard{
		Overview:    overviewMetrics(commits, prevCommits, pulls, prevPulls, reviews, issues),
		Delivery:    deliveryMetrics(issues),
		Operational: operationalMetrics(pipelineRuns),
		Quality:     qualityMetrics(scans, vulnerabilities),
	}

	s.writeCached(ctx, cacheKey, response)
	return response, nil
}

func (s *Service) readCached(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}
	value, found, err := s.cache.Get(ctx, key)
	if err != nil {
		logging.Warn(ctx, "dashboard cache read failed", slog.Any("err", errs.Loggable(err)))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		logging.Warn(ctx, "dashboard cache entry corrupt", slog.String("key", key))
		return false
	}
	return true
}

func (s *Service) writeCached(ctx context.Context, key string, response any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), responseCacheTTL); err != nil {
		logging.Warn(ctx, "dashboard cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}
