package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/infrastructure/persistence/sqlite/model"
	"devpulse/internal/ports"
)

// MetricsRepository is the read side consumed by the dashboard
// aggregator. All queries are independent snapshot reads.
type MetricsRepository struct {
	db *gorm.DB
}

var _ ports.MetricsReader = (*MetricsRepository)(nil)

func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

func (r *MetricsRepository) CommitsInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]ports.CommitFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Table("commits").
		Select("COALESCE(commits.author_id, 0) AS author_id, repositories.full_name AS repository_name, repositories.language AS language, commits.additions, commits.deletions, commits.authored_at").
		Joins("JOIN repositories ON repositories.repository_id = commits.repository_id").
		Where("commits.authored_at >= ? AND commits.authored_at <= ?", from, to)
	if contributorID != nil {
		query = query.Where("commits.author_id = ?", *contributorID)
	}

	var facts []ports.CommitFact
	if err := query.Order("commits.authored_at asc").Scan(&facts).Error; err != nil {
		return nil, errs.Wrap(err, "query commit facts")
	}
	return facts, nil
}

func (r *MetricsRepository) PullRequestsInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]ports.PullRequestFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.PullRequest{}).Where("created_at >= ? AND created_at <= ?", from, to)
	if contributorID != nil {
		query = query.Where("author_id = ?", *contributorID)
	}

	var rows []model.PullRequest
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query pull request facts")
	}

	facts := make([]ports.PullRequestFact, 0, len(rows))
	for _, row := range rows {
		var author uint64
		if row.AuthorID != nil {
			author = *row.AuthorID
		}
		facts = append(facts, ports.PullRequestFact{
			AuthorID:   author,
			State:      tracker.PullRequestState(row.State),
			Iterations: row.Iterations,
			Additions:  row.Additions,
			Deletions:  row.Deletions,
			CreatedAt:  row.CreatedAt,
			MergedAt:   row.MergedAt,
		})
	}
	return facts, nil
}

func (r *MetricsRepository) ReviewsInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]ports.ReviewFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.PullRequestReview{}).Where("submitted_at >= ? AND submitted_at <= ?", from, to)
	if contributorID != nil {
		query = query.Where("reviewer_id = ?", *contributorID)
	}

	var rows []model.PullRequestReview
	if err := query.Order("submitted_at asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query review facts")
	}

	facts := make([]ports.ReviewFact, 0, len(rows))
	for _, row := range rows {
		var reviewer uint64
		if row.ReviewerID != nil {
			reviewer = *row.ReviewerID
		}
		facts = append(facts, ports.ReviewFact{
			ReviewerID:  reviewer,
			State:       row.State,
			SubmittedAt: row.SubmittedAt,
		})
	}
	return facts, nil
}

func (r *MetricsRepository) IssuesInRange(ctx context.Context, contributorID *uint64, from, to time.Time) ([]ports.IssueFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Issue{}).Where("created_at >= ? AND created_at <= ?", from, to)
	if contributorID != nil {
		query = query.Where("assignee_id = ?", *contributorID)
	}

	var rows []model.Issue
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query issue facts")
	}

	facts := make([]ports.IssueFact, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, ports.IssueFact{
			AssigneeID:  row.AssigneeID,
			Type:        tracker.IssueType(row.Type),
			Status:      tracker.IssueStatus(row.Status),
			Priority:    tracker.IssuePriority(row.Priority),
			StoryPoints: row.StoryPoints,
			CreatedAt:   row.CreatedAt,
			ResolvedAt:  row.ResolvedAt,
		})
	}
	return facts, nil
}

func (r *MetricsRepository) PipelineRunsInRange(ctx context.Context, from, to time.Time) ([]ports.PipelineFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var facts []ports.PipelineFact
	if err := db.Table("pipeline_runs").
		Select("repositories.full_name AS repository_name, pipeline_runs.status, pipeline_runs.duration_seconds, pipeline_runs.started_at").
		Joins("JOIN repositories ON repositories.repository_id = pipeline_runs.repository_id").
		Where("pipeline_runs.started_at >= ? AND pipeline_runs.started_at <= ?", from, to).
		Order("pipeline_runs.started_at asc").
		Scan(&facts).Error; err != nil {
		return nil, errs.Wrap(err, "query pipeline facts")
	}
	return facts, nil
}

func (r *MetricsRepository) ContributionDates(ctx context.Context, contributorID uint64) ([]time.Time, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var days []string
	if err := db.Table("commits").
		Distinct("date(authored_at) AS day").
		Where("author_id = ?", contributorID).
		Order("day desc").
		Pluck("day", &days).Error; err != nil {
		return nil, errs.Wrap(err, "query contribution dates")
	}

	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		parsed, parseErr := time.ParseInLocation("2006-01-02", day, time.UTC)
		if parseErr != nil {
			return nil, errs.Wrapf(parseErr, "parse contribution day %q", day)
		}
		dates = append(dates, parsed)
	}
	return dates, nil
}

func (r *MetricsRepository) LifetimeStats(ctx context.Context, contributorID uint64) (ports.LifetimeStats, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.LifetimeStats{}, err
	}

	var stats ports.LifetimeStats

	var commits int64
	if err := db.Model(&model.Commit{}).Where("author_id = ?", contributorID).Count(&commits).Error; err != nil {
		return ports.LifetimeStats{}, errs.Wrap(err, "count commits")
	}
	stats.TotalCommits = int(commits)

	var reviews int64
	if err := db.Model(&model.PullRequestReview{}).Where("reviewer_id = ?", contributorID).Count(&reviews).Error; err != nil {
		return ports.LifetimeStats{}, errs.Wrap(err, "count reviews")
	}
	stats.TotalReviews = int(reviews)

	var merged int64
	if err := db.Model(&model.PullRequest{}).
		Where("author_id = ? AND state = ?", contributorID, string(tracker.PullRequestMerged)).
		Count(&merged).Error; err != nil {
		return ports.LifetimeStats{}, errs.Wrap(err, "count merged pull requests")
	}
	stats.HasMergedPullRequest = merged > 0

	return stats, nil
}

func (r *MetricsRepository) LatestScans(ctx context.Context, asOf time.Time) ([]ports.ScanFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	// Latest scan per repository as of the window end, not an average of
	// all scans.
	var facts []ports.ScanFact
	if err := db.Raw(`
		SELECT qs.repository_id,
		       r.full_name AS repository_name,
		       qs.coverage,
		       qs.new_code_coverage,
		       qs.bugs,
		       qs.code_smells,
		       qs.scanned_at
		FROM quality_scans qs
		JOIN (
			SELECT repository_id, MAX(scanned_at) AS max_scanned_at
			FROM quality_scans
			WHERE scanned_at <= ?
			GROUP BY repository_id
		) latest ON latest.repository_id = qs.repository_id AND latest.max_scanned_at = qs.scanned_at
		JOIN repositories r ON r.repository_id = qs.repository_id
		ORDER BY r.full_name`, asOf).Scan(&facts).Error; err != nil {
		return nil, errs.Wrap(err, "query latest scans")
	}
	return facts, nil
}

func (r *MetricsRepository) OpenVulnerabilities(ctx context.Context, asOf time.Time) ([]ports.VulnerabilityFact, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.SecurityVulnerability
	if err := db.Where("status = ? AND detected_at <= ?", "OPEN", asOf).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query open vulnerabilities")
	}

	facts := make([]ports.VulnerabilityFact, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, ports.VulnerabilityFact{
			Severity:   tracker.Severity(row.Severity),
			Status:     row.Status,
			DetectedAt: row.DetectedAt,
		})
	}
	return facts, nil
}

func (r *MetricsRepository) GetContributor(ctx context.Context, contributorID uint64) (ports.Contributor, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.Contributor{}, err
	}

	var row model.Contributor
	if err := db.Where("contributor_id = ?", contributorID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Contributor{}, ports.ErrContributorNotFound
		}
		return ports.Contributor{}, errs.Wrap(err, "query contributor")
	}

	return ports.Contributor{
		ID:        row.ContributorID,
		Provider:  tracker.Provider(row.Provider),
		Email:     row.Email,
		Name:      row.Name,
		AvatarURL: row.AvatarURL,
	}, nil
}
