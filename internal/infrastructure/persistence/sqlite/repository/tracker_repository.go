package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/infrastructure/persistence/sqlite/model"
	"devpulse/internal/ports"
)

var ErrPullRequestNotFound = errors.New("pull request not found")

// TrackerRepository is the write side of the normalized store.
type TrackerRepository struct {
	db *gorm.DB
}

var _ ports.TrackerRepository = (*TrackerRepository)(nil)

func NewTrackerRepository(db *gorm.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

func (r *TrackerRepository) UpsertContributor(ctx context.Context, upsert ports.ContributorUpsert) (ports.Contributor, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.Contributor{}, err
	}

	email := strings.TrimSpace(upsert.Email)
	if email == "" {
		return ports.Contributor{}, errors.New("contributor email is required")
	}

	row := model.Contributor{
		Provider:  string(upsert.Provider),
		Email:     email,
		Name:      upsert.Name,
		AvatarURL: upsert.AvatarURL,
	}

	// Display name and avatar may legitimately change upstream; the
	// (provider, email) key never does.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "email"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       row.Name,
			"avatar_url": row.AvatarURL,
		}),
	}).Create(&row).Error; err != nil {
		return ports.Contributor{}, errs.Wrap(err, "upsert contributor")
	}

	var saved model.Contributor
	if err := db.Where("provider = ? AND email = ?", row.Provider, row.Email).Take(&saved).Error; err != nil {
		return ports.Contributor{}, errs.Wrap(err, "reload contributor")
	}

	return ports.Contributor{
		ID:        saved.ContributorID,
		Provider:  tracker.Provider(saved.Provider),
		Email:     saved.Email,
		Name:      saved.Name,
		AvatarURL: saved.AvatarURL,
	}, nil
}

func (r *TrackerRepository) UpsertIssue(ctx context.Context, record ports.IssueRecord) error {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return err
	}

	if strings.TrimSpace(record.Key) == "" {
		return errors.New("issue key is required")
	}

	row := model.Issue{
		Key:         record.Key,
		ProjectID:   record.ProjectID,
		Title:       record.Title,
		Description: record.Description,
		Type:        string(record.Type),
		Status:      string(record.Status),
		Priority:    string(record.Priority),
		ReporterID:  record.ReporterID,
		AssigneeID:  record.AssigneeID,
		BoardID:     record.BoardID,
		SprintID:    record.SprintID,
		StoryPoints: record.StoryPoints,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		ResolvedAt:  record.ResolvedAt,
	}

	// The update branch refreshes mutable fields only; key, project and
	// creation metadata stay as first imported.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":        row.Title,
			"description":  row.Description,
			"type":         row.Type,
			"status":       row.Status,
			"priority":     row.Priority,
			"assignee_id":  row.AssigneeID,
			"board_id":     row.BoardID,
			"sprint_id":    row.SprintID,
			"story_points": row.StoryPoints,
			"updated_at":   row.UpdatedAt,
			"resolved_at":  row.ResolvedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrapf(err, "upsert issue %s", record.Key)
	}
	return nil
}

func (r *TrackerRepository) UpsertCommit(ctx context.Context, record ports.CommitRecord) error {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return err
	}

	if strings.TrimSpace(record.SHA) == "" {
		return errors.New("commit sha is required")
	}

	row := model.Commit{
		RepositoryID: record.RepositoryID,
		SHA:          record.SHA,
		AuthorID:     record.AuthorID,
		Message:      record.Message,
		Additions:    record.Additions,
		Deletions:    record.Deletions,
		AuthoredAt:   record.AuthoredAt,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "repository_id"}, {Name: "sha"}},
		DoUpdates: clause.Assignments(map[string]any{
			"author_id":   row.AuthorID,
			"message":     row.Message,
			"additions":   row.Additions,
			"deletions":   row.Deletions,
			"authored_at": row.AuthoredAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrapf(err, "upsert commit %s", record.SHA)
	}
	return nil
}

func (r *TrackerRepository) UpsertPullRequest(ctx context.Context, record ports.PullRequestRecord) error {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return err
	}

	if strings.TrimSpace(record.Key) == "" {
		return errors.New("pull request key is required")
	}

	row := model.PullRequest{
		Key:          record.Key,
		RepositoryID: record.RepositoryID,
		Number:       record.Number,
		Title:        record.Title,
		AuthorID:     record.AuthorID,
		State:        string(record.State),
		Iterations:   record.Iterations,
		Additions:    record.Additions,
		Deletions:    record.Deletions,
		CreatedAt:    record.CreatedAt,
		MergedAt:     record.MergedAt,
		ClosedAt:     record.ClosedAt,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":      row.Title,
			"author_id":  row.AuthorID,
			"state":      row.State,
			"iterations": row.Iterations,
			"additions":  row.Additions,
			"deletions":  row.Deletions,
			"merged_at":  row.MergedAt,
			"closed_at":  row.ClosedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrapf(err, "upsert pull request %s", record.Key)
	}
	return nil
}

func (r *TrackerRepository) UpsertReview(ctx context.Context, record ports.ReviewRecord) error {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return err
	}

	var pr model.PullRequest
	if err := db.Where("key = ?", record.PullRequestKey).Take(&pr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPullRequestNotFound
		}
		return errs.Wrap(err, "query pull request for review")
	}

	row := model.PullRequestReview{
		PullRequestID:    pr.PullRequestID,
		ProviderReviewID: record.ProviderReviewID,
		ReviewerID:       record.ReviewerID,
		State:            record.State,
		SubmittedAt:      record.SubmittedAt,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pull_request_id"}, {Name: "provider_review_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"reviewer_id":  row.ReviewerID,
			"state":        row.State,
			"submitted_at": row.SubmittedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrapf(err, "upsert review %d", record.ProviderReviewID)
	}
	return nil
}
