package model

import "time"

type PullRequest struct {
	PullRequestID uint64     `gorm:"column:pull_request_id;primaryKey;autoIncrement"`
	Key           string     `gorm:"column:key;type:text;not null;uniqueIndex"`
	RepositoryID  uint64     `gorm:"column:repository_id;not null;index"`
	Number        int        `gorm:"column:number;not null"`
	Title         string     `gorm:"column:title;type:text;not null"`
	AuthorID      *uint64    `gorm:"column:author_id;index"`
	State         string     `gorm:"column:state;type:text;not null"`
	Iterations    int        `gorm:"column:iterations;not null;default:0"`
	Additions     int        `gorm:"column:additions;not null;default:0"`
	Deletions     int        `gorm:"column:deletions;not null;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;index"`
	MergedAt      *time.Time `gorm:"column:merged_at"`
	ClosedAt      *time.Time `gorm:"column:closed_at"`
}

func (PullRequest) TableName() string {
	return "pull_requests"
}

type PullRequestReview struct {
	ReviewID         uint64    `gorm:"column:review_id;primaryKey;autoIncrement"`
	PullRequestID    uint64    `gorm:"column:pull_request_id;not null;uniqueIndex:idx_reviews_pr_provider;index"`
	ProviderReviewID int64     `gorm:"column:provider_review_id;not null;uniqueIndex:idx_reviews_pr_provider"`
	ReviewerID       *uint64   `gorm:"column:reviewer_id;index"`
	State            string    `gorm:"column:state;type:text;not null;default:''"`
	SubmittedAt      time.Time `gorm:"column:submitted_at;not null;index"`
}

func (PullRequestReview) TableName() string {
	return "pull_request_reviews"
}
