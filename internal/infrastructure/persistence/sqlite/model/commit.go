package model

import "time"

type Commit struct {
	CommitID     uint64    `gorm:"column:commit_id;primaryKey;autoIncrement"`
	RepositoryID uint64    `gorm:"column:repository_id;not null;uniqueIndex:idx_commits_repo_sha;index"`
	SHA          string    `gorm:"column:sha;type:text;not null;uniqueIndex:idx_commits_repo_sha"`
	AuthorID     *uint64   `gorm:"column:author_id;index"`
	Message      string    `gorm:"column:message;type:text;not null;default:''"`
	Additions    int       `gorm:"column:additions;not null;default:0"`
	Deletions    int       `gorm:"column:deletions;not null;default:0"`
	AuthoredAt   time.Time `gorm:"column:authored_at;not null;index"`
}

func (Commit) TableName() string {
	return "commits"
}
