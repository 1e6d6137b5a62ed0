package model

import "time"

type Issue struct {
	IssueID     uint64     `gorm:"column:issue_id;primaryKey;autoIncrement"`
	Key         string     `gorm:"column:key;type:text;not null;uniqueIndex"`
	ProjectID   uint64     `gorm:"column:project_id;not null;index"`
	Title       string     `gorm:"column:title;type:text;not null"`
	Description *string    `gorm:"column:description;type:text"`
	Type        string     `gorm:"column:type;type:text;not null"`
	Status      string     `gorm:"column:status;type:text;not null"`
	Priority    string     `gorm:"column:priority;type:text;not null"`
	ReporterID  *uint64    `gorm:"column:reporter_id;index"`
	AssigneeID  *uint64    `gorm:"column:assignee_id;index"`
	BoardID     *string    `gorm:"column:board_id;type:text"`
	SprintID    *string    `gorm:"column:sprint_id;type:text"`
	StoryPoints *float64   `gorm:"column:story_points"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
}

func (Issue) TableName() string {
	return "issues"
}
