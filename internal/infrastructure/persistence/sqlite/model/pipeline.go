package model

import "time"

type PipelineRun struct {
	PipelineRunID   uint64    `gorm:"column:pipeline_run_id;primaryKey;autoIncrement"`
	RepositoryID    uint64    `gorm:"column:repository_id;not null;index"`
	Provider        string    `gorm:"column:provider;type:text;not null;uniqueIndex:idx_pipeline_runs_provider_ext"`
	ExternalID      string    `gorm:"column:external_id;type:text;not null;uniqueIndex:idx_pipeline_runs_provider_ext"`
	Status          string    `gorm:"column:status;type:text;not null"`
	DurationSeconds int       `gorm:"column:duration_seconds;not null;default:0"`
	StartedAt       time.Time `gorm:"column:started_at;not null;index"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}

type PipelineStage struct {
	PipelineStageID uint64 `gorm:"column:pipeline_stage_id;primaryKey;autoIncrement"`
	PipelineRunID   uint64 `gorm:"column:pipeline_run_id;not null;index"`
	Name            string `gorm:"column:name;type:text;not null"`
	Status          string `gorm:"column:status;type:text;not null"`
}

func (PipelineStage) TableName() string {
	return "pipeline_stages"
}
