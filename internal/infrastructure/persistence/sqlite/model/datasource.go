package model

import "time"

type DataSource struct {
	ID       string `gorm:"column:id;primaryKey"`
	Provider string `gorm:"column:provider;type:text;not null;index"`
	Name     string `gorm:"column:name;type:text;not null;uniqueIndex"`
	EnvJSON  string `gorm:"column:env_json;type:text;not null;default:'{}'"`
	Enabled  bool   `gorm:"column:enabled;not null;default:1"`
}

func (DataSource) TableName() string {
	return "data_sources"
}

type DataSourceRun struct {
	ID              string     `gorm:"column:id;primaryKey"`
	DataSourceID    string     `gorm:"column:data_source_id;type:text;not null;index"`
	Resource        string     `gorm:"column:resource;type:text;not null"`
	StartedAt       time.Time  `gorm:"column:started_at;not null"`
	FinishedAt      *time.Time `gorm:"column:finished_at"`
	RecordsImported int        `gorm:"column:records_imported;not null;default:0"`
}

func (DataSourceRun) TableName() string {
	return "data_source_runs"
}

type ImportLog struct {
	LogID     uint64    `gorm:"column:log_id;primaryKey;autoIncrement"`
	RunID     string    `gorm:"column:run_id;type:text;not null;index"`
	Level     string    `gorm:"column:level;type:text;not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Details   string    `gorm:"column:details;type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (ImportLog) TableName() string {
	return "import_logs"
}
