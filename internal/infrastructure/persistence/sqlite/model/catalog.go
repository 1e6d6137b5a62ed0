package model

type Project struct {
	ProjectID    uint64 `gorm:"column:project_id;primaryKey;autoIncrement"`
	DataSourceID string `gorm:"column:data_source_id;type:text;not null;index"`
	Provider     string `gorm:"column:provider;type:text;not null;uniqueIndex:idx_projects_provider_key"`
	Key          string `gorm:"column:key;type:text;not null;uniqueIndex:idx_projects_provider_key"`
	Name         string `gorm:"column:name;type:text;not null"`
	Enabled      bool   `gorm:"column:enabled;not null;default:1"`
}

func (Project) TableName() string {
	return "projects"
}

type Repository struct {
	RepositoryID uint64  `gorm:"column:repository_id;primaryKey;autoIncrement"`
	DataSourceID string  `gorm:"column:data_source_id;type:text;not null;index"`
	Provider     string  `gorm:"column:provider;type:text;not null;uniqueIndex:idx_repositories_provider_name"`
	FullName     string  `gorm:"column:full_name;type:text;not null;uniqueIndex:idx_repositories_provider_name"`
	Language     string  `gorm:"column:language;type:text;not null;default:''"`
	ProjectID    *uint64 `gorm:"column:project_id"`
	Enabled      bool    `gorm:"column:enabled;not null;default:1"`
}

func (Repository) TableName() string {
	return "repositories"
}
