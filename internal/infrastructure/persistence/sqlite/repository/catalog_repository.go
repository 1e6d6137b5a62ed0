package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/infrastructure/persistence/sqlite/model"
	"devpulse/internal/ports"
)

type CatalogRepository struct {
	db *gorm.DB
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetDataSource(ctx context.Context, id string) (ports.DataSource, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.DataSource{}, err
	}

	var row model.DataSource
	if err := db.Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DataSource{}, ports.ErrDataSourceNotFound
		}
		return ports.DataSource{}, errs.Wrap(err, "query data source")
	}
	return mapDataSource(row)
}

func (r *CatalogRepository) ListDataSources(ctx context.Context, enabledOnly bool) ([]ports.DataSource, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.DataSource{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var rows []model.DataSource
	if err := query.Order("name asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query data sources")
	}

	items := make([]ports.DataSource, 0, len(rows))
	for _, row := range rows {
		item, mapErr := mapDataSource(row)
		if mapErr != nil {
			return nil, mapErr
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *CatalogRepository) UpsertDataSource(ctx context.Context, source ports.DataSource) (ports.DataSource, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.DataSource{}, err
	}

	name := strings.TrimSpace(source.Name)
	if name == "" {
		return ports.DataSource{}, errors.New("data source name is required")
	}

	envJSON := "{}"
	if len(source.Env) > 0 {
		raw, marshalErr := json.Marshal(source.Env)
		if marshalErr != nil {
			return ports.DataSource{}, errs.Wrap(marshalErr, "encode data source env")
		}
		envJSON = string(raw)
	}

	row := model.DataSource{
		ID:       source.ID,
		Provider: string(source.Provider),
		Name:     name,
		EnvJSON:  envJSON,
		Enabled:  source.Enabled,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"provider": row.Provider,
			"env_json": row.EnvJSON,
			"enabled":  row.Enabled,
		}),
	}).Create(&row).Error; err != nil {
		return ports.DataSource{}, errs.Wrap(err, "upsert data source")
	}

	var saved model.DataSource
	if err := db.Where("name = ?", name).Take(&saved).Error; err != nil {
		return ports.DataSource{}, errs.Wrap(err, "reload data source")
	}
	return mapDataSource(saved)
}

func (r *CatalogRepository) ListProjects(ctx context.Context, dataSourceID string, enabledOnly bool) ([]ports.Project, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Project{}).Where("data_source_id = ?", dataSourceID)
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var rows []model.Project
	if err := query.Order("project_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query projects")
	}

	items := make([]ports.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapProject(row))
	}
	return items, nil
}

func (r *CatalogRepository) GetProjectByKey(ctx context.Context, provider tracker.Provider, key string) (ports.Project, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.Project{}, err
	}

	var row model.Project
	if err := db.Where("provider = ? AND key = ?", string(provider), key).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, ports.ErrProjectNotFound
		}
		return ports.Project{}, errs.Wrap(err, "query project by key")
	}
	return mapProject(row), nil
}

func (r *CatalogRepository) UpsertProject(ctx context.Context, project ports.Project) (ports.Project, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.Project{}, err
	}

	row := model.Project{
		DataSourceID: project.DataSourceID,
		Provider:     string(project.Provider),
		Key:          project.Key,
		Name:         project.Name,
		Enabled:      project.Enabled,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"data_source_id": row.DataSourceID,
			"name":           row.Name,
			"enabled":        row.Enabled,
		}),
	}).Create(&row).Error; err != nil {
		return ports.Project{}, errs.Wrap(err, "upsert project")
	}

	var saved model.Project
	if err := db.Where("provider = ? AND key = ?", row.Provider, row.Key).Take(&saved).Error; err != nil {
		return ports.Project{}, errs.Wrap(err, "reload project")
	}
	return mapProject(saved), nil
}

func (r *CatalogRepository) ListRepositories(ctx context.Context, dataSourceID string, enabledOnly bool) ([]ports.Repository, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Repository{}).Where("data_source_id = ?", dataSourceID)
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var rows []model.Repository
	if err := query.Order("repository_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query repositories")
	}

	items := make([]ports.Repository, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapRepository(row))
	}
	return items, nil
}

func (r *CatalogRepository) GetRepositoryByFullName(ctx context.Context, provider tracker.Provider, fullName string) (ports.Repository, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.Repository{}, err
	}

	var row model.Repository
	if err := db.Where("provider = ? AND full_name = ?", string(provider), fullName).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Repository{}, ports.ErrRepositoryNotFound
		}
		return ports.Repository{}, errs.Wrap(err, "query repository by full name")
	}
	return mapRepository(row), nil
}

func (r *CatalogRepository) UpsertRepository(ctx context.Context, repository ports.Repository) (ports.Repository, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.Repository{}, err
	}

	row := model.Repository{
		DataSourceID: repository.DataSourceID,
		Provider:     string(repository.Provider),
		FullName:     repository.FullName,
		Language:     repository.Language,
		ProjectID:    repository.ProjectID,
		Enabled:      repository.Enabled,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "full_name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"data_source_id": row.DataSourceID,
			"language":       row.Language,
			"project_id":     row.ProjectID,
			"enabled":        row.Enabled,
		}),
	}).Create(&row).Error; err != nil {
		return ports.Repository{}, errs.Wrap(err, "upsert repository")
	}

	var saved model.Repository
	if err := db.Where("provider = ? AND full_name = ?", row.Provider, row.FullName).Take(&saved).Error; err != nil {
		return ports.Repository{}, errs.Wrap(err, "reload repository")
	}
	return mapRepository(saved), nil
}

func mapDataSource(row model.DataSource) (ports.DataSource, error) {
	env := map[string]string{}
	if strings.TrimSpace(row.EnvJSON) != "" {
		if err := json.Unmarshal([]byte(row.EnvJSON), &env); err != nil {
			return ports.DataSource{}, errs.Wrapf(err, "decode env for data source %s", row.ID)
		}
	}

	return ports.DataSource{
		ID:       row.ID,
		Provider: tracker.Provider(row.Provider),
		Name:     row.Name,
		Env:      env,
		Enabled:  row.Enabled,
	}, nil
}

func mapProject(row model.Project) ports.Project {
	return ports.Project{
		ID:           row.ProjectID,
		DataSourceID: row.DataSourceID,
		Provider:     tracker.Provider(row.Provider),
		Key:          row.Key,
		Name:         row.Name,
		Enabled:      row.Enabled,
	}
}

func mapRepository(row model.Repository) ports.Repository {
	return ports.Repository{
		ID:           row.RepositoryID,
		DataSourceID: row.DataSourceID,
		Provider:     tracker.Provider(row.Provider),
		FullName:     row.FullName,
		Language:     row.Language,
		ProjectID:    row.ProjectID,
		Enabled:      row.Enabled,
	}
}
