package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/errs"
	"devpulse/internal/infrastructure/persistence/sqlite/model"
	"devpulse/internal/ports"
)

type RunRepository struct {
	db *gorm.DB
}

var _ ports.RunRepository = (*RunRepository)(nil)

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) CreateRun(ctx context.Context, dataSourceID, resource string) (ports.DataSourceRun, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.DataSourceRun{}, err
	}

	if strings.TrimSpace(dataSourceID) == "" {
		return ports.DataSourceRun{}, errors.New("data source id is required")
	}
	if strings.TrimSpace(resource) == "" {
		return ports.DataSourceRun{}, errors.New("resource is required")
	}

	row := model.DataSourceRun{
		ID:           uuid.NewString(),
		DataSourceID: dataSourceID,
		Resource:     resource,
		StartedAt:    time.Now().UTC(),
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.DataSourceRun{}, errs.Wrap(err, "create data source run")
	}

	return mapRun(row), nil
}

func (r *RunRepository) FinishRun(ctx context.Context, runID string, recordsImported int) error {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result := db.Model(&model.DataSourceRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"records_imported": recordsImported,
			"finished_at":      now,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "finish data source run")
	}
	if result.RowsAffected == 0 {
		return ports.ErrRunNotFound
	}
	return nil
}

func (r *RunRepository) GetRun(ctx context.Context, runID string) (ports.DataSourceRun, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return ports.DataSourceRun{}, err
	}

	var row model.DataSourceRun
	if err := db.Where("id = ?", runID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DataSourceRun{}, ports.ErrRunNotFound
		}
		return ports.DataSourceRun{}, errs.Wrap(err, "query data source run")
	}
	return mapRun(row), nil
}

func (r *RunRepository) AppendLog(ctx context.Context, entry ports.ImportLogEntry) error {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.ImportLog{
		RunID:     entry.RunID,
		Level:     string(entry.Level),
		Message:   entry.Message,
		Details:   entry.Details,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "append import log")
	}
	return nil
}

func (r *RunRepository) ListLogs(ctx context.Context, runID string) ([]ports.ImportLogEntry, error) {
	db, err := dbFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.ImportLog
	if err := db.Where("run_id = ?", runID).Order("log_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query import logs")
	}

	items := make([]ports.ImportLogEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.ImportLogEntry{
			RunID:   row.RunID,
			Level:   tracker.LogLevel(row.Level),
			Message: row.Message,
			Details: row.Details,
		})
	}
	return items, nil
}

func mapRun(row model.DataSourceRun) ports.DataSourceRun {
	return ports.DataSourceRun{
		ID:              row.ID,
		DataSourceID:    row.DataSourceID,
		Resource:        row.Resource,
		StartedAt:       row.StartedAt,
		FinishedAt:      row.FinishedAt,
		RecordsImported: row.RecordsImported,
	}
}
