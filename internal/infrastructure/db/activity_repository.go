package db

import (
	"context"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type activityRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepository(db *gorm.DB, log *logger.Logger) ports.ActivityRepository {
	return &activityRepository{db: db, log: log}
}

func (r *activityRepository) Create(ctx context.Context, event *domain.ActivityEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.log.Errorw("activity_repo_create_failed", "project_id", event.ProjectID, "error", err)
		return err
	}
	return nil
}

func (r *activityRepository) GetByProject(ctx context.Context, projectID uint, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []domain.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		r.log.Errorw("activity_repo_list_failed", "project_id", projectID, "error", err)
		return nil, err
	}
	return events, nil
}
