package db

import (
	"context"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type projectRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepository(db *gorm.DB, log *logger.Logger) ports.ProjectRepository {
	return &projectRepository{db: db, log: log}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		r.log.Errorw("project_repo_create_failed", "name", project.Name, "error", err)
		return err
	}
	r.log.Infow("project_repo_create_ok", "id", project.ID, "name", project.Name)
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetByOwner(ctx context.Context, ownerID uint) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status <> ?", ownerID, domain.ProjectStatusArchived).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		r.log.Errorw("project_repo_list_failed", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) GetActiveByName(ctx context.Context, ownerID uint, name string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ? AND status = ?", ownerID, name, domain.ProjectStatusActive).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		r.log.Errorw("project_repo_update_failed", "id", project.ID, "error", err)
		return err
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Project{}, id).Error; err != nil {
		r.log.Errorw("project_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("project_repo_delete_ok", "id", id)
	return nil
}
