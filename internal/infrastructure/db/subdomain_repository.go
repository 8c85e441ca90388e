package db

import (
	"context"
	"errors"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type subdomainRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubdomainRepository(db *gorm.DB, log *logger.Logger) ports.SubdomainRepository {
	return &subdomainRepository{db: db, log: log}
}

// Upsert inserts keyed by (project_id, name). On conflict the existing row
// wins and is loaded back into the argument, so callers always end up with
// a populated ID either way.
func (r *subdomainRepository) Upsert(ctx context.Context, subdomain *domain.Subdomain) (bool, error) {
	var existing domain.Subdomain
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", subdomain.ProjectID, subdomain.Name).
		First(&existing).Error

	if err == nil {
		*subdomain = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(subdomain).Error; err != nil {
		r.log.Errorw("subdomain_repo_upsert_failed", "name", subdomain.Name, "project_id", subdomain.ProjectID, "error", err)
		return false, err
	}
	return true, nil
}

func (r *subdomainRepository) GetByID(ctx context.Context, id uint) (*domain.Subdomain, error) {
	var subdomain domain.Subdomain
	if err := r.db.WithContext(ctx).First(&subdomain, id).Error; err != nil {
		return nil, err
	}
	return &subdomain, nil
}

func (r *subdomainRepository) GetByProject(ctx context.Context, projectID uint) ([]domain.Subdomain, error) {
	var subdomains []domain.Subdomain
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&subdomains).Error
	if err != nil {
		r.log.Errorw("subdomain_repo_list_failed", "project_id", projectID, "error", err)
		return nil, err
	}
	return subdomains, nil
}

func (r *subdomainRepository) CountByProject(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Subdomain{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *subdomainRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Subdomain{}, id).Error; err != nil {
		r.log.Errorw("subdomain_repo_delete_failed", "id", id, "error", err)
		return err
	}
	return nil
}
