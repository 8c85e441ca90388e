package db

import (
	"context"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type vulnerabilityRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVulnerabilityRepository(db *gorm.DB, log *logger.Logger) ports.VulnerabilityRepository {
	return &vulnerabilityRepository{db: db, log: log}
}

func (r *vulnerabilityRepository) CreateBatch(ctx context.Context, vulns []domain.Vulnerability) error {
	if len(vulns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&vulns).Error; err != nil {
		r.log.Errorw("vuln_repo_create_batch_failed", "count", len(vulns), "error", err)
		return err
	}
	return nil
}

func (r *vulnerabilityRepository) GetByID(ctx context.Context, id uint) (*domain.Vulnerability, error) {
	var vuln domain.Vulnerability
	if err := r.db.WithContext(ctx).First(&vuln, id).Error; err != nil {
		return nil, err
	}
	return &vuln, nil
}

func (r *vulnerabilityRepository) GetBySubdomain(ctx context.Context, subdomainID uint) ([]domain.Vulnerability, error) {
	var vulns []domain.Vulnerability
	err := r.db.WithContext(ctx).
		Where("subdomain_id = ?", subdomainID).
		Order("id ASC").
		Find(&vulns).Error
	if err != nil {
		r.log.Errorw("vuln_repo_list_failed", "subdomain_id", subdomainID, "error", err)
		return nil, err
	}
	return vulns, nil
}

func (r *vulnerabilityRepository) CountFoundByProject(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Vulnerability{}).
		Joins("JOIN subdomains ON subdomains.id = vulnerabilities.subdomain_id").
		Where("subdomains.project_id = ? AND vulnerabilities.status = ?", projectID, domain.VulnStatusFound).
		Count(&count).Error
	return count, err
}

func (r *vulnerabilityRepository) Update(ctx context.Context, vuln *domain.Vulnerability) error {
	if err := r.db.WithContext(ctx).Save(vuln).Error; err != nil {
		r.log.Errorw("vuln_repo_update_failed", "id", vuln.ID, "error", err)
		return err
	}
	return nil
}

func (r *vulnerabilityRepository) DeleteBySubdomain(ctx context.Context, subdomainID uint) error {
	err := r.db.WithContext(ctx).
		Where("subdomain_id = ?", subdomainID).
		Delete(&domain.Vulnerability{}).Error
	if err != nil {
		r.log.Errorw("vuln_repo_delete_by_subdomain_failed", "subdomain_id", subdomainID, "error", err)
	}
	return err
}
