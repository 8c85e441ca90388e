package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

type SubdomainService struct {
	subdomainRepo ports.SubdomainRepository
	vulnRepo      ports.VulnerabilityRepository
	projectRepo   ports.ProjectRepository
	log           *logger.Logger
}

func NewSubdomainService(subdomainRepo ports.SubdomainRepository, vulnRepo ports.VulnerabilityRepository, projectRepo ports.ProjectRepository, log *logger.Logger) *SubdomainService {
	return &SubdomainService{
		subdomainRepo: subdomainRepo,
		vulnRepo:      vulnRepo,
		projectRepo:   projectRepo,
		log:           log,
	}
}

func (s *SubdomainService) AddSubdomain(ctx context.Context, projectID uint, name string) (*domain.Subdomain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrSubdomainInvalidInput
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	sub := &domain.Subdomain{
		Name:            name,
		ProjectID:       project.ID,
		Status:          domain.SubdomainStatusScanning,
		DiscoveryMethod: domain.DiscoveryManual,
	}
	isNew, err := s.subdomainRepo.Upsert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("upsert subdomain: %w", err)
	}
	if isNew {
		if err := s.vulnRepo.CreateBatch(ctx, DefaultChecklist(sub.ID)); err != nil {
			return nil, fmt.Errorf("seed checklist: %w", err)
		}
		project.SubdomainsCount++
		if err := s.projectRepo.Update(ctx, project); err != nil {
			return nil, fmt.Errorf("update project counters: %w", err)
		}
	}

	s.log.Infow("subdomain_added", "project_id", projectID, "name", name, "new", isNew)
	return sub, nil
}

func (s *SubdomainService) GetSubdomains(ctx context.Context, projectID uint) ([]domain.Subdomain, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, ErrProjectNotFound
	}
	return s.subdomainRepo.GetByProject(ctx, projectID)
}

func (s *SubdomainService) GetSubdomainByID(ctx context.Context, id uint) (*domain.Subdomain, error) {
	sub, err := s.subdomainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubdomainNotFound
	}
	return sub, nil
}

func (s *SubdomainService) DeleteSubdomain(ctx context.Context, id uint) error {
	sub, err := s.subdomainRepo.GetByID(ctx, id)
	if err != nil {
		return ErrSubdomainNotFound
	}

	if err := s.vulnRepo.DeleteBySubdomain(ctx, sub.ID); err != nil {
		return fmt.Errorf("delete checklist: %w", err)
	}
	if err := s.subdomainRepo.Delete(ctx, sub.ID); err != nil {
		return fmt.Errorf("delete subdomain: %w", err)
	}

	if project, err := s.projectRepo.GetByID(ctx, sub.ProjectID); err == nil {
		if project.SubdomainsCount > 0 {
			project.SubdomainsCount--
		}
		if err := s.projectRepo.Update(ctx, project); err != nil {
			s.log.Warnw("subdomain_delete_counter_update_failed", "project_id", project.ID, "error", err)
		}
	}

	s.log.Infow("subdomain_deleted", "id", id, "project_id", sub.ProjectID)
	return nil
}
