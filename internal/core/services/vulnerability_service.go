package services

import (
	"context"
	"fmt"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

type VulnerabilityService struct {
	vulnRepo      ports.VulnerabilityRepository
	subdomainRepo ports.SubdomainRepository
	log           *logger.Logger
}

func NewVulnerabilityService(vulnRepo ports.VulnerabilityRepository, subdomainRepo ports.SubdomainRepository, log *logger.Logger) *VulnerabilityService {
	return &VulnerabilityService{vulnRepo: vulnRepo, subdomainRepo: subdomainRepo, log: log}
}

func (s *VulnerabilityService) GetChecklist(ctx context.Context, subdomainID uint) ([]domain.Vulnerability, error) {
	if _, err := s.subdomainRepo.GetByID(ctx, subdomainID); err != nil {
		return nil, ErrSubdomainNotFound
	}
	return s.vulnRepo.GetBySubdomain(ctx, subdomainID)
}

func (s *VulnerabilityService) UpdateEntry(ctx context.Context, id uint, status domain.VulnerabilityStatus, notes *string) (*domain.Vulnerability, error) {
	switch status {
	case domain.VulnStatusNotYetDone, domain.VulnStatusFound, domain.VulnStatusNotFound:
	default:
		return nil, fmt.Errorf("%w: %q", ErrVulnerabilityBadState, status)
	}

	vuln, err := s.vulnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrVulnerabilityNotFound
	}

	vuln.Status = status
	if notes != nil {
		vuln.Notes = *notes
	}
	if err := s.vulnRepo.Update(ctx, vuln); err != nil {
		return nil, fmt.Errorf("update vulnerability: %w", err)
	}

	s.log.Infow("vulnerability_updated", "id", id, "status", status)
	return vuln, nil
}
