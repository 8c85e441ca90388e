package ports

import (
	"context"

	"github.com/G381N/bug-besty/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uint) (*domain.Project, error)
	GetByOwner(ctx context.Context, ownerID uint) ([]domain.Project, error)
	GetActiveByName(ctx context.Context, ownerID uint, name string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uint) error
}

type SubdomainRepository interface {
	// Upsert inserts the subdomain keyed by (project_id, name) or returns
	// the existing row. The bool result reports whether a new row was
	// created.
	Upsert(ctx context.Context, subdomain *domain.Subdomain) (bool, error)
	GetByID(ctx context.Context, id uint) (*domain.Subdomain, error)
	GetByProject(ctx context.Context, projectID uint) ([]domain.Subdomain, error)
	CountByProject(ctx context.Context, projectID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type VulnerabilityRepository interface {
	CreateBatch(ctx context.Context, vulns []domain.Vulnerability) error
	GetByID(ctx context.Context, id uint) (*domain.Vulnerability, error)
	GetBySubdomain(ctx context.Context, subdomainID uint) ([]domain.Vulnerability, error)
	CountFoundByProject(ctx context.Context, projectID uint) (int64, error)
	Update(ctx context.Context, vuln *domain.Vulnerability) error
	DeleteBySubdomain(ctx context.Context, subdomainID uint) error
}

type ActivityRepository interface {
	Create(ctx context.Context, event *domain.ActivityEvent) error
	GetByProject(ctx context.Context, projectID uint, limit int) ([]domain.ActivityEvent, error)
}
