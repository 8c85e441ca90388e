package ports

import (
	"context"

	"github.com/G381N/bug-besty/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Logout(ctx context.Context, token string) error
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

type CreateProjectInput struct {
	Name              string
	TargetDomain      string
	EnumerationMethod string
	Subdomains        []string // used when EnumerationMethod is "manual"
	OwnerID           uint
}

type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, *domain.Task, error)
	GetProjects(ctx context.Context, ownerID uint) ([]domain.Project, error)
	GetProjectByID(ctx context.Context, id uint) (*domain.Project, error)
	GetProjectStats(ctx context.Context, id uint) (*ProjectStats, error)
	GetTimeline(ctx context.Context, projectID uint, limit int) ([]domain.ActivityEvent, error)
	DeleteProject(ctx context.Context, id uint) error
}

type ProjectStats struct {
	SubdomainsCount      int64 `json:"subdomains_count"`
	VulnerabilitiesFound int64 `json:"vulnerabilities_found"`
}

type SubdomainService interface {
	AddSubdomain(ctx context.Context, projectID uint, name string) (*domain.Subdomain, error)
	GetSubdomains(ctx context.Context, projectID uint) ([]domain.Subdomain, error)
	GetSubdomainByID(ctx context.Context, id uint) (*domain.Subdomain, error)
	DeleteSubdomain(ctx context.Context, id uint) error
}

type VulnerabilityService interface {
	GetChecklist(ctx context.Context, subdomainID uint) ([]domain.Vulnerability, error)
	UpdateEntry(ctx context.Context, id uint, status domain.VulnerabilityStatus, notes *string) (*domain.Vulnerability, error)
}

// ChunkResult is the output of one coordinator invocation over the
// adapter registry range [startIndex, startIndex+chunkSize).
type ChunkResult struct {
	Hostnames      []string
	CompletedCount int
}

type Enumerator interface {
	// RunChunk queries the adapters in the given index window and returns
	// the merged, deduplicated hostnames plus the new high-water index.
	RunChunk(ctx context.Context, domain string, startIndex, chunkSize int) (*ChunkResult, error)
	TotalSources() int
}

// ProcessOutcome is what one task driver invocation reports back to the
// trigger caller.
type ProcessOutcome struct {
	Completed       bool   `json:"completed"`
	Progress        int    `json:"progress"`
	SubdomainsCount int    `json:"subdomains_count"`
	Message         string `json:"message"`
}

type TaskRunner interface {
	Process(ctx context.Context, taskID string) (*ProcessOutcome, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
}
