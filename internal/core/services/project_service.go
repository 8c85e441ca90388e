package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

type ProjectService struct {
	projectRepo   ports.ProjectRepository
	subdomainRepo ports.SubdomainRepository
	vulnRepo      ports.VulnerabilityRepository
	activityRepo  ports.ActivityRepository
	taskStore     ports.TaskStore
	log           *logger.Logger
}

type ProjectServiceConfig struct {
	ProjectRepo   ports.ProjectRepository
	SubdomainRepo ports.SubdomainRepository
	VulnRepo      ports.VulnerabilityRepository
	ActivityRepo  ports.ActivityRepository
	TaskStore     ports.TaskStore
	Logger        *logger.Logger
}

func NewProjectService(cfg ProjectServiceConfig) *ProjectService {
	return &ProjectService{
		projectRepo:   cfg.ProjectRepo,
		subdomainRepo: cfg.SubdomainRepo,
		vulnRepo:      cfg.VulnRepo,
		activityRepo:  cfg.ActivityRepo,
		taskStore:     cfg.TaskStore,
		log:           cfg.Logger,
	}
}

// CreateProject creates the project and, for the auto method, a pending
// enumeration task. The call returns immediately; enumeration proceeds
// asynchronously as the external trigger drives the task.
func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, *domain.Task, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.TargetDomain = strings.ToLower(strings.TrimSpace(input.TargetDomain))
	if input.Name == "" || input.TargetDomain == "" {
		return nil, nil, ErrProjectInvalidInput
	}

	if existing, err := s.projectRepo.GetActiveByName(ctx, input.OwnerID, input.Name); err == nil && existing != nil {
		return nil, nil, ErrProjectAlreadyExists
	}

	switch input.EnumerationMethod {
	case "auto":
		return s.createWithEnumeration(ctx, input)
	case "manual", "":
		project, err := s.createWithSubdomains(ctx, input)
		return project, nil, err
	default:
		return nil, nil, fmt.Errorf("%w: unknown enumeration method %q", ErrProjectInvalidInput, input.EnumerationMethod)
	}
}

func (s *ProjectService) createWithEnumeration(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, *domain.Task, error) {
	project := &domain.Project{
		Name:       input.Name,
		MainDomain: input.TargetDomain,
		Status:     domain.ProjectStatusInitializing,
		OwnerID:    input.OwnerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, nil, fmt.Errorf("create project: %w", err)
	}

	task, err := s.taskStore.Create(ctx, domain.TaskTypeSubdomainEnumeration, domain.TaskData{
		TargetDomain: input.TargetDomain,
		ProjectID:    project.ID,
	})
	if err != nil {
		// Without a task the project would be stuck in initializing
		// forever, so roll it back.
		if delErr := s.projectRepo.Delete(ctx, project.ID); delErr != nil {
			s.log.Errorw("project_rollback_failed", "project_id", project.ID, "error", delErr)
		}
		return nil, nil, fmt.Errorf("create enumeration task: %w", err)
	}

	project.EnumerationTaskID = task.ID
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, nil, fmt.Errorf("attach task to project: %w", err)
	}

	s.recordActivity(ctx, project.ID, "enumeration_started",
		fmt.Sprintf("enumeration task created for %s", input.TargetDomain))

	s.log.Infow("project_created_auto",
		"project_id", project.ID,
		"owner_id", input.OwnerID,
		"domain", input.TargetDomain,
		"task_id", task.ID,
	)
	return project, task, nil
}

func (s *ProjectService) createWithSubdomains(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:       input.Name,
		MainDomain: input.TargetDomain,
		Status:     domain.ProjectStatusActive,
		OwnerID:    input.OwnerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	created := 0
	for _, name := range input.Subdomains {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		sub := &domain.Subdomain{
			Name:            name,
			ProjectID:       project.ID,
			Status:          domain.SubdomainStatusScanning,
			DiscoveryMethod: domain.DiscoveryManual,
		}
		isNew, err := s.subdomainRepo.Upsert(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("create subdomain %s: %w", name, err)
		}
		if !isNew {
			continue
		}
		created++
		if err := s.vulnRepo.CreateBatch(ctx, DefaultChecklist(sub.ID)); err != nil {
			return nil, fmt.Errorf("seed checklist for %s: %w", name, err)
		}
	}

	project.SubdomainsCount = created
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project counters: %w", err)
	}

	s.recordActivity(ctx, project.ID, "project_created",
		fmt.Sprintf("project seeded with %d subdomains", created))

	s.log.Infow("project_created_manual",
		"project_id", project.ID,
		"owner_id", input.OwnerID,
		"subdomains", created,
	)
	return project, nil
}

func (s *ProjectService) GetProjects(ctx context.Context, ownerID uint) ([]domain.Project, error) {
	return s.projectRepo.GetByOwner(ctx, ownerID)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id uint) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) GetProjectStats(ctx context.Context, id uint) (*ports.ProjectStats, error) {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return nil, ErrProjectNotFound
	}
	subdomains, err := s.subdomainRepo.CountByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	found, err := s.vulnRepo.CountFoundByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.ProjectStats{
		SubdomainsCount:      subdomains,
		VulnerabilitiesFound: found,
	}, nil
}

func (s *ProjectService) GetTimeline(ctx context.Context, projectID uint, limit int) ([]domain.ActivityEvent, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, ErrProjectNotFound
	}
	return s.activityRepo.GetByProject(ctx, projectID, limit)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uint) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return ErrProjectNotFound
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *ProjectService) recordActivity(ctx context.Context, projectID uint, kind, message string) {
	event := &domain.ActivityEvent{ProjectID: projectID, Kind: kind, Message: message}
	if err := s.activityRepo.Create(ctx, event); err != nil {
		s.log.Warnw("project_activity_record_failed", "project_id", projectID, "kind", kind, "error", err)
	}
}
