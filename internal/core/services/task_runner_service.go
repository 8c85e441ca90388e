package services

import (
	"context"
	"fmt"
	"time"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

// leaseTTL bounds how long an invocation may hold a task before an
// overlapping trigger is allowed back in, covering the case where a
// holder dies without releasing.
const leaseTTL = 60 * time.Second

// TaskStateError reports an attempt to process a task that is not in a
// resumable status. Its message is surfaced verbatim to the trigger
// caller.
type TaskStateError struct {
	Status domain.TaskStatus
}

func (e *TaskStateError) Error() string {
	return fmt.Sprintf("Task is %s, cannot process", e.Status)
}

func (e *TaskStateError) Unwrap() error { return ErrTaskNotResumable }

// TaskRunnerService drives one chunk of a background task per invocation.
// It is stateless between invocations: everything needed to resume lives
// in the task store, so the external trigger can re-invoke it at any
// cadence and progress only ever moves forward.
type TaskRunnerService struct {
	taskStore     ports.TaskStore
	enumerator    ports.Enumerator
	projectRepo   ports.ProjectRepository
	subdomainRepo ports.SubdomainRepository
	vulnRepo      ports.VulnerabilityRepository
	activityRepo  ports.ActivityRepository
	chunkSize     int
	log           *logger.Logger
}

type TaskRunnerConfig struct {
	TaskStore     ports.TaskStore
	Enumerator    ports.Enumerator
	ProjectRepo   ports.ProjectRepository
	SubdomainRepo ports.SubdomainRepository
	VulnRepo      ports.VulnerabilityRepository
	ActivityRepo  ports.ActivityRepository
	ChunkSize     int
	Logger        *logger.Logger
}

func NewTaskRunnerService(cfg TaskRunnerConfig) *TaskRunnerService {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 5
	}
	return &TaskRunnerService{
		taskStore:     cfg.TaskStore,
		enumerator:    cfg.Enumerator,
		projectRepo:   cfg.ProjectRepo,
		subdomainRepo: cfg.SubdomainRepo,
		vulnRepo:      cfg.VulnRepo,
		activityRepo:  cfg.ActivityRepo,
		chunkSize:     chunkSize,
		log:           cfg.Logger,
	}
}

func (s *TaskRunnerService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskStore.Get(ctx, taskID)
}

// Process advances the task by one chunk. Unknown ids fail the request,
// not the task; terminal tasks are rejected without re-running any work.
// Any failure past the processing transition marks the task failed with
// the captured message and is re-raised to the caller — retry is the
// trigger's job, not ours.
func (s *TaskRunnerService) Process(ctx context.Context, taskID string) (*ports.ProcessOutcome, error) {
	task, err := s.taskStore.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status.Terminal() {
		return nil, &TaskStateError{Status: task.Status}
	}
	if task.Type != domain.TaskTypeSubdomainEnumeration {
		return nil, fmt.Errorf("%w: %s", ErrTaskWrongType, task.Type)
	}

	acquired, err := s.taskStore.AcquireLease(ctx, taskID, leaseTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrTaskLocked
	}
	defer func() {
		if err := s.taskStore.ReleaseLease(context.WithoutCancel(ctx), taskID); err != nil {
			s.log.Warnw("task_lease_release_failed", "task_id", taskID, "error", err)
		}
	}()

	if _, err := s.taskStore.Update(ctx, taskID, ports.TaskUpdate{Status: domain.TaskStatusProcessing}); err != nil {
		return nil, err
	}

	outcome, err := s.processEnumeration(ctx, task)
	if err != nil {
		msg := err.Error()
		if _, failErr := s.taskStore.Update(ctx, taskID, ports.TaskUpdate{
			Status: domain.TaskStatusFailed,
			Error:  &msg,
		}); failErr != nil {
			s.log.Errorw("task_fail_persist_failed", "task_id", taskID, "error", failErr)
		}
		s.log.Errorw("task_process_failed", "task_id", taskID, "error", err)
		return nil, err
	}

	return outcome, nil
}

func (s *TaskRunnerService) processEnumeration(ctx context.Context, task *domain.Task) (*ports.ProcessOutcome, error) {
	project, err := s.projectRepo.GetByID(ctx, task.Data.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("load project %d: %w", task.Data.ProjectID, err)
	}

	totalSources := s.enumerator.TotalSources()

	// Resume exactly where the previous invocation left off. The persisted
	// progress encodes the high-water source index, truncated to a whole
	// percentage; rounding to nearest undoes that truncation (exact for any
	// registry under 50 sources), so no source is re-queried or skipped.
	processedSources := (task.Progress*totalSources + 50) / 100

	accumulated := task.Result
	if accumulated == nil {
		accumulated = &domain.EnumerationResult{Hostnames: []string{}}
	}

	chunk, err := s.enumerator.RunChunk(ctx, task.Data.TargetDomain, processedSources, s.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("enumeration chunk from %d: %w", processedSources, err)
	}

	accumulated.Merge(chunk.Hostnames)
	accumulated.SourcesCompleted = chunk.CompletedCount

	newProgress := chunk.CompletedCount * 100 / totalSources
	if newProgress > 100 {
		newProgress = 100
	}

	if _, err := s.taskStore.UpdateProgress(ctx, task.ID, newProgress, accumulated); err != nil {
		return nil, fmt.Errorf("persist progress: %w", err)
	}

	s.log.Infow("task_chunk_processed",
		"task_id", task.ID,
		"project_id", project.ID,
		"from_source", processedSources,
		"completed_sources", chunk.CompletedCount,
		"total_sources", totalSources,
		"progress", newProgress,
		"hostnames", len(accumulated.Hostnames),
	)

	if chunk.CompletedCount < totalSources {
		return &ports.ProcessOutcome{
			Completed:       false,
			Progress:        newProgress,
			SubdomainsCount: len(accumulated.Hostnames),
			Message:         "partial enumeration processed",
		}, nil
	}

	// Final chunk: commit accumulated hostnames into the domain store.
	// The task only flips to completed once the whole commit succeeds, so
	// a half-written commit is retried by the next trigger invocation.
	if err := s.commit(ctx, task, project, accumulated); err != nil {
		return nil, fmt.Errorf("commit enumeration results: %w", err)
	}

	if _, err := s.taskStore.Update(ctx, task.ID, ports.TaskUpdate{
		Status: domain.TaskStatusCompleted,
		Result: accumulated,
	}); err != nil {
		return nil, fmt.Errorf("mark task completed: %w", err)
	}

	s.log.Infow("task_completed",
		"task_id", task.ID,
		"project_id", project.ID,
		"subdomains", len(accumulated.Hostnames),
	)

	return &ports.ProcessOutcome{
		Completed:       true,
		Progress:        100,
		SubdomainsCount: len(accumulated.Hostnames),
		Message:         "enumeration completed",
	}, nil
}

func (s *TaskRunnerService) commit(ctx context.Context, task *domain.Task, project *domain.Project, result *domain.EnumerationResult) error {
	created := 0
	for _, hostname := range result.Hostnames {
		sub := &domain.Subdomain{
			Name:            hostname,
			ProjectID:       project.ID,
			Status:          domain.SubdomainStatusScanning,
			DiscoveryMethod: domain.DiscoveryAutoEnumeration,
		}
		isNew, err := s.subdomainRepo.Upsert(ctx, sub)
		if err != nil {
			return fmt.Errorf("upsert subdomain %s: %w", hostname, err)
		}
		if !isNew {
			continue
		}
		created++
		if err := s.vulnRepo.CreateBatch(ctx, DefaultChecklist(sub.ID)); err != nil {
			return fmt.Errorf("seed checklist for %s: %w", hostname, err)
		}
	}

	project.Status = domain.ProjectStatusActive
	project.SubdomainsCount = len(result.Hostnames)
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	event := &domain.ActivityEvent{
		ProjectID: project.ID,
		Kind:      "enumeration_completed",
		Message:   fmt.Sprintf("enumeration finished with %d subdomains (%d new)", len(result.Hostnames), created),
	}
	if err := s.activityRepo.Create(ctx, event); err != nil {
		// Timeline is informational; do not fail the commit over it.
		s.log.Warnw("task_activity_record_failed", "task_id", task.ID, "error", err)
	}

	return nil
}
