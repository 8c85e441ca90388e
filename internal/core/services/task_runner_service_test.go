package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

// memTaskStore mimics the redis-backed store: full-record replace on
// update, best-effort lease per task id.
type memTaskStore struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]domain.Task
	locks map[string]bool
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{
		tasks: make(map[string]domain.Task),
		locks: make(map[string]bool),
	}
}

func (m *memTaskStore) Create(ctx context.Context, taskType string, data domain.TaskData) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task := domain.Task{
		ID:        fmt.Sprintf("task-%d", m.seq),
		Type:      taskType,
		Status:    domain.TaskStatusPending,
		Data:      data,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.tasks[task.ID] = task
	return &task, nil
}

func (m *memTaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

func (m *memTaskStore) Update(ctx context.Context, id string, update ports.TaskUpdate) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	if update.Status != "" {
		task.Status = update.Status
	}
	if update.Progress != nil {
		task.Progress = *update.Progress
	}
	if update.Result != nil {
		task.Result = update.Result
	}
	if update.Error != nil {
		task.Error = *update.Error
	}
	task.UpdatedAt = time.Now()
	m.tasks[id] = task
	return &task, nil
}

func (m *memTaskStore) UpdateProgress(ctx context.Context, id string, progress int, result *domain.EnumerationResult) (*domain.Task, error) {
	return m.Update(ctx, id, ports.TaskUpdate{
		Status:   domain.TaskStatusProcessing,
		Progress: &progress,
		Result:   result,
	})
}

func (m *memTaskStore) AcquireLease(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[id] {
		return false, nil
	}
	m.locks[id] = true
	return true, nil
}

func (m *memTaskStore) ReleaseLease(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
	return nil
}

type memProjectRepo struct {
	mu       sync.Mutex
	seq      uint
	projects map[uint]domain.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[uint]domain.Project)}
}

func (m *memProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	project.ID = m.seq
	m.projects[project.ID] = *project
	return nil
}

func (m *memProjectRepo) GetByID(ctx context.Context, id uint) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}

func (m *memProjectRepo) GetByOwner(ctx context.Context, ownerID uint) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjectRepo) GetActiveByName(ctx context.Context, ownerID uint, name string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.OwnerID == ownerID && p.Name == name && p.Status != domain.ProjectStatusArchived {
			return &p, nil
		}
	}
	return nil, ErrProjectNotFound
}

func (m *memProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[project.ID]; !ok {
		return ErrProjectNotFound
	}
	m.projects[project.ID] = *project
	return nil
}

func (m *memProjectRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

type memSubdomainRepo struct {
	mu         sync.Mutex
	seq        uint
	subdomains map[uint]domain.Subdomain
}

func newMemSubdomainRepo() *memSubdomainRepo {
	return &memSubdomainRepo{subdomains: make(map[uint]domain.Subdomain)}
}

func (m *memSubdomainRepo) Upsert(ctx context.Context, subdomain *domain.Subdomain) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.subdomains {
		if existing.ProjectID == subdomain.ProjectID && existing.Name == subdomain.Name {
			*subdomain = existing
			return false, nil
		}
	}
	m.seq++
	subdomain.ID = m.seq
	m.subdomains[subdomain.ID] = *subdomain
	return true, nil
}

func (m *memSubdomainRepo) GetByID(ctx context.Context, id uint) (*domain.Subdomain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subdomain, ok := m.subdomains[id]
	if !ok {
		return nil, ErrSubdomainNotFound
	}
	return &subdomain, nil
}

func (m *memSubdomainRepo) GetByProject(ctx context.Context, projectID uint) ([]domain.Subdomain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Subdomain
	for _, s := range m.subdomains {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubdomainRepo) CountByProject(ctx context.Context, projectID uint) (int64, error) {
	subs, _ := m.GetByProject(ctx, projectID)
	return int64(len(subs)), nil
}

func (m *memSubdomainRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subdomains, id)
	return nil
}

type memVulnRepo struct {
	mu    sync.Mutex
	seq   uint
	vulns map[uint]domain.Vulnerability
}

func newMemVulnRepo() *memVulnRepo {
	return &memVulnRepo{vulns: make(map[uint]domain.Vulnerability)}
}

func (m *memVulnRepo) CreateBatch(ctx context.Context, vulns []domain.Vulnerability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range vulns {
		m.seq++
		v.ID = m.seq
		m.vulns[v.ID] = v
	}
	return nil
}

func (m *memVulnRepo) GetByID(ctx context.Context, id uint) (*domain.Vulnerability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vuln, ok := m.vulns[id]
	if !ok {
		return nil, ErrVulnerabilityNotFound
	}
	return &vuln, nil
}

func (m *memVulnRepo) GetBySubdomain(ctx context.Context, subdomainID uint) ([]domain.Vulnerability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Vulnerability
	for _, v := range m.vulns {
		if v.SubdomainID == subdomainID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVulnRepo) CountFoundByProject(ctx context.Context, projectID uint) (int64, error) {
	return 0, nil
}

func (m *memVulnRepo) Update(ctx context.Context, vuln *domain.Vulnerability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vulns[vuln.ID]; !ok {
		return ErrVulnerabilityNotFound
	}
	m.vulns[vuln.ID] = *vuln
	return nil
}

func (m *memVulnRepo) DeleteBySubdomain(ctx context.Context, subdomainID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.vulns {
		if v.SubdomainID == subdomainID {
			delete(m.vulns, id)
		}
	}
	return nil
}

type memActivityRepo struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (m *memActivityRepo) Create(ctx context.Context, event *domain.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	return nil
}

func (m *memActivityRepo) GetByProject(ctx context.Context, projectID uint, limit int) ([]domain.ActivityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ActivityEvent
	for _, e := range m.events {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type runnerFixture struct {
	runner     *TaskRunnerService
	taskStore  *memTaskStore
	projects   *memProjectRepo
	subdomains *memSubdomainRepo
	vulns      *memVulnRepo
	activity   *memActivityRepo
	project    *domain.Project
}

func newRunnerFixture(t *testing.T, chunkSize int, sources ...ports.Source) *runnerFixture {
	t.Helper()

	f := &runnerFixture{
		taskStore:  newMemTaskStore(),
		projects:   newMemProjectRepo(),
		subdomains: newMemSubdomainRepo(),
		vulns:      newMemVulnRepo(),
		activity:   &memActivityRepo{},
	}

	f.project = &domain.Project{
		Name:       "acme",
		MainDomain: "example.com",
		Status:     domain.ProjectStatusInitializing,
		OwnerID:    1,
	}
	require.NoError(t, f.projects.Create(context.Background(), f.project))

	f.runner = NewTaskRunnerService(TaskRunnerConfig{
		TaskStore:     f.taskStore,
		Enumerator:    NewEnumerationService(sources, logger.NewNop()),
		ProjectRepo:   f.projects,
		SubdomainRepo: f.subdomains,
		VulnRepo:      f.vulns,
		ActivityRepo:  f.activity,
		ChunkSize:     chunkSize,
		Logger:        logger.NewNop(),
	})
	return f
}

func (f *runnerFixture) newTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := f.taskStore.Create(context.Background(), domain.TaskTypeSubdomainEnumeration, domain.TaskData{
		TargetDomain: "example.com",
		ProjectID:    f.project.ID,
	})
	require.NoError(t, err)
	return task
}

func TestProcessAdvancesChunkByChunk(t *testing.T) {
	f := newRunnerFixture(t, 1,
		&stubSource{name: "a", hostnames: []string{"a.example.com"}},
		&stubSource{name: "b", hostnames: []string{"b.example.com", "a.example.com"}},
		&stubSource{name: "c", hostnames: []string{"c.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	outcome, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, outcome.Completed)
	assert.Equal(t, 33, outcome.Progress)
	assert.Equal(t, 1, outcome.SubdomainsCount)

	stored, err := f.taskStore.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusProcessing, stored.Status)
	assert.Equal(t, 33, stored.Progress)

	outcome, err = f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, outcome.Completed)
	assert.Equal(t, 66, outcome.Progress)
	assert.Equal(t, 2, outcome.SubdomainsCount)

	outcome, err = f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
	assert.Equal(t, 100, outcome.Progress)
	assert.Equal(t, 3, outcome.SubdomainsCount)

	stored, err = f.taskStore.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, stored.Status)
	require.NotNil(t, stored.Result)
	assert.ElementsMatch(t,
		[]string{"a.example.com", "b.example.com", "c.example.com"},
		stored.Result.Hostnames,
	)
}

func TestProcessCommitsOnCompletion(t *testing.T) {
	f := newRunnerFixture(t, 5,
		&stubSource{name: "a", hostnames: []string{"a.example.com", "b.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	outcome, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Completed)

	subs, err := f.subdomains.GetByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	for _, sub := range subs {
		assert.Equal(t, domain.DiscoveryAutoEnumeration, sub.DiscoveryMethod)
		checklist, err := f.vulns.GetBySubdomain(ctx, sub.ID)
		require.NoError(t, err)
		assert.Len(t, checklist, len(defaultChecklist))
	}

	project, err := f.projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusActive, project.Status)
	assert.Equal(t, 2, project.SubdomainsCount)

	events, err := f.activity.GetByProject(ctx, f.project.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "enumeration_completed", events[0].Kind)
}

func TestProcessSingleInvocationWithFlakySource(t *testing.T) {
	f := newRunnerFixture(t, 3,
		&stubSource{name: "a", hostnames: []string{"a.example.com"}},
		&stubSource{name: "b", err: errors.New("rate limited")},
		&stubSource{name: "c", hostnames: []string{"a.example.com", "b.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	outcome, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
	assert.Equal(t, 100, outcome.Progress)
	assert.Equal(t, 2, outcome.SubdomainsCount)

	stored, err := f.taskStore.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.example.com", "b.example.com"}, stored.Result.Hostnames)

	subs, err := f.subdomains.GetByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestProcessUnknownTask(t *testing.T) {
	f := newRunnerFixture(t, 1, &stubSource{name: "a"})

	_, err := f.runner.Process(context.Background(), "no-such-task")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestProcessCompletedTaskRejected(t *testing.T) {
	f := newRunnerFixture(t, 5,
		&stubSource{name: "a", hostnames: []string{"a.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	_, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)

	_, err = f.runner.Process(ctx, task.ID)
	require.Error(t, err)

	var stateErr *TaskStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Task is completed, cannot process", stateErr.Error())
	assert.ErrorIs(t, err, ErrTaskNotResumable)

	// The rejection must not have re-run any work.
	subs, err := f.subdomains.GetByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestProcessFailedTaskRejected(t *testing.T) {
	f := newRunnerFixture(t, 1, &stubSource{name: "a"})
	task := f.newTask(t)
	ctx := context.Background()

	msg := "boom"
	_, err := f.taskStore.Update(ctx, task.ID, ports.TaskUpdate{
		Status: domain.TaskStatusFailed,
		Error:  &msg,
	})
	require.NoError(t, err)

	_, err = f.runner.Process(ctx, task.ID)
	var stateErr *TaskStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Task is failed, cannot process", stateErr.Error())
}

func TestProcessWrongTaskType(t *testing.T) {
	f := newRunnerFixture(t, 1, &stubSource{name: "a"})
	task, err := f.taskStore.Create(context.Background(), "port_scan", domain.TaskData{
		TargetDomain: "example.com",
		ProjectID:    f.project.ID,
	})
	require.NoError(t, err)

	_, err = f.runner.Process(context.Background(), task.ID)
	assert.ErrorIs(t, err, ErrTaskWrongType)
}

func TestProcessHeldLeaseRejected(t *testing.T) {
	f := newRunnerFixture(t, 1,
		&stubSource{name: "a", hostnames: []string{"a.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	acquired, err := f.taskStore.AcquireLease(ctx, task.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = f.runner.Process(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskLocked)

	// Once released, processing resumes normally.
	require.NoError(t, f.taskStore.ReleaseLease(ctx, task.ID))
	outcome, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, outcome.Progress)
}

func TestProcessReleasesLeaseAfterRun(t *testing.T) {
	f := newRunnerFixture(t, 1,
		&stubSource{name: "a", hostnames: []string{"a.example.com"}},
		&stubSource{name: "b", hostnames: []string{"b.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	_, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)

	// A follow-up invocation must not find the lease still held.
	outcome, err := f.runner.Process(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
}

func TestProcessMarksTaskFailedOnMissingProject(t *testing.T) {
	f := newRunnerFixture(t, 1, &stubSource{name: "a"})
	task, err := f.taskStore.Create(context.Background(), domain.TaskTypeSubdomainEnumeration, domain.TaskData{
		TargetDomain: "example.com",
		ProjectID:    999,
	})
	require.NoError(t, err)

	_, err = f.runner.Process(context.Background(), task.ID)
	require.Error(t, err)

	stored, getErr := f.taskStore.Get(context.Background(), task.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.TaskStatusFailed, stored.Status)
	assert.NotEmpty(t, stored.Error)
}

func TestProcessProgressNeverRegresses(t *testing.T) {
	f := newRunnerFixture(t, 2,
		&stubSource{name: "a", hostnames: []string{"a.example.com"}},
		&stubSource{name: "b", err: errors.New("down")},
		&stubSource{name: "c", hostnames: []string{"c.example.com"}},
	)
	task := f.newTask(t)
	ctx := context.Background()

	last := 0
	for {
		outcome, err := f.runner.Process(ctx, task.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, outcome.Progress, last)
		last = outcome.Progress
		if outcome.Completed {
			break
		}
	}
	assert.Equal(t, 100, last)
}
