package usecase

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrTaskNotFound = entity.ErrTaskNotFound

const defaultCacheTTL = 5 * time.Minute

type TaskUseCase interface {
	Create(ctx context.Context, task entity.Task) (entity.Task, error)
	Get(ctx context.Context, id string) (entity.Task, error)
	List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	Update(ctx context.Context, id string, patch entity.TaskPatch) (entity.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task entity.Task) (entity.Task, error)
	Get(ctx context.Context, id string) (entity.Task, error)
	List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	Update(ctx context.Context, id string, patch entity.TaskPatch, now time.Time) (entity.Task, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CacheRepository кэширует списки задач в рамках поколения, которое сдвигает Invalidate.
// nil отключает кэш.
type CacheRepository interface {
	Generation(ctx context.Context) (int64, error)
	GetTasks(ctx context.Context, gen int64, key string) ([]entity.Task, bool, error)
	SetTasks(ctx context.Context, gen int64, key string, tasks []entity.Task, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type MetricsRecorder interface {
	ObserveOperation(operation, result string)
}

type TaskUseCaseImpl struct {
	taskRepo  TaskRepository
	cacheRepo CacheRepository
	metrics   MetricsRecorder
	cacheTTL  time.Duration
	now       func() time.Time
	newID     func() string
	group     singleflight.Group
}

type Option func(*TaskUseCaseImpl)

func WithCache(cacheRepo CacheRepository, ttl time.Duration) Option {
	return func(uc *TaskUseCaseImpl) {
		uc.cacheRepo = cacheRepo
		if ttl > 0 {
			uc.cacheTTL = ttl
		}
	}
}

func WithMetrics(m MetricsRecorder) Option {
	return func(uc *TaskUseCaseImpl) { uc.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(uc *TaskUseCaseImpl) { uc.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(uc *TaskUseCaseImpl) { uc.newID = newID }
}

func NewTaskUseCase(taskRepo TaskRepository, opts ...Option) *TaskUseCaseImpl {
	uc := &TaskUseCaseImpl{
		taskRepo: taskRepo,
		metrics:  nopMetrics{},
		cacheTTL: defaultCacheTTL,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create сохраняет новую задачу. ID, временные метки и статус всегда назначаются здесь:
// новая задача начинается в Pending, что бы ни прислал клиент.
func (uc *TaskUseCaseImpl) Create(ctx context.Context, task entity.Task) (entity.Task, error) {
	log := logger.FromContext(ctx)
	log.WithField("title", task.Title).Info("Starting task creation")

	task.ID = uc.newID()
	task.CreatedAt = uc.now()
	task.UpdatedAt = task.CreatedAt
	task.Status = entity.StatusPending

	createdTask, err := uc.taskRepo.Create(ctx, task)
	if err != nil {
		uc.observe("create", err)
		log.WithError(err).Error("Failed to create task")
		return entity.Task{}, err
	}
	uc.observe("create", nil)
	uc.invalidate(ctx)

	log.WithField("task_id", createdTask.ID).Info("Task created successfully")
	return createdTask, nil
}

func (uc *TaskUseCaseImpl) Get(ctx context.Context, id string) (entity.Task, error) {
	log := logger.FromContext(ctx).WithField("task_id", id)
	log.Info("Getting task")

	task, err := uc.taskRepo.Get(ctx, id)
	uc.observe("get", err)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			log.Info("Task not found")
		} else {
			log.WithError(err).Error("Failed to get task from repository")
		}
		return entity.Task{}, err
	}
	return task, nil
}

// List возвращает отфильтрованные задачи с пагинацией, из кэша, если он настроен.
func (uc *TaskUseCaseImpl) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	log := logger.FromContext(ctx).WithField("filter", filter.String())
	log.Info("Listing tasks")

	if uc.cacheRepo == nil {
		return uc.listFromRepo(ctx, filter, log)
	}

	key := filter.Key()
	gen, err := uc.cacheRepo.Generation(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read cache generation, bypassing cache")
		return uc.listFromRepo(ctx, filter, log)
	}

	tasks, found, err := uc.cacheRepo.GetTasks(ctx, gen, key)
	if err != nil {
		log.WithError(err).Warn("Failed to get tasks from cache")
	} else if found {
		uc.observe("list", nil)
		log.WithField("count", len(tasks)).Info("Tasks retrieved from cache")
		return tasks, nil
	}

	log.Info("Cache miss, retrieving from repository")

	// Одновременные промахи по одной странице и поколению делят одно чтение из репозитория.
	v, err, _ := uc.group.Do(strconv.FormatInt(gen, 10)+":"+key, func() (interface{}, error) {
		tasks, err := uc.listFromRepo(ctx, filter, log)
		if err != nil {
			return nil, err
		}
		if err := uc.cacheRepo.SetTasks(ctx, gen, key, tasks, uc.cacheTTL); err != nil {
			log.WithError(err).Warn("Failed to set tasks in cache")
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]entity.Task)), nil
}

func (uc *TaskUseCaseImpl) listFromRepo(ctx context.Context, filter entity.TaskFilter, log *logrus.Entry) ([]entity.Task, error) {
	tasks, err := uc.taskRepo.List(ctx, filter)
	uc.observe("list", err)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks from repository")
		return nil, err
	}
	log.WithField("count", len(tasks)).Info("Tasks listed successfully")
	return tasks, nil
}

func (uc *TaskUseCaseImpl) Update(ctx context.Context, id string, patch entity.TaskPatch) (entity.Task, error) {
	log := logger.FromContext(ctx).WithField("task_id", id)
	log.Info("Starting task update")

	updatedTask, err := uc.taskRepo.Update(ctx, id, patch, uc.now())
	uc.observe("update", err)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			log.Info("Task not found for update")
		} else {
			log.WithError(err).Error("Failed to update task in repository")
		}
		return entity.Task{}, err
	}
	uc.invalidate(ctx)

	log.Info("Task updated successfully")
	return updatedTask, nil
}

func (uc *TaskUseCaseImpl) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithField("task_id", id)
	log.Info("Deleting task")

	err := uc.taskRepo.Delete(ctx, id)
	uc.observe("delete", err)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			log.Info("Task not found for deletion")
		} else {
			log.WithError(err).Error("Failed to delete task from repository")
		}
		return err
	}
	uc.invalidate(ctx)

	log.Info("Task deleted successfully")
	return nil
}

func (uc *TaskUseCaseImpl) invalidate(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to invalidate cache")
	}
}

func (uc *TaskUseCaseImpl) observe(operation string, err error) {
	switch {
	case err == nil:
		uc.metrics.ObserveOperation(operation, "ok")
	case errors.Is(err, ErrTaskNotFound):
		uc.metrics.ObserveOperation(operation, "not_found")
	default:
		uc.metrics.ObserveOperation(operation, "error")
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, string) {}
