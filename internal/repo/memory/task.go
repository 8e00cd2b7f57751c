// Package memory хранилище задач в памяти процесса. Данные живут, пока жив процесс.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
	"github.com/sirupsen/logrus"
)

// TaskStore хранит задачи в порядке вставки под одной блокировкой. Методы отдают копии,
// а не ссылки на элементы коллекции.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []entity.Task
	logger *logrus.Logger
}

func NewTaskStore() *TaskStore {
	return &TaskStore{logger: logger.Log}
}

func (s *TaskStore) Create(_ context.Context, task entity.Task) (entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task)
	return task, nil
}

func (s *TaskStore) Get(_ context.Context, id string) (entity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], nil
	}
	s.logger.WithFields(logrus.Fields{
		"method":  "Get",
		"task_id": id,
	}).Debug("Task not found")
	return entity.Task{}, entity.ErrTaskNotFound
}

func (s *TaskStore) List(_ context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter.Apply(s.tasks), nil
}

// Update применяет patch ко всем записям с данным id. ID уникальны, так что на практике
// это не больше одной записи.
func (s *TaskStore) Update(_ context.Context, id string, patch entity.TaskPatch, now time.Time) (entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		updated entity.Task
		matched bool
	)
	if id != "" {
		for i := range s.tasks {
			if s.tasks[i].ID != id {
				continue
			}
			s.tasks[i] = patch.Apply(s.tasks[i], now)
			if !matched {
				updated = s.tasks[i]
			}
			matched = true
		}
	}
	if !matched {
		s.logger.WithFields(logrus.Fields{
			"method":  "Update",
			"task_id": id,
		}).Debug("Task not found for update")
		return entity.Task{}, entity.ErrTaskNotFound
	}
	return updated, nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.WithFields(logrus.Fields{
			"method":  "Delete",
			"task_id": id,
		}).Debug("Task not found for deletion")
		return entity.ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Count возвращает число хранимых задач.
func (s *TaskStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

func (s *TaskStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
