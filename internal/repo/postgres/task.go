package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	queryTimeout = 5 * time.Second
	taskColumns  = `id, title, description, due_date, assigned_to, category, status, created_at, updated_at`
)

// TaskRepository хранит задачи в postgres. Порядок вставки держит колонка seq.
type TaskRepository struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger.Log,
	}
}

func scanTask(row pgx.Row) (entity.Task, error) {
	var (
		task   entity.Task
		status string
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.AssignedTo,
		&task.Category,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	task.Status = entity.TaskStatus(status)
	return task, err
}

func (r *TaskRepository) Create(ctx context.Context, task entity.Task) (entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.AssignedTo,
		task.Category,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	))
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "Create",
			"task_id": task.ID,
			"title":   task.Title,
		}).WithError(err).Error("Failed to create task")
		return entity.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if id == "" {
		return entity.Task{}, entity.ErrTaskNotFound
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WithFields(logrus.Fields{
				"method":  "Get",
				"task_id": id,
			}).Debug("Task not found")
			return entity.Task{}, entity.ErrTaskNotFound
		}
		r.logger.WithFields(logrus.Fields{
			"method":  "Get",
			"task_id": id,
		}).WithError(err).Error("Failed to get task")
		return entity.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1 = '' OR assigned_to = $1) AND ($2 = '' OR category = $2)
		ORDER BY seq`
	args := []any{filter.AssignedTo, filter.Category}
	if filter.Paginated() {
		query += ` OFFSET $3 LIMIT $4`
		args = append(args, max(*filter.Offset, 0), max(*filter.Limit, 0))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method": "List",
			"filter": filter.String(),
		}).WithError(err).Error("Failed to list tasks")
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []entity.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"method": "List",
			}).WithError(err).Error("Failed to scan task row")
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		r.logger.WithFields(logrus.Fields{
			"method": "List",
		}).WithError(err).Error("Error after scanning rows")
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}

	return tasks, nil
}

// Update блокирует строку, применяет patch и записывает результат в одной транзакции.
func (r *TaskRepository) Update(ctx context.Context, id string, patch entity.TaskPatch, now time.Time) (entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if id == "" {
		return entity.Task{}, entity.ErrTaskNotFound
	}

	var updated entity.Task
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanTask(tx.QueryRow(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		merged := patch.Apply(current, now)
		updated, err = scanTask(tx.QueryRow(ctx, `
			UPDATE tasks
			SET title = $2, description = $3, due_date = $4, assigned_to = $5,
			    category = $6, status = $7, updated_at = $8
			WHERE id = $1
			RETURNING `+taskColumns,
			id,
			merged.Title,
			merged.Description,
			merged.DueDate,
			merged.AssignedTo,
			merged.Category,
			string(merged.Status),
			merged.UpdatedAt,
		))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WithFields(logrus.Fields{
				"method":  "Update",
				"task_id": id,
			}).Debug("Task not found for update")
			return entity.Task{}, entity.ErrTaskNotFound
		}
		r.logger.WithFields(logrus.Fields{
			"method":  "Update",
			"task_id": id,
		}).WithError(err).Error("Failed to update task")
		return entity.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if id == "" {
		return entity.ErrTaskNotFound
	}

	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "Delete",
			"task_id": id,
		}).WithError(err).Error("Failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.logger.WithFields(logrus.Fields{
			"method":  "Delete",
			"task_id": id,
		}).Debug("Task not found for deletion")
		return entity.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}
