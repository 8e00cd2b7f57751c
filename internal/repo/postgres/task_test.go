package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// setupRepository подключается к TEST_POSTGRES_DSN, применяет миграции и очищает таблицу tasks.
func setupRepository(t *testing.T) *TaskRepository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE tasks`)
	require.NoError(t, err)

	return NewTaskRepository(pool)
}

func newTask(id, assignedTo, category string) entity.Task {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entity.Task{
		ID:          id,
		Title:       "Task " + id,
		Description: "Description " + id,
		DueDate:     "2030-01-01",
		AssignedTo:  assignedTo,
		Category:    category,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestTaskRepository_CRUD(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	task := newTask("t-1", "a", "x")
	created, err := repo.Create(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, task.ID, created.ID)
	assert.True(t, task.CreatedAt.Equal(created.CreatedAt))

	got, err := repo.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, entity.StatusPending, got.Status)

	later := task.UpdatedAt.Add(time.Second)
	updated, err := repo.Update(ctx, "t-1", entity.TaskPatch{Status: ptr(entity.StatusCompleted)}, later)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, updated.Status)
	assert.Equal(t, task.Title, updated.Title)
	assert.True(t, later.Equal(updated.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, "t-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "t-1"), entity.ErrTaskNotFound)

	_, err = repo.Get(ctx, "t-1")
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
	_, err = repo.Update(ctx, "t-1", entity.TaskPatch{}, later)
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
	_, err = repo.Get(ctx, "")
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
}

func TestTaskRepository_ListFiltersAndPages(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		assignee := "a"
		if i%2 == 1 {
			assignee = "b"
		}
		_, err := repo.Create(ctx, newTask(fmt.Sprintf("t-%02d", i), assignee, "x"))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, entity.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, "t-00", all[0].ID)
	assert.Equal(t, "t-09", all[9].ID)

	page, err := repo.List(ctx, entity.TaskFilter{Offset: ptr(8), Limit: ptr(5)})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = repo.List(ctx, entity.TaskFilter{Offset: ptr(20), Limit: ptr(5)})
	require.NoError(t, err)
	assert.Empty(t, page)

	onlyA, err := repo.List(ctx, entity.TaskFilter{AssignedTo: "a", Offset: ptr(1), Limit: ptr(2)})
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, "t-02", onlyA[0].ID)
	assert.Equal(t, "t-04", onlyA[1].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}
