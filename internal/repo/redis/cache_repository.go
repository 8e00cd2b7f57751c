package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "tasks:"

// CacheRepository кэширует списки задач. Ключи включают счетчик поколения, который
// увеличивается при каждом изменении: запись из устаревшего чтения больше не отдается.
type CacheRepository struct {
	client *redis.Client
	prefix string
}

func NewCacheRepository(addr, password string, db int) *CacheRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &CacheRepository{client: client, prefix: defaultPrefix}
}

func (c *CacheRepository) generationKey() string {
	return c.prefix + "generation"
}

func (c *CacheRepository) listKey(gen int64, key string) string {
	return c.prefix + "list:" + strconv.FormatInt(gen, 10) + ":" + key
}

// Generation возвращает текущее поколение кэша, 0 до первой инвалидации.
func (c *CacheRepository) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation error: %w", err)
	}
	return gen, nil
}

func (c *CacheRepository) SetTasks(ctx context.Context, gen int64, key string, tasks []entity.Task, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(gen, key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// GetTasks при промахе возвращает found=false без ошибки.
func (c *CacheRepository) GetTasks(ctx context.Context, gen int64, key string) ([]entity.Task, bool, error) {
	data, err := c.client.Get(ctx, c.listKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	tasks := []entity.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return tasks, true, nil
}

func (c *CacheRepository) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}

// Ping проверяет подключение к Redis
func (c *CacheRepository) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CacheRepository) Close() error {
	return c.client.Close()
}
