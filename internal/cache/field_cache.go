package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/redis/go-redis/v9"
)

// DefaultFieldTTL сколько живут метаданные поля в кеше
const DefaultFieldTTL = time.Hour

// FieldCache кеш метаданных полей (длительность слота) в Redis
type FieldCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New подключается к Redis
func New(addr, password string, db int) *FieldCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewWithClient(rdb, DefaultFieldTTL)
}

// NewWithClient оборачивает готовый клиент
func NewWithClient(client *redis.Client, ttl time.Duration) *FieldCache {
	return &FieldCache{client: client, ttl: ttl}
}

// Ping проверяет подключение
func (c *FieldCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает клиент
func (c *FieldCache) Close() error {
	return c.client.Close()
}

// GetField получает поле из кеша. Промах - nil без ошибки.
func (c *FieldCache) GetField(ctx context.Context, id int64) (*model.Field, error) {
	val, err := c.client.Get(ctx, fieldKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached field: %w", err)
	}

	var field model.Field
	if err := json.Unmarshal([]byte(val), &field); err != nil {
		return nil, fmt.Errorf("decode cached field: %w", err)
	}
	return &field, nil
}

// SaveField сохраняет поле с TTL
func (c *FieldCache) SaveField(ctx context.Context, field *model.Field) error {
	data, err := json.Marshal(field)
	if err != nil {
		return fmt.Errorf("encode field: %w", err)
	}
	if err := c.client.Set(ctx, fieldKey(field.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache field: %w", err)
	}
	return nil
}

// InvalidateField удаляет поле из кеша
func (c *FieldCache) InvalidateField(ctx context.Context, id int64) error {
	return c.client.Del(ctx, fieldKey(id)).Err()
}

func fieldKey(id int64) string {
	return fmt.Sprintf("cache:field:%d", id)
}
