//go:build !integration

package catalog

import (
	"context"
	"time"

	"premium-store/internal/domain/model"
	red "premium-store/internal/infra/redis"
)

// mockRedisClient mocks the Redis client wrapper. Unset funcs behave like
// an empty cache.
type mockRedisClient struct {
	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc func(ctx context.Context, keys ...string) error
}

var _ red.RedisClient = &mockRedisClient{}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc == nil {
		return "", red.Nil
	}
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc == nil {
		return nil
	}
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc == nil {
		return nil
	}
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error                       { return nil }
func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) { return 0, nil }
func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}
func (m *mockRedisClient) Close() error { return nil }

// mockInnerSource is a plain CatalogSource without raw access.
type mockInnerSource struct {
	FetchFunc func(ctx context.Context) ([]*model.Plan, error)
	calls     int
}

func (m *mockInnerSource) Locator() string { return "postgres:providers" }

func (m *mockInnerSource) Fetch(ctx context.Context) ([]*model.Plan, error) {
	m.calls++
	return m.FetchFunc(ctx)
}
