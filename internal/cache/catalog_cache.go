package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"course-catalog/internal/model"
)

// CatalogCache keeps course reads out of the database until a mutation
// invalidates them.
type CatalogCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redisv9.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CatalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CatalogCache) GetList(ctx context.Context) ([]model.CourseView, bool, error) {
	raw, err := c.client.Get(ctx, c.listKey()).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get course list failed: %w", err)
	}

	var views []model.CourseView
	if err := json.Unmarshal([]byte(raw), &views); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached course list failed: %w", err)
	}
	return views, true, nil
}

func (c *CatalogCache) SetList(ctx context.Context, views []model.CourseView) error {
	payload, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("marshal course list failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set course list failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) GetCourse(ctx context.Context, id uint) (*model.CourseView, bool, error) {
	raw, err := c.client.Get(ctx, c.courseKey(id)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get course failed: %w", err)
	}

	var view model.CourseView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached course failed: %w", err)
	}
	return &view, true, nil
}

func (c *CatalogCache) SetCourse(ctx context.Context, view model.CourseView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal course failed: %w", err)
	}
	if err := c.client.Set(ctx, c.courseKey(view.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set course failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) InvalidateCourse(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, c.courseKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete course failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) InvalidateList(ctx context.Context) error {
	if err := c.client.Del(ctx, c.listKey()).Err(); err != nil {
		return fmt.Errorf("redis delete course list failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) listKey() string {
	return "catalog:courses"
}

func (c *CatalogCache) courseKey(id uint) string {
	return fmt.Sprintf("catalog:course:%d", id)
}
