package repositories

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type dataRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// CachedData keeps recently read keys in memory. Writes go through to the repository
// first and then refresh the cache.
type CachedData struct {
	repo  dataRepository
	cache *gocache.Cache
}

func NewCachedData(repo dataRepository) *CachedData {
	return &CachedData{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedData) Load(ctx context.Context, key string) ([]byte, error) {
	if value, found := c.cache.Get(key); found {
		return value.([]byte), nil
	}

	data, err := c.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if data != nil {
		c.cache.SetDefault(key, data)
	}
	return data, nil
}

func (c *CachedData) Save(ctx context.Context, key string, data []byte) error {
	if err := c.repo.Save(ctx, key, data); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.SetDefault(key, data)
	return nil
}

func (c *CachedData) Remove(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return c.repo.Remove(ctx, key)
}

// Flush drops every cached key, e.g. after expired keys were removed from the repository.
func (c *CachedData) Flush() {
	c.cache.Flush()
}
