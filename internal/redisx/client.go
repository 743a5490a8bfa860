package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
}

// CredentialCache caches public credential lookups keyed by credential UUID.
// The verification endpoint is unauthenticated and read-heavy; member
// mutations invalidate the entry.
type CredentialCache struct {
	rdb *redis.Client
}

func NewCredentialCache(rdb *redis.Client) *CredentialCache {
	return &CredentialCache{rdb: rdb}
}

func (c *CredentialCache) Get(ctx context.Context, uuid string, out any) (bool, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(KeyCredentialVerify, uuid)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}

	return true, nil
}

func (c *CredentialCache) Set(ctx context.Context, uuid string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, fmt.Sprintf(KeyCredentialVerify, uuid), raw, TTLCredentialVerify).Err()
}

func (c *CredentialCache) Invalidate(ctx context.Context, uuid string) error {
	return c.rdb.Del(ctx, fmt.Sprintf(KeyCredentialVerify, uuid)).Err()
}
