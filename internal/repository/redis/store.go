package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mamadbah2/storemanager/internal/config"
	"github.com/mamadbah2/storemanager/internal/domain/models"
)

// Item bodies live in a hash keyed by id; a list keeps insertion order.
const (
	itemsKey = "inventory:items"
	orderKey = "inventory:order"

	maxSeedAttempts = 10
)

// Store keeps items in Redis.
type Store struct {
	client *redis.Client
}

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// List returns items in insertion order. Ids whose body is gone are skipped.
func (s *Store) List(ctx context.Context) ([]models.Item, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	ids, err := s.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read item order: %w", err)
	}
	if len(ids) == 0 {
		return []models.Item{}, nil
	}

	values, err := s.client.HMGet(ctx, itemsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	items := make([]models.Item, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var item models.Item
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item %s: %w", ids[i], err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Create stores a new item with a generated id.
func (s *Store) Create(ctx context.Context, input models.ItemInput) (models.Item, error) {
	if s.client == nil {
		return models.Item{}, fmt.Errorf("redis client is nil")
	}

	item := models.NewItem(uuid.NewString(), input)
	data, err := json.Marshal(item)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, itemsKey, item.ID, data)
		pipe.RPush(ctx, orderKey, item.ID)
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to store item: %w", err)
	}
	return item, nil
}

// Delete removes the item with the given id. Missing ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, itemsKey, id)
		pipe.LRem(ctx, orderKey, 0, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// Seed loads items when no item is stored yet. The emptiness check and the
// writes run under WATCH on the order list, so replicas starting together
// seed exactly once.
func (s *Store) Seed(ctx context.Context, items []models.Item) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if len(items) == 0 {
		return nil
	}

	bodies := make([][]byte, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item %s: %w", item.ID, err)
		}
		bodies = append(bodies, data)
	}

	seed := func(tx *redis.Tx) error {
		n, err := tx.LLen(ctx, orderKey).Result()
		if err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}
		if n > 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, item := range items {
				pipe.HSet(ctx, itemsKey, item.ID, bodies[i])
				pipe.RPush(ctx, orderKey, item.ID)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxSeedAttempts; attempt++ {
		err := s.client.Watch(ctx, seed, orderKey)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("failed to seed items: %w", err)
		}
		// another writer touched the list; re-check emptiness
	}
	return fmt.Errorf("failed to seed items: gave up after %d attempts", maxSeedAttempts)
}

// Ping checks the connection to Redis.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
