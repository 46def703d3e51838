// Package redis implements repository.CoffeeRepository on Redis.
//
// Layout, for a key prefix P:
//
//	P:coffees        hash, id -> JSON-encoded coffee
//	P:coffees:order  sorted set, id scored by insertion sequence
//	P:coffees:seq    counter feeding the sorted-set scores
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
)

// CoffeeRedis stores coffees in a Redis hash with a sorted set for ordering.
type CoffeeRedis struct {
	rdb      goredis.Cmdable
	hashKey  string
	orderKey string
	seqKey   string
}

// NewCoffeeRedis creates a repository whose keys live under prefix.
func NewCoffeeRedis(rdb goredis.Cmdable, prefix string) *CoffeeRedis {
	if prefix == "" {
		prefix = "coffee"
	}
	base := prefix + ":coffees"
	return &CoffeeRedis{
		rdb:      rdb,
		hashKey:  base,
		orderKey: base + ":order",
		seqKey:   base + ":seq",
	}
}

var _ repository.CoffeeRepository = (*CoffeeRedis)(nil)

func (r *CoffeeRedis) FindAll(ctx context.Context) ([]model.Coffee, error) {
	ids, err := r.rdb.ZRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	items := make([]model.Coffee, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	vals, err := r.rdb.HMGet(ctx, r.hashKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// index entry without a record; a concurrent delete is mid-flight
			continue
		}
		var c model.Coffee
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode coffee %s: %w", ids[i], err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *CoffeeRedis) FindByID(ctx context.Context, id string) (*model.Coffee, error) {
	raw, err := r.rdb.HGet(ctx, r.hashKey, id).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var c model.Coffee
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode coffee %s: %w", id, err)
	}
	return &c, nil
}

func (r *CoffeeRedis) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.rdb.HExists(ctx, r.hashKey, id).Result()
}

// Save writes the record and, for new IDs only, appends it to the order index.
func (r *CoffeeRedis) Save(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	seq, err := r.rdb.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return nil, err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, r.hashKey, c.ID, payload)
		p.ZAddNX(ctx, r.orderKey, goredis.Z{Score: float64(seq), Member: c.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

func (r *CoffeeRedis) DeleteByID(ctx context.Context, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HDel(ctx, r.hashKey, id)
		p.ZRem(ctx, r.orderKey, id)
		return nil
	})
	return err
}

func (r *CoffeeRedis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
