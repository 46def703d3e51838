// Package objectstore implements repository.CoffeeRepository on S3-compatible object storage.
// Each coffee is one JSON object under coffees/<escaped id>.json.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
	"coffeeapi/internal/storage"
)

const keyPrefix = "coffees/"

// record is the stored object body. CreatedAt gives FindAll a stable insertion order.
type record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CoffeeObjectStore persists coffees through a storage.Storage.
type CoffeeObjectStore struct {
	store storage.Storage
	now   func() time.Time
}

// NewCoffeeObjectStore creates a repository on top of the given object storage.
func NewCoffeeObjectStore(store storage.Storage) *CoffeeObjectStore {
	return &CoffeeObjectStore{store: store, now: time.Now}
}

var _ repository.CoffeeRepository = (*CoffeeObjectStore)(nil)

func objectKey(id string) string {
	return keyPrefix + url.PathEscape(id) + ".json"
}

func (r *CoffeeObjectStore) load(ctx context.Context, key string) (*record, error) {
	body, _, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	defer body.Close()

	var rec record
	if err := json.NewDecoder(body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &rec, nil
}

func (r *CoffeeObjectStore) FindAll(ctx context.Context) ([]model.Coffee, error) {
	objs, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	recs := make([]record, 0, len(objs))
	for _, o := range objs {
		rec, err := r.load(ctx, o.Key)
		if errors.Is(err, repository.ErrNotFound) {
			// deleted between List and Get
			continue
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})

	items := make([]model.Coffee, 0, len(recs))
	for _, rec := range recs {
		items = append(items, model.Coffee{ID: rec.ID, Name: rec.Name})
	}
	return items, nil
}

func (r *CoffeeObjectStore) FindByID(ctx context.Context, id string) (*model.Coffee, error) {
	rec, err := r.load(ctx, objectKey(id))
	if err != nil {
		return nil, err
	}
	return &model.Coffee{ID: rec.ID, Name: rec.Name}, nil
}

func (r *CoffeeObjectStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := r.load(ctx, objectKey(id))
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save overwrites the object, carrying over CreatedAt when the coffee already exists.
func (r *CoffeeObjectStore) Save(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	key := objectKey(c.ID)
	rec := record{ID: c.ID, Name: c.Name, CreatedAt: r.now().UTC()}

	prev, err := r.load(ctx, key)
	switch {
	case err == nil:
		rec.CreatedAt = prev.CreatedAt
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if _, err := r.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	}); err != nil {
		return nil, fmt.Errorf("put %s: %w", key, err)
	}
	return &model.Coffee{ID: rec.ID, Name: rec.Name}, nil
}

func (r *CoffeeObjectStore) DeleteByID(ctx context.Context, id string) error {
	return r.store.Delete(ctx, objectKey(id))
}

func (r *CoffeeObjectStore) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
