// Package dataloader batches the fetches of lazy references made while a
// GraphQL request resolves.
//
// Define a batch function loading documents by key:
//
//	func publishers(ctx context.Context, ids []string) ([]*Publisher, []error) {
//	    docs, err := store.Publishers(ctx, ids)
//	    if err != nil {
//	        return nil, []error{err}
//	    }
//	    return dataloader.OrderByKeys(ids, docs, func(p *Publisher) string { return p.ID })
//	}
//
// and store references instead of documents in lazy-reference fields:
//
//	loader := dataloader.New(publishers)
//	editor.Company = loader.Ref(editor.CompanyID)
//
// Resolving the field fetches the document through the loader. Keys loaded
// together with LoadMany, or already cached, are not fetched again.
//
// # Request scope
//
// Loaders cache for their lifetime and should be created per request:
//
//	ctx := dataloader.WithLoaders(ctx, &Loaders{Publisher: dataloader.New(publishers)})
//	loaders := dataloader.For[*Loaders](ctx)
package dataloader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/syssam/docgraph/contrib/graphql"
)

// ErrNotFound is returned when an entity is not found in a batch result.
var ErrNotFound = errors.New("dataloader: entity not found")

// KeyFunc extracts a key from an entity.
type KeyFunc[K comparable, V any] func(V) K

// BatchFunc loads a batch of entities by their keys. It returns one value
// per key, in key order, and either one error per key or a single error
// for the whole batch.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, []error)

// OrderByKeys reorders entities to match the order of requested keys.
// Missing entities are represented as zero values with corresponding errors.
func OrderByKeys[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) ([]V, []error) {
	lookup := make(map[K]V, len(values))
	for _, v := range values {
		lookup[keyFn(v)] = v
	}
	result := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		if v, ok := lookup[key]; ok {
			result[i] = v
		} else {
			errs[i] = ErrNotFound
		}
	}
	return result, errs
}

type result[V any] struct {
	value V
	err   error
}

// Loader loads and caches entities by key. Concurrent loads of the same
// key share one call of the batch function. It is safe for concurrent use.
type Loader[K comparable, V any] struct {
	batch BatchFunc[K, V]
	group singleflight.Group
	mu    sync.Mutex
	cache map[K]result[V]
	calls map[K]string
}

// New returns a loader calling fn for uncached keys.
func New[K comparable, V any](fn BatchFunc[K, V]) *Loader[K, V] {
	return &Loader[K, V]{
		batch: fn,
		cache: make(map[K]result[V]),
		calls: make(map[K]string),
	}
}

// Load returns the entity of key. A shared call runs without the
// cancelation of the caller that started it; each caller stops waiting
// when its own ctx is done.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	var zero V
	if r, ok := l.cached(key); ok {
		return r.value, r.err
	}
	ch := l.group.DoChan(l.callKey(key), func() (any, error) {
		if r, ok := l.cached(key); ok {
			return r, nil
		}
		rs, err := l.fetch(context.WithoutCancel(ctx), []K{key})
		if err != nil {
			return nil, err
		}
		return rs[0], nil
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		r := res.Val.(result[V])
		return r.value, r.err
	}
}

// callKey returns the singleflight key of key. Keys are numbered in the
// order they are first loaded, so distinct keys never share a call.
func (l *Loader[K, V]) callKey(key K) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	id, ok := l.calls[key]
	if !ok {
		id = strconv.Itoa(len(l.calls))
		l.calls[key] = id
	}
	return id
}

// LoadMany returns the entities of keys, fetching the uncached keys in a
// single batch.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) ([]V, []error) {
	values := make([]V, len(keys))
	errs := make([]error, len(keys))
	var (
		missing []K
		index   = make(map[K][]int)
	)
	for i, key := range keys {
		if r, ok := l.cached(key); ok {
			values[i], errs[i] = r.value, r.err
			continue
		}
		if _, ok := index[key]; !ok {
			missing = append(missing, key)
		}
		index[key] = append(index[key], i)
	}
	if len(missing) == 0 {
		return values, errs
	}
	rs, err := l.fetch(ctx, missing)
	for j, key := range missing {
		for _, i := range index[key] {
			if err != nil {
				errs[i] = err
				continue
			}
			values[i], errs[i] = rs[j].value, rs[j].err
		}
	}
	return values, errs
}

// fetch calls the batch function and caches the per-key results. A batch
// error is returned without caching.
func (l *Loader[K, V]) fetch(ctx context.Context, keys []K) ([]result[V], error) {
	values, errs := l.batch(ctx, keys)
	if len(values) != len(keys) {
		if len(errs) == 1 && errs[0] != nil {
			return nil, errs[0]
		}
		return nil, fmt.Errorf("dataloader: batch returned %d values for %d keys", len(values), len(keys))
	}
	rs := make([]result[V], len(keys))
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, key := range keys {
		rs[i] = result[V]{value: values[i]}
		if i < len(errs) {
			rs[i].err = errs[i]
		}
		l.cache[key] = rs[i]
	}
	return rs, nil
}

func (l *Loader[K, V]) cached(key K) (result[V], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.cache[key]
	return r, ok
}

// Prime adds a known entity to the cache.
func (l *Loader[K, V]) Prime(key K, value V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[key] = result[V]{value: value}
}

// PrimeMany adds known entities to the cache.
func (l *Loader[K, V]) PrimeMany(values []V, keyFn KeyFunc[K, V]) {
	for _, v := range values {
		l.Prime(keyFn(v), v)
	}
}

// Clear removes a key from the cache.
func (l *Loader[K, V]) Clear(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, key)
}

// Ref returns a lazy reference to the entity of key.
func (l *Loader[K, V]) Ref(key K) *Ref[K, V] {
	return &Ref[K, V]{loader: l, Key: key}
}

// Ref is a lazy reference fetched through a loader.
type Ref[K comparable, V any] struct {
	loader *Loader[K, V]
	Key    K
}

// Fetch loads the referenced entity.
func (r *Ref[K, V]) Fetch(ctx context.Context) (any, error) {
	v, err := r.loader.Load(ctx, r.Key)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var _ graphql.LazyReference = (*Ref[string, any])(nil)

// ctxKey is the context key for storing loaders.
type ctxKey struct{}

// WithLoaders injects the loaders of a request into the context.
func WithLoaders[T any](ctx context.Context, loaders T) context.Context {
	return context.WithValue(ctx, ctxKey{}, loaders)
}

// For extracts the loaders of a request from the context.
func For[T any](ctx context.Context) T {
	v, _ := ctx.Value(ctxKey{}).(T)
	return v
}
