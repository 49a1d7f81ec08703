package client

import (
	"context"
	"sync"
)

// State is the lifecycle of a query: Idle → Loading → (Success |
// Error). Success may go back to Loading for a background refetch
// without passing through Idle; Error offers Refetch.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// Snapshot is one observable point of a query's lifecycle. During a
// background refetch State is Loading while Data still holds the stale
// value, which is what a list page renders behind its spinner.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Query is a cached fetch of one endpoint + filter tuple.
type Query[T any] struct {
	client *Client
	entity string
	path   string
	params Params

	mu    sync.Mutex
	state State
	data  T
	err   error
}

func NewQuery[T any](c *Client, entity, path string, params Params) *Query[T] {
	if params == nil {
		params = Params{}
	}
	return &Query[T]{client: c, entity: entity, path: path, params: params}
}

// Fetch resolves the query through the cache. A fresh cache entry is
// decoded without touching the network; a stale entry is served
// immediately while a background refetch updates it; a miss fetches
// synchronously.
func (q *Query[T]) Fetch(ctx context.Context) Snapshot[T] {
	key := cacheKey(q.entity, q.path, q.params)

	entry, ok, fresh := q.client.cache.get(key)
	if ok {
		data, err := decodeData[T](entry.payload)
		if err == nil {
			q.mu.Lock()
			q.data, q.err = data, nil
			if fresh {
				q.state = Success
			} else {
				q.state = Loading // stale-while-revalidate
			}
			snap := q.snapshotLocked()
			q.mu.Unlock()

			if !fresh {
				go q.refetch(context.WithoutCancel(ctx), key)
			}
			return snap
		}
		// A corrupt cache entry falls through to a normal fetch.
	}

	q.mu.Lock()
	q.state = Loading
	q.mu.Unlock()
	q.refetch(ctx, key)
	return q.Snapshot()
}

// Refetch is the manual retry exposed from the error state.
func (q *Query[T]) Refetch(ctx context.Context) Snapshot[T] {
	q.mu.Lock()
	q.state = Loading
	q.mu.Unlock()
	q.refetch(ctx, cacheKey(q.entity, q.path, q.params))
	return q.Snapshot()
}

func (q *Query[T]) refetch(ctx context.Context, key string) {
	payload, err := q.client.get(ctx, q.path, q.params)
	if err != nil {
		q.mu.Lock()
		// Keep the last good data; only the state flips to Error.
		q.state = Error
		q.err = err
		q.mu.Unlock()
		return
	}

	data, err := decodeData[T](payload)
	if err != nil {
		q.mu.Lock()
		q.state = Error
		q.err = err
		q.mu.Unlock()
		return
	}

	q.client.cache.put(key, payload)
	q.mu.Lock()
	q.state = Success
	q.data = data
	q.err = nil
	q.mu.Unlock()
}

func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *Query[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{State: q.state, Data: q.data, Err: q.err}
}
