package client

import (
	"context"
	"strconv"
	"sync"
)

// Pager accumulates an infinite-scroll list. Pages append to a growing
// sequence de-duplicated by entity id, so a retried or overlapping page
// never yields the same item twice. Only one page request may be in
// flight at a time; results arriving after Close are discarded.
type Pager[T any] struct {
	client *Client
	entity string
	path   string
	params Params
	limit  int
	idOf   func(T) string

	mu       sync.Mutex
	items    []T
	seen     map[string]bool
	offset   int
	total    int64
	fetched  bool
	done     bool
	inFlight bool
	closed   bool
	err      error
}

func NewPager[T any](c *Client, entity, path string, params Params, limit int, idOf func(T) string) *Pager[T] {
	if params == nil {
		params = Params{}
	}
	if limit <= 0 {
		limit = 10
	}
	return &Pager[T]{
		client: c,
		entity: entity,
		path:   path,
		params: params,
		limit:  limit,
		idOf:   idOf,
		seen:   make(map[string]bool),
	}
}

// LoadMore fetches the next page and appends it. Returns false without
// issuing a request when a page is already in flight, the pager is
// closed, or every item has been loaded.
func (p *Pager[T]) LoadMore(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight || p.closed || (p.fetched && !p.hasMoreLocked()) {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	offset := p.offset
	p.mu.Unlock()

	params := Params{}
	for k, v := range p.params {
		params[k] = v
	}
	params["offset"] = strconv.Itoa(offset)
	params["limit"] = strconv.Itoa(p.limit)

	payload, err := p.client.get(ctx, p.path, params)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if p.closed {
		return false // requester is gone, drop the result
	}
	if err != nil {
		p.err = err
		return false
	}

	page, err := decodeData[ListData[T]](payload)
	if err != nil {
		p.err = err
		return false
	}

	p.err = nil
	p.fetched = true
	p.total = page.Total
	added := 0
	for _, item := range page.Items {
		id := p.idOf(item)
		if p.seen[id] {
			continue
		}
		p.seen[id] = true
		p.items = append(p.items, item)
		added++
	}
	// An empty page, or a later page that only re-serves known items,
	// means the list moved under us; the total claim can no longer be
	// trusted to terminate paging.
	if len(page.Items) == 0 || (offset > 0 && added == 0) {
		p.done = true
	}
	p.offset += p.limit
	return true
}

// HasMore reports whether another page exists. Before the first load it
// is optimistically true.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && p.hasMoreLocked()
}

func (p *Pager[T]) hasMoreLocked() bool {
	if !p.fetched {
		return true
	}
	if p.done {
		return false
	}
	return int64(len(p.items)) < p.total
}

// Items returns the accumulated sequence.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close marks the requester gone; an in-flight result will be dropped
// instead of applied.
func (p *Pager[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}
