package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func pageBody(ids []string, total int) string {
	body := `{"success":true,"message":"ok","data":{"items":[`
	for i, id := range ids {
		if i > 0 {
			body += ","
		}
		body += `{"id":"` + id + `","slug":"` + id + `","name":"` + id + `"}`
	}
	return body + `],"total":` + strconv.Itoa(total) + `}}`
}

// pagedServer serves fixed ids in offset/limit windows, like the list
// endpoints do.
func pagedServer(t *testing.T, ids []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if offset > len(ids) {
			offset = len(ids)
		}
		end := offset + limit
		if end > len(ids) {
			end = len(ids)
		}
		w.Write([]byte(pageBody(ids[offset:end], len(ids))))
	}))
}

func TestPagerAccumulates(t *testing.T) {
	srv := pagedServer(t, []string{"a", "b", "c", "d", "e"})
	defer srv.Close()

	c := New(srv.URL)
	p := NewPager(c, "colleges", "/api/colleges", nil, 2,
		func(i item) string { return i.ID })

	if !p.HasMore() {
		t.Fatal("a pager is optimistic before the first load")
	}

	loads := 0
	for p.HasMore() {
		if !p.LoadMore(context.Background()) {
			t.Fatalf("LoadMore failed: %v", p.Err())
		}
		loads++
		if loads > 10 {
			t.Fatal("pager never exhausted")
		}
	}

	items := p.Items()
	if len(items) != 5 {
		t.Fatalf("items = %d, want 5", len(items))
	}
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		if items[i].ID != want {
			t.Errorf("items[%d] = %q, want %q", i, items[i].ID, want)
		}
	}
	if p.LoadMore(context.Background()) {
		t.Error("an exhausted pager must refuse further loads")
	}
}

func TestPagerDeduplicates(t *testing.T) {
	// every page returns the same window, as a shifting backend can
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageBody([]string{"a", "b"}, 4)))
	}))
	defer srv.Close()

	c := New(srv.URL)
	p := NewPager(c, "colleges", "/api/colleges", nil, 2,
		func(i item) string { return i.ID })

	p.LoadMore(context.Background())
	p.LoadMore(context.Background())

	if items := p.Items(); len(items) != 2 {
		t.Errorf("duplicate ids must be dropped, got %d items", len(items))
	}
	// the repeated window added nothing new, so the total claim of 4
	// can never be met and the pager must stop on its own
	if p.HasMore() {
		t.Error("a page with no new items past the head must end paging")
	}
}

func TestPagerOverlapStillExhausts(t *testing.T) {
	// a head insertion shifts the windows, so page two re-serves "a";
	// dedupe keeps the list clean but the accumulated count can then
	// never reach the claimed total
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		switch offset {
		case 0:
			w.Write([]byte(pageBody([]string{"a", "b"}, 4)))
		case 2:
			w.Write([]byte(pageBody([]string{"a", "c"}, 4)))
		default:
			w.Write([]byte(pageBody(nil, 4)))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	p := NewPager(c, "colleges", "/api/colleges", nil, 2,
		func(i item) string { return i.ID })

	loads := 0
	for p.HasMore() {
		if !p.LoadMore(context.Background()) {
			t.Fatalf("LoadMore failed: %v", p.Err())
		}
		loads++
		if loads > 5 {
			t.Fatal("pager kept fetching past the end of the list")
		}
	}

	items := p.Items()
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].ID != want {
			t.Errorf("items[%d] = %q, want %q", i, items[i].ID, want)
		}
	}
	if p.LoadMore(context.Background()) {
		t.Error("an exhausted pager must refuse further loads")
	}
}

func TestPagerSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(listBody("a")))
	}))
	defer srv.Close()

	c := New(srv.URL)
	p := NewPager(c, "colleges", "/api/colleges", nil, 2,
		func(i item) string { return i.ID })

	done := make(chan bool, 1)
	go func() { done <- p.LoadMore(context.Background()) }()
	<-started

	// a second call while the first is in flight is refused outright
	if p.LoadMore(context.Background()) {
		t.Error("overlapping LoadMore must be rejected")
	}

	close(release)
	if !<-done {
		t.Fatalf("first load failed: %v", p.Err())
	}
	if len(p.Items()) != 1 {
		t.Errorf("items = %d, want 1", len(p.Items()))
	}
}

func TestPagerCloseDropsLateResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(listBody("a")))
	}))
	defer srv.Close()

	c := New(srv.URL)
	p := NewPager(c, "colleges", "/api/colleges", nil, 2,
		func(i item) string { return i.ID })

	done := make(chan bool, 1)
	go func() { done <- p.LoadMore(context.Background()) }()
	<-started

	p.Close()
	close(release)

	if <-done {
		t.Error("a result landing after Close must be discarded")
	}
	if len(p.Items()) != 0 {
		t.Errorf("closed pager accumulated %d items", len(p.Items()))
	}
	if p.HasMore() {
		t.Error("a closed pager has nothing more to load")
	}
}
