package blogs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradbridge/models"
	"gradbridge/store"

	"github.com/julienschmidt/httprouter"
)

func newTestStore(t *testing.T) *store.MemStore {
	t.Helper()
	mem := store.NewMemStore()
	store.DB = mem
	return mem
}

func seedBlog(t *testing.T, mem *store.MemStore, id, slug, title string, active bool) {
	t.Helper()
	err := mem.CreateBlog(context.Background(), models.Blog{
		ID: id, Slug: slug, Title: title, Content: "<p>body</p>", IsActive: active,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateBlogSanitizesContent(t *testing.T) {
	mem := newTestStore(t)

	body, _ := json.Marshal(map[string]any{
		"title":   "IELTS Preparation Tips",
		"content": `<p>Practice daily.</p><script>alert("x")</script><img src=x onerror="steal()">`,
	})
	w := httptest.NewRecorder()
	CreateBlog(w, httptest.NewRequest(http.MethodPost, "/api/admin/blogs", bytes.NewReader(body)), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	created, err := mem.GetBlogBySlug(context.Background(), "ielts-preparation-tips", false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(created.Content, "<script") || strings.Contains(created.Content, "onerror") {
		t.Errorf("stored content must be sanitized, got %q", created.Content)
	}
	if !strings.Contains(created.Content, "<p>Practice daily.</p>") {
		t.Errorf("benign formatting should survive, got %q", created.Content)
	}
}

func TestGetBlogBumpsViews(t *testing.T) {
	mem := newTestStore(t)
	seedBlog(t, mem, "b-1", "visa-guide", "Visa Guide", true)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		GetBlog(w, httptest.NewRequest(http.MethodGet, "/api/blogs/visa-guide", nil),
			httprouter.Params{{Key: "slug", Value: "visa-guide"}})
		if w.Code != http.StatusOK {
			t.Fatalf("read %d: status = %d", i, w.Code)
		}
	}

	after, err := mem.GetBlogByID(context.Background(), "b-1")
	if err != nil {
		t.Fatal(err)
	}
	if after.Views != 3 {
		t.Errorf("views = %d, want 3", after.Views)
	}
}

func TestGetBlogsActiveOnly(t *testing.T) {
	mem := newTestStore(t)
	seedBlog(t, mem, "b-1", "visa-guide", "Visa Guide", true)
	seedBlog(t, mem, "b-2", "draft", "Draft", false)

	w := httptest.NewRecorder()
	GetBlogs(w, httptest.NewRequest(http.MethodGet, "/api/blogs", nil), nil)

	var resp struct {
		Data store.Page[models.Blog] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Total != 1 || resp.Data.Items[0].Slug != "visa-guide" {
		t.Errorf("public list should only carry active articles, got %+v", resp.Data)
	}
}

func TestInactiveBlogPublicVsAdmin(t *testing.T) {
	mem := newTestStore(t)
	seedBlog(t, mem, "b-2", "draft", "Draft", false)

	w := httptest.NewRecorder()
	GetBlog(w, httptest.NewRequest(http.MethodGet, "/api/blogs/draft", nil),
		httprouter.Params{{Key: "slug", Value: "draft"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("public detail of a draft: status = %d, want 404", w.Code)
	}

	w2 := httptest.NewRecorder()
	AdminGetBlog(w2, httptest.NewRequest(http.MethodGet, "/api/admin/blogs/draft", nil),
		httprouter.Params{{Key: "slug", Value: "draft"}})
	if w2.Code != http.StatusOK {
		t.Errorf("admin detail of a draft: status = %d, want 200", w2.Code)
	}

	after, err := mem.GetBlogByID(context.Background(), "b-2")
	if err != nil {
		t.Fatal(err)
	}
	if after.Views != 0 {
		t.Errorf("a 404 read must not bump the counter, views = %d", after.Views)
	}
}

func TestEditBlogDuplicateSlug(t *testing.T) {
	mem := newTestStore(t)
	seedBlog(t, mem, "b-1", "visa-guide", "Visa Guide", true)
	seedBlog(t, mem, "b-2", "sop-tips", "SOP Tips", true)

	body, _ := json.Marshal(map[string]any{"slug": "visa-guide"})
	w := httptest.NewRecorder()
	EditBlog(w, httptest.NewRequest(http.MethodPut, "/api/admin/blogs/b-2", bytes.NewReader(body)),
		httprouter.Params{{Key: "id", Value: "b-2"}})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	after, err := mem.GetBlogByID(context.Background(), "b-2")
	if err != nil {
		t.Fatal(err)
	}
	if after.Slug != "sop-tips" {
		t.Errorf("slug = %q, must be unchanged after a conflict", after.Slug)
	}
}
