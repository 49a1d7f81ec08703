package colleges

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
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
)

func newTestStore(t *testing.T) *store.MemStore {
	t.Helper()
	mem := store.NewMemStore()
	store.DB = mem
	return mem
}

func seedCountry(t *testing.T, mem *store.MemStore, id, slug, name string, active bool) {
	t.Helper()
	err := mem.CreateCountry(context.Background(), models.Country{
		ID: id, Slug: slug, Name: name, IsActive: active,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed country: %v", err)
	}
}

func seedCollege(t *testing.T, mem *store.MemStore, id, slug, name, countryID string, active bool) {
	t.Helper()
	err := mem.CreateCollege(context.Background(), models.College{
		ID: id, Slug: slug, Name: name, CountryRef: countryID, IsActive: active,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed college: %v", err)
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.Envelope {
	t.Helper()
	var env utils.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func validCreateBody() map[string]any {
	return map[string]any{
		"name":        "Technical University of Munich",
		"country_ref": "germany",
		"duration":    "4 years",
		"exams":       []string{"IELTS", "TestDaF"},
		"ranking":     map[string]any{"country_ranking": "1", "world_ranking": "30"},
		"overview":    map[string]any{"description": "A leading research university."},
		"key_highlights": map[string]any{
			"features": []string{"No tuition fees", "English-taught programs"},
		},
		"why_choose_us": map[string]any{
			"features": []map[string]any{{"title": "Research output"}},
		},
		"admission_process":  map[string]any{"steps": []string{"Apply via uni-assist"}},
		"documents_required": map[string]any{"documents": []string{"Transcript"}},
		"fees_structure": map[string]any{
			"courses": []map[string]any{{"course_name": "BSc Informatics", "annual_tuition_fee": "EUR 300"}},
		},
		"campus_highlights": map[string]any{"highlights": []string{"Garching campus"}},
	}
}

func postJSON(t *testing.T, handler httprouter.Handle, target string, body any, ps httprouter.Params) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler(w, r, ps)
	return w
}

func TestCreateCollegeRoundTrip(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)

	w := postJSON(t, CreateCollege, "/api/admin/colleges", validCreateBody(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	created, err := mem.GetCollegeBySlug(context.Background(), "technical-university-of-munich", true)
	if err != nil {
		t.Fatalf("created college not found by derived slug: %v", err)
	}
	if created.CountryRef != "c-de" {
		t.Errorf("country slug was not resolved to its id, got %q", created.CountryRef)
	}

	// public detail carries the resolved country
	r := httptest.NewRequest(http.MethodGet, "/api/colleges/technical-university-of-munich", nil)
	w2 := httptest.NewRecorder()
	GetCollege(w2, r, httprouter.Params{{Key: "slug", Value: "technical-university-of-munich"}})
	if w2.Code != http.StatusOK {
		t.Fatalf("detail status = %d", w2.Code)
	}
	var detail struct {
		Data models.College `json:"data"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Data.Country == nil || detail.Data.Country.Name != "Germany" {
		t.Errorf("expected resolved country Germany, got %+v", detail.Data.Country)
	}
}

func TestCreateCollegeUnknownCountry(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)
	seedCountry(t, mem, "c-fr", "france", "France", true)

	body := validCreateBody()
	body["country_ref"] = "atlantis"

	w := postJSON(t, CreateCollege, "/api/admin/colleges", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !strings.Contains(env.Error, "atlantis") {
		t.Errorf("error should name the bad slug, got %q", env.Error)
	}
	if !strings.Contains(env.Error, "germany") || !strings.Contains(env.Error, "france") {
		t.Errorf("error should list the valid slugs, got %q", env.Error)
	}

	page, err := mem.ListColleges(context.Background(), store.CollegeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 0 {
		t.Errorf("nothing should be written on a rejected create, found %d colleges", page.Total)
	}
}

func TestCreateCollegeValidationCollectsAll(t *testing.T) {
	newTestStore(t)

	w := postJSON(t, CreateCollege, "/api/admin/colleges", map[string]any{"name": "Incomplete"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	for _, want := range []string{"country", "overview", "admission", "campus highlight", "exam"} {
		if !strings.Contains(env.Error, want) {
			t.Errorf("violations should mention %q, got %q", want, env.Error)
		}
	}
}

func TestCreateCollegeDuplicateSlug(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)

	w := postJSON(t, CreateCollege, "/api/admin/colleges", validCreateBody(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", w.Code)
	}
	first, err := mem.GetCollegeBySlug(context.Background(), "technical-university-of-munich", false)
	if err != nil {
		t.Fatal(err)
	}

	w2 := postJSON(t, CreateCollege, "/api/admin/colleges", validCreateBody(), nil)
	if w2.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409", w2.Code)
	}

	// the original record is untouched
	again, err := mem.GetCollegeBySlug(context.Background(), "technical-university-of-munich", false)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != first.ID || !again.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("conflicting create must leave the existing college unmodified")
	}
}

func TestGetCollegesActiveOnly(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)
	seedCollege(t, mem, "col-1", "tum", "TUM", "c-de", true)
	seedCollege(t, mem, "col-2", "lmu", "LMU", "c-de", false)

	r := httptest.NewRequest(http.MethodGet, "/api/colleges", nil)
	w := httptest.NewRecorder()
	GetColleges(w, r, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Data store.Page[models.College] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Total != 1 || len(resp.Data.Items) != 1 || resp.Data.Items[0].Slug != "tum" {
		t.Errorf("public list should only carry active colleges, got %+v", resp.Data)
	}

	// admin surface sees both
	w2 := httptest.NewRecorder()
	AdminListColleges(w2, httptest.NewRequest(http.MethodGet, "/api/admin/colleges", nil), nil)
	var adminResp struct {
		Data store.Page[models.College] `json:"data"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &adminResp); err != nil {
		t.Fatal(err)
	}
	if adminResp.Data.Total != 2 {
		t.Errorf("admin list should include inactive colleges, got total %d", adminResp.Data.Total)
	}
}

func TestGetCollegesUnknownCountryFilter(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)
	seedCollege(t, mem, "col-1", "tum", "TUM", "c-de", true)

	r := httptest.NewRequest(http.MethodGet, "/api/colleges?country=narnia", nil)
	w := httptest.NewRecorder()
	GetColleges(w, r, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("an unmatched country filter is not an error, status = %d", w.Code)
	}
	var resp struct {
		Data store.Page[models.College] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Items) != 0 {
		t.Errorf("expected an empty result, got %d items", len(resp.Data.Items))
	}
}

func TestInactiveCollegeHiddenFromPublic(t *testing.T) {
	mem := newTestStore(t)
	seedCollege(t, mem, "col-2", "lmu", "LMU", "c-de", false)

	w := httptest.NewRecorder()
	GetCollege(w, httptest.NewRequest(http.MethodGet, "/api/colleges/lmu", nil),
		httprouter.Params{{Key: "slug", Value: "lmu"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("public detail of an inactive college: status = %d, want 404", w.Code)
	}

	w2 := httptest.NewRecorder()
	AdminGetCollege(w2, httptest.NewRequest(http.MethodGet, "/api/admin/colleges/lmu", nil),
		httprouter.Params{{Key: "slug", Value: "lmu"}})
	if w2.Code != http.StatusOK {
		t.Errorf("admin detail of an inactive college: status = %d, want 200", w2.Code)
	}
}

func TestRelatedColleges(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)
	seedCountry(t, mem, "c-fr", "france", "France", true)
	seedCollege(t, mem, "col-1", "tum", "TUM", "c-de", true)
	seedCollege(t, mem, "col-2", "lmu", "LMU", "c-de", true)
	seedCollege(t, mem, "col-3", "rwth", "RWTH Aachen", "c-de", true)
	seedCollege(t, mem, "col-4", "heidelberg", "Heidelberg", "c-de", false)
	seedCollege(t, mem, "col-5", "sorbonne", "Sorbonne", "c-fr", true)

	w := httptest.NewRecorder()
	GetRelatedColleges(w, httptest.NewRequest(http.MethodGet, "/api/colleges/tum/related", nil),
		httprouter.Params{{Key: "slug", Value: "tum"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Items []models.College `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Items) != 2 {
		t.Fatalf("expected the 2 other active German colleges, got %d", len(resp.Data.Items))
	}
	for _, c := range resp.Data.Items {
		if c.Slug == "tum" {
			t.Error("related list must exclude the source college")
		}
		if c.Slug == "sorbonne" {
			t.Error("related list must stay within the same country")
		}
		if c.Slug == "heidelberg" {
			t.Error("related list must exclude inactive colleges")
		}
	}
}

func TestEditCollegeRevalidatesMergedDocument(t *testing.T) {
	mem := newTestStore(t)
	seedCountry(t, mem, "c-de", "germany", "Germany", true)

	w := postJSON(t, CreateCollege, "/api/admin/colleges", validCreateBody(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	created, err := mem.GetCollegeBySlug(context.Background(), "technical-university-of-munich", false)
	if err != nil {
		t.Fatal(err)
	}

	// wiping the admission steps must fail the merged document
	w2 := postJSON(t, EditCollege, "/api/admin/colleges/"+created.ID,
		map[string]any{"admission_process": map[string]any{"steps": []string{}}},
		httprouter.Params{{Key: "id", Value: created.ID}})
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("edit wiping a required section: status = %d, want 400", w2.Code)
	}

	// a benign partial update goes through and leaves the rest intact
	w3 := postJSON(t, EditCollege, "/api/admin/colleges/"+created.ID,
		map[string]any{"duration": "3 years"},
		httprouter.Params{{Key: "id", Value: created.ID}})
	if w3.Code != http.StatusOK {
		t.Fatalf("partial edit: status = %d, body %s", w3.Code, w3.Body.String())
	}
	after, err := mem.GetCollegeByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Duration != "3 years" {
		t.Errorf("duration = %q, want updated value", after.Duration)
	}
	if after.Overview == nil || after.Overview.Description == "" {
		t.Error("untouched sections must survive a partial update")
	}
}
