package enquiry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gradbridge/models"
	"gradbridge/store"
	"gradbridge/utils"
)

func submit(t *testing.T, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	Submit(w, httptest.NewRequest(http.MethodPost, "/api/enquiries", bytes.NewReader(raw)), nil)
	return w
}

func TestSubmitEnquiry(t *testing.T) {
	store.DB = store.NewMemStore()

	// SMTP is unconfigured in tests: the enquiry is stored and the
	// notification skipped, which is still a success for the visitor.
	w := submit(t, map[string]any{
		"name":   "Priya Sharma",
		"email":  "priya@example.com",
		"number": "+91 98765 43210",
		"city":   "Pune",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var env utils.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success {
		t.Error("expected a success envelope")
	}
}

func TestSubmitEnquiryValidation(t *testing.T) {
	store.DB = store.NewMemStore()

	w := submit(t, map[string]any{"email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var env utils.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"name", "email", "number", "city"} {
		if !strings.Contains(env.Error, want) {
			t.Errorf("violations should mention %q, got %q", want, env.Error)
		}
	}
}

func TestSubmitEnquiryRequiresCity(t *testing.T) {
	store.DB = store.NewMemStore()

	w := submit(t, map[string]any{
		"name":   "Priya Sharma",
		"email":  "priya@example.com",
		"number": "+91 98765 43210",
		"city":   "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var env utils.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Error, "city is required") {
		t.Errorf("error = %q, want a city violation", env.Error)
	}
}

func TestSubmitEnquiryBadBody(t *testing.T) {
	store.DB = store.NewMemStore()

	w := httptest.NewRecorder()
	Submit(w, httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader("{not json")), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMailerUnconfigured(t *testing.T) {
	m := &Mailer{host: "smtp.example.com", port: "587"}
	if m.IsConfigured() {
		t.Error("a mailer without credentials must report unconfigured")
	}
	if err := m.SendEnquiry(models.Enquiry{Name: "Test"}); err == nil {
		t.Error("sending without configuration must fail")
	}
}
