package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitPerIP(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	send := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/enquiry", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler(w, r, nil)
		return w.Code
	}

	// the burst passes, the next request is shed
	for i := 0; i < 3; i++ {
		if code := send("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, code)
		}
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("over-burst request: status = %d, want 429", code)
	}

	// buckets are per client, another IP is unaffected
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second client: status = %d", code)
	}
}
