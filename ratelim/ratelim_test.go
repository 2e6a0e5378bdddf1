package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitBurstThenReject(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	var last int
	for i := 0; i < 15; i++ {
		r := httptest.NewRequest("GET", "/api/places", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler(w, r, nil)
		last = w.Code
		if i < 10 && last != http.StatusOK {
			t.Fatalf("request %d within burst got %d", i+1, last)
		}
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("request past burst got %d, want 429", last)
	}
}

func TestLimitPerAddress(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// Exhaust one address.
	for i := 0; i < 11; i++ {
		r := httptest.NewRequest("GET", "/api/places", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		handler(httptest.NewRecorder(), r, nil)
	}

	// A different address is unaffected.
	r := httptest.NewRequest("GET", "/api/places", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Errorf("fresh address got %d, want 200", w.Code)
	}
}
