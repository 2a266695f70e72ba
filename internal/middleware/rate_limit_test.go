package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow("10.0.0.1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Client 1 request %d should be allowed", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("Client 1 should be rate limited")
	}

	// Client 2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.2") {
			t.Errorf("Client 2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_GetStateUnknownClient(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 7)
	defer rl.Stop()

	remaining, reset := rl.GetState("10.0.0.9")
	if remaining != 7 {
		t.Errorf("Expected full burst of 7 remaining, got %d", remaining)
	}
	if !reset.After(time.Now()) {
		t.Error("Expected reset time in the future")
	}
}

func TestRateLimiter_EvictStale(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 2)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if rl.Size() != 2 {
		t.Fatalf("Expected 2 tracked clients, got %d", rl.Size())
	}

	rl.evictStale(time.Now().Add(LimiterTTL + time.Second))
	if rl.Size() != 0 {
		t.Errorf("Expected stale limiters to be evicted, %d left", rl.Size())
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 2)
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 2)
	defer rl.Stop()

	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	var rec *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/1/stats/weeks", nil)
		req.RemoteAddr = "192.0.2.10:4711"
		rec = httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if i < 2 && rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
		if i < 2 && rec.Header().Get("X-RateLimit-Limit") != "1" {
			t.Errorf("Request %d: expected X-RateLimit-Limit 1, got %q", i+1, rec.Header().Get("X-RateLimit-Limit"))
		}
	}

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var problem problemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != errorTypeRateLimit {
		t.Errorf("Expected type %s, got %s", errorTypeRateLimit, problem.Type)
	}
	if problem.Instance != "/api/v1/budgets/1/stats/weeks" {
		t.Errorf("Expected instance to be the request path, got %s", problem.Instance)
	}
}

func TestRateLimitMiddleware_ClientsAreIndependent(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	for _, addr := range []string{"192.0.2.1:1000", "192.0.2.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts/1/statistics", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Client %s: expected status 200, got %d", addr, rec.Code)
		}
	}
}
