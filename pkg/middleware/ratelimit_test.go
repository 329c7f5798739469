package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLimitedHandler(t *testing.T, limit int, trusted []string) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	proxies, err := ParseTrustedProxies(trusted)
	if err != nil {
		t.Fatalf("ParseTrustedProxies failed: %v", err)
	}
	limiter := NewRateLimiter(client, limit, time.Minute, proxies)
	return limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})), mr
}

func limitedRequest(remoteAddr, forwardedFor string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/leaders", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	return req
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	handler, mr := newLimitedHandler(t, 3, nil)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, limitedRequest("203.0.113.7:5000", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
		if got, want := rec.Header().Get("X-RateLimit-Remaining"), fmt.Sprint(2-i); got != want {
			t.Errorf("Request %d: expected remaining %s, got %s", i+1, want, got)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, limitedRequest("203.0.113.7:5000", ""))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "3" {
		t.Errorf("Expected limit header 3, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if !mr.Exists("ratelimit:203.0.113.7") {
		t.Error("Expected the window to be keyed by client address")
	}

	// Another client has its own window
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, limitedRequest("203.0.113.8:5000", ""))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected a different client to pass, got %d", rec.Code)
	}
}

func TestRateLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	handler, _ := newLimitedHandler(t, 2, []string{"10.0.0.0/8"})

	var last int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, limitedRequest("203.0.113.7:5000", fmt.Sprintf("198.51.100.%d", i)))
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("Expected rotating X-Forwarded-For to stay limited, got %d", last)
	}
}

func TestRateLimiterClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.1"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies failed: %v", err)
	}
	rl := NewRateLimiter(nil, 1, time.Minute, proxies)

	testCases := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		want         string
	}{
		{"NoHeader", "203.0.113.7:5000", "", "203.0.113.7"},
		{"UntrustedPeer", "203.0.113.7:5000", "198.51.100.1", "203.0.113.7"},
		{"TrustedPeer", "10.1.2.3:5000", "198.51.100.1", "198.51.100.1"},
		{"SpoofedLeftmost", "10.1.2.3:5000", "1.2.3.4, 198.51.100.1", "198.51.100.1"},
		{"TrustedChain", "10.1.2.3:5000", "198.51.100.1, 192.168.1.1", "198.51.100.1"},
		{"TrustedPeerNoHeader", "10.1.2.3:5000", "", "10.1.2.3"},
		{"GarbageHop", "10.1.2.3:5000", "not-an-ip", "10.1.2.3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rl.clientIP(limitedRequest(tc.remoteAddr, tc.forwardedFor)); got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseTrustedProxiesRejectsGarbage(t *testing.T) {
	if _, err := ParseTrustedProxies([]string{"10.0.0.0/8", "proxy.local"}); err == nil {
		t.Error("Expected an error for a non-address entry")
	}
}
