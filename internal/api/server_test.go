package api

import (
	"testing"
	"time"
)

// TestRateLimiterAllowsWithinLimit tests requests inside the window limit
func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("/api/trades") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	if limiter.Allow("/api/trades") {
		t.Error("Fourth request should be rejected")
	}
}

// TestRateLimiterIsolatesKeys verifies limits are tracked per key
func TestRateLimiterIsolatesKeys(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	if !limiter.Allow("/api/trades") {
		t.Fatal("First request should be allowed")
	}
	if limiter.Allow("/api/trades") {
		t.Error("Second request on the same key should be rejected")
	}
	if !limiter.Allow("/api/dashboard") {
		t.Error("Request on a different key should be allowed")
	}
}

// TestRateLimiterWindowExpiry verifies old requests fall out of the window
func TestRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Millisecond)

	if !limiter.Allow("/api/trades") {
		t.Fatal("First request should be allowed")
	}
	if limiter.Allow("/api/trades") {
		t.Fatal("Second immediate request should be rejected")
	}

	time.Sleep(20 * time.Millisecond)

	if !limiter.Allow("/api/trades") {
		t.Error("Request after the window should be allowed")
	}
}
