package ratelimit

import (
	"net/http"
	"testing"
	"time"
)

func TestAllowWithinWindow(t *testing.T) {
	l := New(3, time.Minute, 0)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("user1") {
			t.Fatalf("request %d unexpectedly blocked", i)
		}
	}
	if l.Allow("user1") {
		t.Error("expected 4th request to be blocked")
	}

	// Farklı key'ler bağımsız sayılır
	if !l.Allow("user2") {
		t.Error("expected different key to be allowed")
	}
}

func TestResetClearsCounter(t *testing.T) {
	l := New(2, time.Minute, 0)
	defer l.Stop()

	l.Allow("ip1")
	l.Allow("ip1")
	if l.Allow("ip1") {
		t.Fatal("expected limit to be hit")
	}

	l.Reset("ip1")
	if !l.Allow("ip1") {
		t.Error("expected request after reset to be allowed")
	}
}

func TestWindowExpiryStartsFresh(t *testing.T) {
	l := New(2, 50*time.Millisecond, 0)
	defer l.Stop()

	l.Allow("user1")
	l.Allow("user1")
	if l.Allow("user1") {
		t.Fatal("expected limit to be hit")
	}

	time.Sleep(60 * time.Millisecond)
	if !l.Allow("user1") {
		t.Error("expected fresh window after expiry")
	}
}

func TestCooldownBlocksPastWindow(t *testing.T) {
	l := New(1, 20*time.Millisecond, 200*time.Millisecond)
	defer l.Stop()

	l.Allow("user1")
	if l.Allow("user1") {
		t.Fatal("expected limit to be hit")
	}

	// Pencere geçti ama cooldown sürüyor
	time.Sleep(60 * time.Millisecond)
	if l.Allow("user1") {
		t.Error("expected cooldown to keep blocking after window expiry")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.1:54321",
			want:       "192.0.2.1",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2, 10.0.0.3"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodPost, "/api/auth/login", nil)
			if err != nil {
				t.Fatalf("NewRequest failed: %v", err)
			}
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
