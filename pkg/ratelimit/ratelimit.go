// Package ratelimit — sliding window tabanlı in-memory rate limiting.
//
// İki kullanım yeri vardır:
//   - Login: IP bazlı brute-force koruması (cooldown = kalan window süresi).
//   - Mesaj: kullanıcı bazlı spam koruması (ayrı, daha uzun cooldown süresi).
//
// Neden in-memory?
// - SQLite'a her request'te yazma gereksiz I/O + contention yaratır.
// - Tek instance deploy için Redis bağımlılığı eklemeye gerek yok.
// - sync.Mutex ile thread-safe.
//
// Neden ayrı paket?
// handlers ↔ middleware arasında import cycle oluşmaması için
// rate limiter bağımsız bir paket olarak konumlandırıldı.
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket, bir key (IP veya userID) için istek sayacı tutar.
//
// İki durumlu:
// 1. Normal mod: count artırılır, windowStart bazlı pencere kontrolü.
// 2. Cooldown mod: cooldownUntil > now → tüm istekler reddedilir.
type bucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// Limiter, key bazlı sliding window rate limiter.
//
// maxRequests: Bir window içinde izin verilen maksimum istek sayısı.
// window: Sayaç pencere süresi.
// cooldown: Limit aşıldığında uygulanan ceza süresi. 0 verilirse ceza,
// pencerenin kalan süresi kadardır (login davranışı).
//
// Kullanım:
//
//	login := ratelimit.New(5, 2*time.Minute, 0)
//	messages := ratelimit.New(5, 5*time.Second, 15*time.Second)
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxRequests int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// New, yeni bir Limiter oluşturur ve arka plan temizleme goroutine'ini
// başlatır. Kullanım bittiğinde Stop() çağrılmalıdır.
func New(maxRequests int, window, cooldown time.Duration) *Limiter {
	l := &Limiter{
		buckets:     make(map[string]*bucket),
		maxRequests: maxRequests,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	go l.cleanupLoop()
	return l
}

// Allow, key için bir istek hakkı olup olmadığını kontrol eder.
// Hak varsa sayacı artırır ve true döner; limit aşılmışsa false.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if now.Before(b.cooldownUntil) {
		return false
	}

	// Pencere süresi geçmişse yeni pencere başlat
	if now.Sub(b.windowStart) > l.window {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	if b.count >= l.maxRequests {
		if l.cooldown > 0 {
			b.cooldownUntil = now.Add(l.cooldown)
		}
		return false
	}

	b.count++
	return true
}

// Reset, key'in sayacını sıfırlar — başarılı login sonrası çağrılır.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Stop, arka plan temizleme goroutine'ini durdurur.
func (l *Limiter) Stop() {
	close(l.stopCleanup)
}

// cleanupLoop, süresi dolmuş bucket'ları periyodik temizler (memory leak engeli).
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, b := range l.buckets {
		if now.Sub(b.windowStart) > l.window && now.After(b.cooldownUntil) {
			delete(l.buckets, key)
		}
	}
}

// ClientIP, X-Forwarded-For / X-Real-IP header'larını dikkate alarak
// istemci IP'sini çıkarır. Reverse proxy arkasında RemoteAddr proxy'nin
// adresi olur — gerçek IP header'dadır.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// İlk IP gerçek istemcidir, sonrakiler proxy zinciri
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
