package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func hit(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	h := rl.Limit(5)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "1.2.3.4:1234").Code, "request %d", i)
	}

	rec := hit(h, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"detail":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_PortDoesNotSplitClient(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	h := rl.Limit(2)(okHandler())

	hit(h, "1.1.1.1:1000")
	hit(h, "1.1.1.1:1001")

	assert.Equal(t, http.StatusTooManyRequests, hit(h, "1.1.1.1:1002").Code)
	assert.Equal(t, http.StatusOK, hit(h, "2.2.2.2:1000").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(time.Minute, clock.Now)
	defer rl.Stop()
	h := rl.Limit(60)(okHandler())

	for i := 0; i < 60; i++ {
		hit(h, "3.3.3.3:1")
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "3.3.3.3:1").Code)

	clock.Advance(1100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hit(h, "3.3.3.3:1").Code)
}

func TestRateLimiter_SweepRemovesIdleBuckets(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(time.Hour, clock.Now)
	defer rl.Stop()
	h := rl.Limit(10)(okHandler())

	hit(h, "4.4.4.4:1")
	clock.Advance(bucketIdleTTL + time.Second)
	hit(h, "5.5.5.5:1")
	rl.sweep(clock.Now())

	_, idle := rl.buckets.Load("4.4.4.4")
	_, fresh := rl.buckets.Load("5.5.5.5")
	assert.False(t, idle)
	assert.True(t, fresh)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(10 * time.Millisecond)
	rl.Stop()
	rl.Stop()
}
