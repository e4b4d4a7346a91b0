package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clock := &manualClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(2, time.Minute, clock)
	ana, bruno := uuid.New(), uuid.New()

	router := gin.New()
	router.POST("/transactions", func(c *gin.Context) {
		c.Set(string(UserIDKey), uuid.MustParse(c.GetHeader("X-User")))
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(user uuid.UUID) int {
		req := httptest.NewRequest(http.MethodPost, "/transactions", nil)
		req.Header.Set("X-User", user.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	steps := []struct {
		name    string
		user    uuid.UUID
		advance time.Duration
		want    int
	}{
		{name: "first request", user: ana, want: http.StatusCreated},
		{name: "second request", user: ana, want: http.StatusCreated},
		{name: "over the limit", user: ana, want: http.StatusTooManyRequests},
		{name: "other user has own window", user: bruno, want: http.StatusCreated},
		{name: "window expired", user: ana, advance: time.Minute + time.Second, want: http.StatusCreated},
	}

	for _, step := range steps {
		clock.now = clock.now.Add(step.advance)
		if got := send(step.user); got != step.want {
			t.Fatalf("%s: expected status %d, got %d", step.name, step.want, got)
		}
	}

	limiter.Reset()
	if got := send(ana); got != http.StatusCreated {
		t.Errorf("expected status %d after reset, got %d", http.StatusCreated, got)
	}
}

func TestRateLimiter_DropsExpiredWindows(t *testing.T) {
	clock := &manualClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(5, time.Minute, clock)

	for i := 0; i < 100; i++ {
		limiter.allow(uuid.NewString())
	}
	if len(limiter.entries) != 100 {
		t.Fatalf("expected 100 tracked windows, got %d", len(limiter.entries))
	}

	clock.now = clock.now.Add(2 * time.Minute)
	limiter.allow("user:latest")

	if len(limiter.entries) != 1 {
		t.Errorf("expected expired windows to be dropped, %d remain", len(limiter.entries))
	}
}

func TestNewRateLimiterDefaults(t *testing.T) {
	limiter := NewRateLimiter(0, 0, nil)
	if limiter.maxRequests != defaultMaxRequests {
		t.Errorf("expected %d requests, got %d", defaultMaxRequests, limiter.maxRequests)
	}
	if limiter.windowDuration != defaultWindowDuration {
		t.Errorf("expected window %v, got %v", defaultWindowDuration, limiter.windowDuration)
	}
}
