package notification

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func testAlert(kind entity.AlertKind) *entity.BudgetAlert {
	categoryID := uuid.New()
	b := &entity.Budget{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CategoryID:     &categoryID,
		Amount:         decimal.NewFromInt(100),
		AlertThreshold: 80,
	}
	alert := entity.NewBudgetAlert(b, kind, "Food", decimal.NewFromInt(85), decimal.NewFromInt(85))
	alert.UserEmail = "user@example.com"
	return alert
}

type recordingDispatcher struct {
	mu       sync.Mutex
	alerts   []*entity.BudgetAlert
	failures int32 // fail this many calls before succeeding
	calls    int32
	err      error
}

func (r *recordingDispatcher) Present(_ context.Context, alert *entity.BudgetAlert) error {
	n := atomic.AddInt32(&r.calls, 1)
	if n <= atomic.LoadInt32(&r.failures) {
		return errors.New("transport down")
	}
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert)
	return nil
}

func TestRedisPublisher_Present(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	publisher := NewRedisPublisher(client, "", fixedClock{now: testNow})
	alert := testAlert(entity.AlertKindWarning)

	if err := publisher.Present(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := client.XRange(context.Background(), DefaultAlertStream, "-", "+").Result()
	if err != nil {
		t.Fatalf("failed to read stream: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stream entry, got %d", len(entries))
	}

	values := entries[0].Values
	if values["kind"] != "warning" || values["user_id"] != alert.UserID.String() {
		t.Errorf("unexpected entry values: %v", values)
	}

	payload, _ := values["payload"].(string)
	msg, err := AlertMessageFromJSON([]byte(payload))
	if err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if msg.BudgetID != alert.BudgetID.String() || msg.Title != "📊 Budget Alert" || msg.Remaining != "15.00" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.Metadata["type"] != entity.AlertMetadataType {
		t.Errorf("expected metadata type %s, got %s", entity.AlertMetadataType, msg.Metadata["type"])
	}
}

func TestRedisPublisher_ConnectionFailure(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()
	server.Close()

	if err := NewRedisPublisher(client, "alerts", fixedClock{now: testNow}).Present(context.Background(), testAlert(entity.AlertKindExceeded)); err == nil {
		t.Fatal("expected an error when redis is unreachable")
	}
}

func TestFanOut_JoinsErrors(t *testing.T) {
	ok := &recordingDispatcher{}
	broken := &recordingDispatcher{err: errors.New("boom")}
	fan := FanOut{broken, ok}

	err := fan.Present(context.Background(), testAlert(entity.AlertKindWarning))
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected joined error boom, got %v", err)
	}
	if len(ok.alerts) != 1 {
		t.Error("expected the healthy dispatcher to still receive the alert")
	}
}

func TestAsyncDispatcher_RetriesAndReturnsImmediately(t *testing.T) {
	next := &recordingDispatcher{failures: 2}
	async := NewAsyncDispatcher(next, AsyncConfig{Timeout: time.Second, Attempts: 3, Delay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	if err := async.Present(ctx, testAlert(entity.AlertKindExceeded)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	cancel() // delivery must not depend on the request context

	async.Wait()

	if got := atomic.LoadInt32(&next.calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
	if len(next.alerts) != 1 {
		t.Errorf("expected the alert to be delivered once, got %d", len(next.alerts))
	}
}

func TestAsyncDispatcher_RetriesOnlyTheFailingMember(t *testing.T) {
	email := &recordingDispatcher{}
	stream := &recordingDispatcher{failures: 10}
	async := NewAsyncDispatcher(FanOut{email, stream}, AsyncConfig{Timeout: time.Second, Attempts: 3, Delay: time.Millisecond})

	_ = async.Present(context.Background(), testAlert(entity.AlertKindExceeded))
	async.Wait()

	if got := atomic.LoadInt32(&email.calls); got != 1 {
		t.Errorf("expected the healthy dispatcher to be called once, got %d", got)
	}
	if len(email.alerts) != 1 {
		t.Errorf("expected one delivered alert, got %d", len(email.alerts))
	}
	if got := atomic.LoadInt32(&stream.calls); got != 3 {
		t.Errorf("expected 3 attempts on the failing dispatcher, got %d", got)
	}
}

func TestAsyncDispatcher_GivesUpAfterAttempts(t *testing.T) {
	next := &recordingDispatcher{failures: 10}
	async := NewAsyncDispatcher(next, AsyncConfig{Timeout: time.Second, Attempts: 2, Delay: time.Millisecond})

	_ = async.Present(context.Background(), testAlert(entity.AlertKindWarning))
	async.Wait()

	if got := atomic.LoadInt32(&next.calls); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
	if len(next.alerts) != 0 {
		t.Error("expected nothing delivered")
	}
}
