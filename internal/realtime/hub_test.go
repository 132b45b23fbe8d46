package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/WeBoost/aurora-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func recv(t *testing.T, sub *Subscription) ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		if !ok {
			t.Fatal("subscription channel closed")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return ChangeEvent{}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		if ok {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
	}
}

func TestHubDeliversMatchingEvents(t *testing.T) {
	hub := NewHub(testLogger(t))
	subject := uuid.New()
	sub := hub.Subscribe("booking", subject)
	defer sub.Unsubscribe()

	want := ChangeEvent{Type: EventInsert, Table: "booking", SubjectID: subject, RecordID: uuid.New()}
	hub.Publish(context.Background(), want)

	got := recv(t, sub)
	if got.RecordID != want.RecordID || got.Type != EventInsert {
		t.Fatalf("event: want=%+v got=%+v", want, got)
	}
}

func TestHubFiltersOtherSubjects(t *testing.T) {
	hub := NewHub(testLogger(t))
	sub := hub.Subscribe("booking", uuid.New())
	defer sub.Unsubscribe()

	hub.Publish(context.Background(), ChangeEvent{Type: EventInsert, Table: "booking", SubjectID: uuid.New()})
	assertNoEvent(t, sub)
}

func TestHubFiltersOtherTables(t *testing.T) {
	hub := NewHub(testLogger(t))
	subject := uuid.New()
	sub := hub.Subscribe("booking", subject)
	defer sub.Unsubscribe()

	hub.Publish(context.Background(), ChangeEvent{Type: EventUpdate, Table: "payment", SubjectID: subject})
	assertNoEvent(t, sub)
}

func TestHubNilSubjectReceivesAll(t *testing.T) {
	hub := NewHub(testLogger(t))
	sub := hub.Subscribe("booking", uuid.Nil)
	defer sub.Unsubscribe()

	hub.Publish(context.Background(), ChangeEvent{Type: EventInsert, Table: "booking", SubjectID: uuid.New()})
	got := recv(t, sub)
	if got.Type != EventInsert {
		t.Fatalf("wildcard subscription missed event: %+v", got)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(testLogger(t))
	subject := uuid.New()
	sub := hub.Subscribe("booking", subject)

	sub.Unsubscribe()
	hub.Publish(context.Background(), ChangeEvent{Type: EventInsert, Table: "booking", SubjectID: subject})

	select {
	case ev, ok := <-sub.C:
		if ok {
			t.Fatalf("event delivered after unsubscribe: %+v", ev)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("channel should be closed after unsubscribe")
	}
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub(testLogger(t))
	sub := hub.Subscribe("booking", uuid.New())
	sub.Unsubscribe()
	sub.Unsubscribe()
}

func TestHubSlowConsumerDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(testLogger(t))
	subject := uuid.New()
	sub := hub.Subscribe("booking", subject)
	defer sub.Unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Publish(context.Background(), ChangeEvent{Type: EventInsert, Table: "booking", SubjectID: subject})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
}
