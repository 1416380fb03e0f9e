package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherFanOut(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventOrderCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.CompanyID)
		return nil
	})
	d.Subscribe(EventOrderCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.CompanyID)
		return nil
	})
	d.Subscribe(EventOrderStatusChanged, func(context.Context, Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventOrderCreated, CompanyID: "company-7"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first:company-7" || calls[1] != "second:company-7" {
		t.Fatalf("unexpected calls: %v", calls)
	}
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var reached bool

	d.Subscribe(EventOrderCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventOrderCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventOrderCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Fatal("second handler not invoked after first errored")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventConversationClaimed}); err != nil {
		t.Fatalf("publish without subscribers: %v", err)
	}
}
