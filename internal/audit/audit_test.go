package audit

import (
	"context"
	"testing"
)

func TestRecorderCollectsEvents(t *testing.T) {
	rec := NewRecorder()

	events := []Event{
		{Kind: KindMessage, TraceID: "t1", Sender: "123"},
		{Kind: KindBroadcast, TraceID: "t2", Recipient: "456"},
		{Kind: KindEscalation, TraceID: "t3", Sender: "789", Detail: "urgent"},
	}
	for _, ev := range events {
		if err := rec.Publish(context.Background(), ev); err != nil {
			t.Fatalf("Publish() error: %v", err)
		}
	}

	got := rec.Events()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Kind != events[i].Kind || ev.TraceID != events[i].TraceID {
			t.Errorf("event %d: got %+v", i, ev)
		}
		if ev.Timestamp.IsZero() {
			t.Errorf("event %d: publish should stamp the event", i)
		}
	}
}

func TestRecorderEventsReturnsCopy(t *testing.T) {
	rec := NewRecorder()
	rec.Publish(context.Background(), Event{Kind: KindMessage, TraceID: "t1"})

	got := rec.Events()
	got[0].TraceID = "mutated"

	if rec.Events()[0].TraceID != "t1" {
		t.Error("Events() must return a copy")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), Event{Kind: KindMessage}); err != nil {
		t.Errorf("Publish() error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
