package bus

import (
	"context"
	"testing"
	"time"
)

func TestPublishAndConsumeInbound(t *testing.T) {
	b := NewMessageBus()
	b.PublishInbound(&InboundMessage{Channel: "whatsapp", SenderID: "123", Content: "hi"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := b.ConsumeInbound(ctx)
	if err != nil {
		t.Fatalf("ConsumeInbound() error: %v", err)
	}
	if msg.SenderID != "123" || msg.Content != "hi" {
		t.Errorf("unexpected message %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Error("publish should stamp the message")
	}
}

func TestConsumeInboundCancellation(t *testing.T) {
	b := NewMessageBus()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := b.ConsumeInbound(ctx); err == nil {
		t.Error("expected error on cancelled context")
	}
}

func TestDispatchOutboundRoutesByChannel(t *testing.T) {
	b := NewMessageBus()
	got := make(chan *OutboundMessage, 2)
	b.Subscribe("whatsapp", func(msg *OutboundMessage) { got <- msg })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.DispatchOutbound(ctx)

	b.PublishOutbound(&OutboundMessage{Channel: "other", RecipientID: "x", Content: "ignored"})
	b.PublishOutbound(&OutboundMessage{Channel: "whatsapp", RecipientID: "123", Content: "hello"})

	select {
	case msg := <-got:
		if msg.RecipientID != "123" {
			t.Errorf("unexpected recipient %s", msg.RecipientID)
		}
	case <-time.After(time.Second):
		t.Fatal("subscribed callback never fired")
	}

	select {
	case msg := <-got:
		t.Errorf("message for another channel was delivered: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
