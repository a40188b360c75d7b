package agent

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/WaClaw/WaClaw/internal/audit"
	"github.com/WaClaw/WaClaw/internal/bus"
	"github.com/WaClaw/WaClaw/internal/provider"
	"github.com/WaClaw/WaClaw/internal/timeline"
	"github.com/WaClaw/WaClaw/internal/tools"
)

const testBoss = "19998887777"

func newTestLoop(t *testing.T, prov provider.LLMProvider, tl *timeline.Service, auditor audit.Publisher) (*Loop, *bus.MessageBus, <-chan *bus.OutboundMessage) {
	t.Helper()

	msgBus := bus.NewMessageBus()
	outbound := make(chan *bus.OutboundMessage, 10)
	msgBus.Subscribe("whatsapp", func(msg *bus.OutboundMessage) {
		outbound <- msg
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go msgBus.DispatchOutbound(ctx)

	engine := NewEngine(prov, tools.NewRegistry(), "fake-model", 4)
	loop := NewLoop(LoopOptions{
		Bus:            msgBus,
		Engine:         engine,
		Timeline:       tl,
		Audit:          auditor,
		BossPhone:      testBoss,
		RequestTimeout: 5 * time.Second,
	})
	return loop, msgBus, outbound
}

func receiveOutbound(t *testing.T, ch <-chan *bus.OutboundMessage) *bus.OutboundMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outbound message")
		return nil
	}
}

func TestLoopRepliesToSender(t *testing.T) {
	prov := &fakeProvider{responses: []*provider.ChatResponse{{Content: "salaam"}}}
	loop, _, outbound := newTestLoop(t, prov, nil, nil)

	handled := loop.handleInbound(context.Background(), &bus.InboundMessage{
		Channel:  "whatsapp",
		SenderID: "12223334444",
		Content:  "hello",
	})
	if !handled {
		t.Fatal("expected message to be handled")
	}

	reply := receiveOutbound(t, outbound)
	if reply.RecipientID != "12223334444" {
		t.Errorf("reply must go back to the sender, got %s", reply.RecipientID)
	}
	if reply.Content != "salaam" {
		t.Errorf("unexpected reply content %q", reply.Content)
	}
	if reply.TraceID == "" {
		t.Error("reply should carry the trace id")
	}
}

func TestLoopIgnoresMalformed(t *testing.T) {
	prov := &fakeProvider{}
	loop, _, outbound := newTestLoop(t, prov, nil, nil)

	cases := []*bus.InboundMessage{
		nil,
		{Channel: "whatsapp", Content: "no sender"},
		{Channel: "whatsapp", SenderID: "123"},
	}
	for _, msg := range cases {
		if loop.handleInbound(context.Background(), msg) {
			t.Errorf("malformed message %+v must not be handled", msg)
		}
	}
	if len(prov.requests) != 0 {
		t.Error("malformed messages must not reach the engine")
	}
	select {
	case msg := <-outbound:
		t.Errorf("unexpected outbound message %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoopEngineFailureIsContained(t *testing.T) {
	prov := &fakeProvider{err: errors.New("model unavailable")}
	loop, _, outbound := newTestLoop(t, prov, nil, nil)

	handled := loop.handleInbound(context.Background(), &bus.InboundMessage{
		Channel:  "whatsapp",
		SenderID: "12223334444",
		Content:  "hello",
	})
	if handled {
		t.Error("failed reasoning should report unhandled")
	}
	select {
	case msg := <-outbound:
		t.Errorf("no reply must be sent on engine failure, got %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoopReplayProducesIndependentRuns(t *testing.T) {
	prov := &fakeProvider{responses: []*provider.ChatResponse{{Content: "hi"}}}
	loop, _, outbound := newTestLoop(t, prov, nil, nil)

	msg := func() *bus.InboundMessage {
		return &bus.InboundMessage{Channel: "whatsapp", SenderID: "12223334444", Content: "hello"}
	}
	loop.handleInbound(context.Background(), msg())
	loop.handleInbound(context.Background(), msg())

	receiveOutbound(t, outbound)
	receiveOutbound(t, outbound)
	if len(prov.requests) != 2 {
		t.Errorf("replayed event must trigger an independent run, got %d calls", len(prov.requests))
	}
}

func TestLoopRecordsTimelineAndAudit(t *testing.T) {
	tl, err := timeline.New(filepath.Join(t.TempDir(), "timeline.db"))
	if err != nil {
		t.Fatalf("timeline.New() error: %v", err)
	}
	defer tl.Close()
	rec := audit.NewRecorder()

	prov := &fakeProvider{responses: []*provider.ChatResponse{{Content: "done"}}}
	loop, _, outbound := newTestLoop(t, prov, tl, rec)

	loop.handleInbound(context.Background(), &bus.InboundMessage{
		Channel:  "whatsapp",
		SenderID: testBoss,
		Content:  "status?",
	})
	receiveOutbound(t, outbound)

	recent, err := tl.Recent(5)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 task, got %d", len(recent))
	}
	task := recent[0]
	if task.Status != timeline.StatusCompleted {
		t.Errorf("expected completed task, got %s", task.Status)
	}
	if task.Role != "boss" {
		t.Errorf("expected boss role recorded, got %s", task.Role)
	}
	if task.ContentOut != "done" {
		t.Errorf("expected reply recorded, got %q", task.ContentOut)
	}

	events := rec.Events()
	if len(events) != 1 || events[0].Kind != audit.KindMessage {
		t.Errorf("expected one message audit event, got %v", events)
	}
}

func TestLoopRunStopsOnContextCancel(t *testing.T) {
	prov := &fakeProvider{}
	loop, _, _ := newTestLoop(t, prov, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	// Give the loop a beat to start, then cancel.
	time.Sleep(50 * time.Millisecond)
	if !loop.Running() {
		t.Error("loop should report running")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}
