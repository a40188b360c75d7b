package agent

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/WaClaw/WaClaw/internal/audit"
	"github.com/WaClaw/WaClaw/internal/bus"
	"github.com/WaClaw/WaClaw/internal/policy"
	"github.com/WaClaw/WaClaw/internal/timeline"
)

// LoopOptions contains configuration for the gateway loop.
type LoopOptions struct {
	Bus            *bus.MessageBus
	Engine         *Engine
	Timeline       *timeline.Service
	Audit          audit.Publisher
	BossPhone      string
	RequestTimeout time.Duration
}

// Loop consumes inbound messages and produces replies. It is the recovery
// boundary: nothing that goes wrong while handling one message escapes it.
type Loop struct {
	bus            *bus.MessageBus
	engine         *Engine
	timeline       *timeline.Service
	auditor        audit.Publisher
	bossPhone      string
	requestTimeout time.Duration
	running        atomic.Bool
}

// NewLoop creates a new gateway loop.
func NewLoop(opts LoopOptions) *Loop {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	auditor := opts.Audit
	if auditor == nil {
		auditor = audit.NopPublisher{}
	}
	return &Loop{
		bus:            opts.Bus,
		engine:         opts.Engine,
		timeline:       opts.Timeline,
		auditor:        auditor,
		bossPhone:      opts.BossPhone,
		requestTimeout: timeout,
	}
}

// Run consumes inbound messages until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.running.Store(true)
	defer l.running.Store(false)

	for {
		msg, err := l.bus.ConsumeInbound(ctx)
		if err != nil {
			return err
		}
		l.handleInbound(ctx, msg)
	}
}

// Running reports whether the loop is consuming messages.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// handleInbound processes one message end to end: policy selection,
// reasoning run (which may dispatch via tools), and the final reply.
// It returns false for messages it ignored or failed on; it never panics
// and never lets a per-message error propagate — one bad conversation must
// not take the gateway down.
func (l *Loop) handleInbound(ctx context.Context, msg *bus.InboundMessage) bool {
	if msg == nil || msg.SenderID == "" || msg.Content == "" {
		return false
	}
	if msg.TraceID == "" {
		msg.TraceID = uuid.NewString()
	}

	pol := policy.Select(msg.SenderID, l.bossPhone)
	slog.Info("handling message", "trace_id", msg.TraceID, "channel", msg.Channel, "role", pol.Role)

	taskID := ""
	if l.timeline != nil {
		id, err := l.timeline.CreateTask(&timeline.Task{
			TraceID:   msg.TraceID,
			Channel:   msg.Channel,
			SenderID:  msg.SenderID,
			Role:      string(pol.Role),
			ContentIn: msg.Content,
		})
		if err != nil {
			slog.Warn("failed to create task", "trace_id", msg.TraceID, "error", err)
		} else {
			taskID = id
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, l.requestTimeout)
	defer cancel()
	reply, err := l.engine.Run(runCtx, pol, msg.Content)
	if err != nil {
		// ReasoningEngineFailure: log and drop, no reply, nothing surfaced.
		slog.Error("reasoning failed", "trace_id", msg.TraceID, "error", err)
		if l.timeline != nil && taskID != "" {
			_ = l.timeline.UpdateStatus(taskID, timeline.StatusFailed, "", err.Error())
		}
		return false
	}

	if reply != "" {
		l.bus.PublishOutbound(&bus.OutboundMessage{
			Channel:     msg.Channel,
			RecipientID: msg.SenderID,
			TraceID:     msg.TraceID,
			Content:     reply,
		})
	}

	if l.timeline != nil && taskID != "" {
		_ = l.timeline.UpdateStatus(taskID, timeline.StatusCompleted, reply, "")
	}
	if err := l.auditor.Publish(runCtx, audit.Event{
		Kind:    audit.KindMessage,
		TraceID: msg.TraceID,
		Sender:  msg.SenderID,
		Detail:  string(pol.Role),
	}); err != nil {
		slog.Warn("audit publish failed", "trace_id", msg.TraceID, "error", err)
	}

	return true
}
