package tools

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/WaClaw/WaClaw/internal/audit"
)

// broadcastConfirmation is returned after a broadcast run regardless of
// per-recipient outcomes; delivery is best-effort and failures are only
// logged.
const broadcastConfirmation = "Done Boss, messages sent ✅"

// BroadcastTool fans a message out to the recipients named by the Boss.
// Confirmation and recipient-clarity gating live in the Boss policy
// instructions; the tool only enforces the structural invariant that the
// Boss never receives their own broadcast.
type BroadcastTool struct {
	dispatcher Dispatcher
	bossPhone  string
	auditor    audit.Publisher
	now        func() time.Time
}

// NewBroadcastTool creates the broadcast tool.
func NewBroadcastTool(dispatcher Dispatcher, bossPhone string, auditor audit.Publisher) *BroadcastTool {
	if auditor == nil {
		auditor = audit.NopPublisher{}
	}
	return &BroadcastTool{
		dispatcher: dispatcher,
		bossPhone:  bossPhone,
		auditor:    auditor,
		now:        time.Now,
	}
}

func (t *BroadcastTool) Name() string { return NameBroadcast }

func (t *BroadcastTool) Description() string {
	return "Send a message to one or more recipients on the Boss's explicit instruction. " +
		"Only call this when the Boss has clearly said to send and has named the recipients."
}

func (t *BroadcastTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recipients": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Phone numbers to send to, exactly as the Boss specified them",
			},
			"message_text": map[string]any{
				"type":        "string",
				"description": "The message the Boss wants delivered",
			},
			"recipient_names": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Optional display names for personalization, same order as recipients",
			},
		},
		"required": []string{"recipients", "message_text"},
	}
}

func (t *BroadcastTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	recipients := GetStringSlice(params, "recipients")
	messageText := GetString(params, "message_text", "")
	names := GetStringSlice(params, "recipient_names")

	if len(recipients) == 0 {
		return "Error: recipients is required", nil
	}
	if strings.TrimSpace(messageText) == "" {
		return "Error: message_text is required", nil
	}

	now := t.now()
	sent := 0
	for i, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient == "" {
			slog.Warn("broadcast: skipping empty recipient", "index", i)
			continue
		}
		// The Boss never receives their own broadcast.
		if recipient == t.bossPhone {
			continue
		}

		name := DefaultRecipientName
		if i < len(names) && strings.TrimSpace(names[i]) != "" {
			name = strings.TrimSpace(names[i])
		}

		body := FormatBroadcast(name, messageText, now)
		if err := t.dispatcher.Dispatch(ctx, recipient, body); err != nil {
			// Best-effort fan-out: one failed recipient must not block
			// the rest.
			slog.Warn("broadcast: dispatch failed", "recipient", recipient, "error", err)
			continue
		}
		sent++

		if err := t.auditor.Publish(ctx, audit.Event{
			Kind:      audit.KindBroadcast,
			Sender:    t.bossPhone,
			Recipient: recipient,
			Detail:    messageText,
		}); err != nil {
			slog.Warn("broadcast: audit publish failed", "error", err)
		}
	}

	slog.Info("broadcast complete", "requested", len(recipients), "sent", sent)
	return broadcastConfirmation, nil
}
