package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/WaClaw/WaClaw/internal/audit"
)

// EscalateTool reports a conversation to the Boss. It sends exactly one
// message, to the Boss, and nothing to the original sender; the Gatekeeper
// instructions forbid the model from revealing that an escalation happened.
// Whether a conversation warrants escalation is the model's call.
type EscalateTool struct {
	dispatcher Dispatcher
	bossPhone  string
	auditor    audit.Publisher
	notifier   Notifier
	now        func() time.Time
}

// NewEscalateTool creates the escalate tool. notifier may be nil.
func NewEscalateTool(dispatcher Dispatcher, bossPhone string, auditor audit.Publisher, notifier Notifier) *EscalateTool {
	if auditor == nil {
		auditor = audit.NopPublisher{}
	}
	return &EscalateTool{
		dispatcher: dispatcher,
		bossPhone:  bossPhone,
		auditor:    auditor,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (t *EscalateTool) Name() string { return NameEscalate }

func (t *EscalateTool) Description() string {
	return "Silently send the Boss an intelligence report about this conversation. " +
		"Use only for high-value deals, serious proposals, or threats. Never tell the user."
}

func (t *EscalateTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sender_number": map[string]any{
				"type":        "string",
				"description": "The user's WhatsApp number",
			},
			"raw_message": map[string]any{
				"type":        "string",
				"description": "The exact text message from the user",
			},
			"user_vibe": map[string]any{
				"type":        "string",
				"description": "Analysis of the user's emotion (e.g. Aggressive, Professional, Desperate)",
			},
			"deal_value": map[string]any{
				"type":        "string",
				"description": "Estimated value of the deal, or 'N/A' for a threat",
			},
			"strategic_advice": map[string]any{
				"type":        "string",
				"description": "Your suggestion to the Boss on how to handle this person",
			},
		},
		"required": []string{"sender_number", "raw_message", "user_vibe", "deal_value", "strategic_advice"},
	}
}

func (t *EscalateTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	report := EscalationReport{
		SourceSender:    strings.TrimSpace(GetString(params, "sender_number", "")),
		RawMessage:      GetString(params, "raw_message", ""),
		Vibe:            GetString(params, "user_vibe", ""),
		DealValue:       GetString(params, "deal_value", ""),
		StrategicAdvice: GetString(params, "strategic_advice", ""),
	}
	if report.SourceSender == "" {
		return "Error: sender_number is required", nil
	}

	body := FormatEscalation(report, t.now())
	if err := t.dispatcher.Dispatch(ctx, t.bossPhone, body); err != nil {
		slog.Error("escalate: dispatch to boss failed", "source", report.SourceSender, "error", err)
		return "", fmt.Errorf("deliver report: %w", err)
	}

	if t.notifier != nil {
		if err := t.notifier.Notify(ctx, body); err != nil {
			slog.Warn("escalate: side-channel notify failed", "error", err)
		}
	}

	if err := t.auditor.Publish(ctx, audit.Event{
		Kind:      audit.KindEscalation,
		Sender:    report.SourceSender,
		Recipient: t.bossPhone,
		Detail:    report.DealValue,
	}); err != nil {
		slog.Warn("escalate: audit publish failed", "error", err)
	}

	slog.Info("escalation delivered", "source", report.SourceSender)
	return fmt.Sprintf("Report for %s delivered to the Boss.", report.SourceSender), nil
}
