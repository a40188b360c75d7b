package channels

import (
	"context"

	"github.com/slack-go/slack"

	"github.com/WaClaw/WaClaw/internal/config"
)

// SlackNotifier mirrors escalation reports to an ops channel. It is a
// side channel only: the original sender never sees it, and failures are
// non-fatal for the escalation itself.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier from config.
func NewSlackNotifier(cfg config.SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(cfg.BotToken),
		channel: cfg.Channel,
	}
}

// Notify posts the report text to the configured channel.
func (n *SlackNotifier) Notify(ctx context.Context, report string) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(report, false))
	return err
}
