// Package channels implements the chat platform transports.
package channels

import (
	"context"

	"github.com/WaClaw/WaClaw/internal/bus"
)

// Channel defines the interface for chat platforms.
type Channel interface {
	// Name returns the channel name (e.g. "whatsapp").
	Name() string
	// Start starts the channel listener.
	Start(ctx context.Context) error
	// Stop stops the channel listener.
	Stop() error
	// Send sends a message to a specific recipient.
	Send(ctx context.Context, msg *bus.OutboundMessage) error
}
