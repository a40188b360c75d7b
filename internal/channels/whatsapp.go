package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WaClaw/WaClaw/internal/bus"
	"github.com/WaClaw/WaClaw/internal/config"
)

const defaultGraphAPIBase = "https://graph.facebook.com/v17.0"

// WhatsAppChannel speaks the WhatsApp Business Cloud API: it serves the
// webhook (verification handshake + inbound events) and sends outbound
// messages through the graph send endpoint. It also implements
// tools.Dispatcher so tools can send directly during a reasoning run.
type WhatsAppChannel struct {
	cfg        config.WhatsAppConfig
	bus        *bus.MessageBus
	apiBase    string
	httpClient *http.Client
}

// NewWhatsAppChannel creates the channel.
func NewWhatsAppChannel(cfg config.WhatsAppConfig, messageBus *bus.MessageBus) *WhatsAppChannel {
	apiBase := strings.TrimSuffix(cfg.APIBase, "/")
	if apiBase == "" {
		apiBase = defaultGraphAPIBase
	}
	return &WhatsAppChannel{
		cfg:     cfg,
		bus:     messageBus,
		apiBase: apiBase,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

// Start subscribes the channel to outbound messages on the bus.
func (c *WhatsAppChannel) Start(ctx context.Context) error {
	c.bus.Subscribe(c.Name(), func(msg *bus.OutboundMessage) {
		if err := c.Send(ctx, msg); err != nil {
			// Terminal for this reply: there is no alternate delivery path.
			slog.Error("whatsapp: outbound send failed",
				"trace_id", msg.TraceID, "recipient", msg.RecipientID, "error", err)
		}
	})
	return nil
}

func (c *WhatsAppChannel) Stop() error { return nil }

// Send delivers an outbound bus message.
func (c *WhatsAppChannel) Send(ctx context.Context, msg *bus.OutboundMessage) error {
	return c.Dispatch(ctx, msg.RecipientID, msg.Content)
}

// Dispatch sends one text message through the Cloud API. Fire-and-forget:
// the response body is not inspected beyond the status code.
func (c *WhatsAppChannel) Dispatch(ctx context.Context, recipient, text string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                recipient,
		"type":              "text",
		"text":              map[string]string{"body": text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiBase, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send status: %d", resp.StatusCode)
	}
	return nil
}

// Handler returns the webhook handler: GET for the verification handshake,
// POST for inbound events.
func (c *WhatsAppChannel) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			c.VerifyHandler(w, r)
		case http.MethodPost:
			c.EventsHandler(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

// VerifyHandler implements the webhook verification handshake: echo the
// challenge when the verify token matches, 403 otherwise.
func (c *WhatsAppChannel) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if params.Get("hub.verify_token") == c.cfg.VerifyToken {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, params.Get("hub.challenge"))
		return
	}
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprint(w, "Failed")
}

// webhookPayload mirrors the nested Cloud API event shape. Only the first
// entry/change/message is processed.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// EventsHandler accepts inbound webhook events. It always answers
// {"status":"ok"} with 200 — internal outcomes are never reflected to the
// platform, which would otherwise retry the delivery.
func (c *WhatsAppChannel) EventsHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	}()

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Warn("whatsapp: malformed webhook payload", "error", err)
		return
	}

	msg, ok := firstMessage(&payload)
	if !ok {
		// Delivery receipts and other non-message events land here.
		return
	}

	c.bus.PublishInbound(&bus.InboundMessage{
		Channel:  c.Name(),
		SenderID: msg.from,
		TraceID:  uuid.NewString(),
		Content:  msg.text,
	})
}

type inboundText struct {
	from string
	text string
}

func firstMessage(p *webhookPayload) (inboundText, bool) {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return inboundText{}, false
	}
	value := p.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return inboundText{}, false
	}
	m := value.Messages[0]
	if m.From == "" || m.Text.Body == "" {
		return inboundText{}, false
	}
	return inboundText{from: m.From, text: m.Text.Body}, true
}
