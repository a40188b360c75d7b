package tools

import (
	"fmt"
	"strings"
	"time"
)

// DefaultRecipientName is used when the Boss did not name a recipient.
const DefaultRecipientName = "Valued Contact"

const (
	dateLayout = "02-01-2006"
	timeLayout = "3:04 PM"
)

// EscalationReport carries the fields of an intelligence report sent to
// the Boss about a noteworthy conversation.
type EscalationReport struct {
	SourceSender    string
	RawMessage      string
	Vibe            string
	DealValue       string
	StrategicAdvice string
}

// FormatBroadcast renders the templated Boss notification for one
// recipient. Pure: the clock is injected so callers can pin it in tests.
func FormatBroadcast(recipientName, messageText string, now time.Time) string {
	var b strings.Builder
	b.WriteString("🚀 *MESSAGE FROM BOSS* 🚀\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "👤 *Recipient:* %s\n", recipientName)
	fmt.Fprintf(&b, "✉️ *Message:*\n%s\n\n", messageText)
	fmt.Fprintf(&b, "📅 Date: %s\n", now.Format(dateLayout))
	fmt.Fprintf(&b, "🕒 Time: %s\n", now.Format(timeLayout))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("✅ Sent by Boss's Elite Assistant")
	return b.String()
}

// FormatEscalation renders the structured intelligence report delivered to
// the Boss. Pure, clock injected.
func FormatEscalation(r EscalationReport, now time.Time) string {
	var b strings.Builder
	b.WriteString("🚨 *INTELLIGENCE ESCALATION*\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	b.WriteString("👤 *SOURCE CONTACT:*\n")
	fmt.Fprintf(&b, "• WhatsApp: https://wa.me/%s\n\n", r.SourceSender)
	b.WriteString("🧩 *USER PROFILE ANALYSIS:*\n")
	fmt.Fprintf(&b, "• Vibe: %s\n", r.Vibe)
	fmt.Fprintf(&b, "• Potential Value: %s\n\n", r.DealValue)
	b.WriteString("✉️ *MESSAGE RECEIVED:*\n")
	fmt.Fprintf(&b, "“%s”\n\n", r.RawMessage)
	b.WriteString("🎯 *RECOMMENDED STRATEGY:*\n")
	fmt.Fprintf(&b, "%s\n\n", r.StrategicAdvice)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "📅 Date: %s    🕒 Time: %s\n", now.Format(dateLayout), now.Format(timeLayout))
	b.WriteString("🛡️ Status: Pre-Screened & Escalated")
	return b.String()
}
