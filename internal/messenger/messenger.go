// Package messenger provides chat platform clients and webhook parsing.
package messenger

import (
	"context"
	"fmt"

	"github.com/salamraya/iqjan-bot/internal/models"
)

// SendResult carries the platform's identifiers for a delivered message.
type SendResult struct {
	MessageID string
	ChatID    string
}

// DeliveryError is a non-2xx answer from the messenger API.
type DeliveryError struct {
	Op     string
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("messenger %s failed with status %d: %s", e.Op, e.Status, e.Body)
}

// Messenger is one chat platform. Implementations normalize inbound webhook
// payloads and deliver outbound messages.
type Messenger interface {
	Name() string

	// ParseInbound normalizes one raw webhook delivery. It is total:
	// malformed or unsupported payloads come back as kind=unknown, never as
	// an error.
	ParseInbound(raw []byte) *models.InboundEvent

	SendMessage(ctx context.Context, chatID, text, replyToMessageID string) (*SendResult, error)
	EditMessage(ctx context.Context, chatID, messageID, text string) error

	// SendTyping is best-effort: failures are logged and swallowed.
	SendTyping(ctx context.Context, chatID string)

	SetWebhook(ctx context.Context, webhookURL string) error
	BotInfo(ctx context.Context) (models.JSONMap, error)

	// VerifySignature reports whether a webhook delivery is authentic.
	VerifySignature(payload []byte, signature string) bool
}
