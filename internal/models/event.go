package models

import "encoding/json"

// EventKind classifies a parsed webhook delivery.
type EventKind string

const (
	EventKindMessage EventKind = "message"
	EventKindUnknown EventKind = "unknown"
)

// Chat kinds as reported by the messenger.
const (
	ChatKindPrivate = "private"
)

// InboundEvent is the normalized form of one webhook delivery. It is built
// once per call and not mutated afterwards; RawPayload keeps the delivery
// verbatim so unknown fields survive for audit.
type InboundEvent struct {
	Kind        EventKind
	MessageID   string
	ChatID      string
	ChatKind    string
	ChatTitle   string
	SenderID    string
	Username    string
	FirstName   string
	LastName    string
	Text        string
	MessageType string
	Date        int64
	RawPayload  json.RawMessage
}

// AiResult is the outcome of one completion call. It is always well formed:
// failures are folded into Success=false with Response carrying the
// user-facing fallback text. Never persisted as-is.
type AiResult struct {
	Success  bool
	Response string
	Usage    JSONMap
	Model    string
	Error    string
}
