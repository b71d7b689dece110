package messenger

import (
	"encoding/json"
	"strconv"

	"github.com/salamraya/iqjan-bot/internal/models"
)

// baleInboundMessage is the subset of a Bale message the bot cares about.
// Unknown fields stay in the event's raw payload.
type baleInboundMessage struct {
	MessageID int64 `json:"message_id"`
	From      struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"from"`
	Chat struct {
		ID    int64  `json:"id"`
		Type  string `json:"type"`
		Title string `json:"title"`
	} `json:"chat"`
	Date     int64           `json:"date"`
	Text     *string         `json:"text"`
	Photo    json.RawMessage `json:"photo"`
	Video    json.RawMessage `json:"video"`
	Document json.RawMessage `json:"document"`
	Voice    json.RawMessage `json:"voice"`
	Audio    json.RawMessage `json:"audio"`
	Sticker  json.RawMessage `json:"sticker"`
}

// ParseInbound normalizes one webhook delivery. Bale sends two shapes for
// the same update: wrapped under an "update" key or flattened at the top
// level. A payload without a "message" key, or one that does not decode,
// degrades to kind=unknown instead of failing.
func (c *BaleClient) ParseInbound(raw []byte) *models.InboundEvent {
	unknown := &models.InboundEvent{
		Kind:       models.EventKindUnknown,
		RawPayload: raw,
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return unknown
	}

	update := payload
	if wrapped, ok := payload["update"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &inner); err == nil {
			update = inner
		}
	}

	rawMessage, ok := update["message"]
	if !ok {
		return unknown
	}

	var message baleInboundMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		return unknown
	}

	chatKind := message.Chat.Type
	if chatKind == "" {
		chatKind = models.ChatKindPrivate
	}

	text := ""
	if message.Text != nil {
		text = *message.Text
	}

	return &models.InboundEvent{
		Kind:        models.EventKindMessage,
		MessageID:   strconv.FormatInt(message.MessageID, 10),
		ChatID:      strconv.FormatInt(message.Chat.ID, 10),
		ChatKind:    chatKind,
		ChatTitle:   message.Chat.Title,
		SenderID:    strconv.FormatInt(message.From.ID, 10),
		Username:    message.From.Username,
		FirstName:   message.From.FirstName,
		LastName:    message.From.LastName,
		Text:        text,
		MessageType: classifyMessage(&message),
		Date:        message.Date,
		RawPayload:  raw,
	}
}

// classifyMessage picks the message type by field presence; first match in
// this order wins.
func classifyMessage(message *baleInboundMessage) string {
	switch {
	case message.Text != nil:
		return "text"
	case len(message.Photo) > 0:
		return "photo"
	case len(message.Video) > 0:
		return "video"
	case len(message.Document) > 0:
		return "document"
	case len(message.Voice) > 0:
		return "voice"
	case len(message.Audio) > 0:
		return "audio"
	case len(message.Sticker) > 0:
		return "sticker"
	default:
		return "unknown"
	}
}
