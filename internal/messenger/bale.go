package messenger

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/models"
)

const baleProviderName = "bale"

// BaleClient talks to the Bale bot API (a Telegram-compatible HTTP API).
type BaleClient struct {
	client        *resty.Client
	typingTimeout time.Duration
	logger        *zap.Logger
}

// NewBaleClient creates a Bale messenger client.
func NewBaleClient(cfg *config.MessengerConfig, logger *zap.Logger) *BaleClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL + cfg.Token).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Content-Type", "application/json")

	return &BaleClient{
		client:        client,
		typingTimeout: time.Duration(cfg.TypingTimeout) * time.Second,
		logger:        logger,
	}
}

func (c *BaleClient) Name() string {
	return baleProviderName
}

// baleResponse is the envelope every Bale API call answers with.
type baleResponse struct {
	Ok     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
}

type baleMessageResult struct {
	MessageID int64 `json:"message_id"`
	Chat      struct {
		ID int64 `json:"id"`
	} `json:"chat"`
}

// SendMessage delivers one text message, optionally as a reply.
func (c *BaleClient) SendMessage(ctx context.Context, chatID, text, replyToMessageID string) (*SendResult, error) {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if replyToMessageID != "" {
		payload["reply_to_message_id"] = replyToMessageID
	}

	var envelope baleResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&envelope).
		Post("/sendMessage")
	if err != nil {
		return nil, &DeliveryError{Op: "sendMessage", Status: 0, Body: err.Error()}
	}
	if !resp.IsSuccess() {
		c.logger.Error("Bale sendMessage failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", string(resp.Body())),
			zap.String("chat_id", chatID))
		return nil, &DeliveryError{Op: "sendMessage", Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var result baleMessageResult
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return nil, &DeliveryError{Op: "sendMessage", Status: resp.StatusCode(), Body: "unexpected response shape: " + err.Error()}
	}

	return &SendResult{
		MessageID: strconv.FormatInt(result.MessageID, 10),
		ChatID:    strconv.FormatInt(result.Chat.ID, 10),
	}, nil
}

// EditMessage replaces the text of an already delivered message.
func (c *BaleClient) EditMessage(ctx context.Context, chatID, messageID, text string) error {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/editMessageText")
	if err != nil {
		return &DeliveryError{Op: "editMessage", Status: 0, Body: err.Error()}
	}
	if !resp.IsSuccess() {
		c.logger.Error("Bale editMessage failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", string(resp.Body())),
			zap.String("chat_id", chatID),
			zap.String("message_id", messageID))
		return &DeliveryError{Op: "editMessage", Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	return nil
}

// SendTyping shows the typing indicator. Purely cosmetic, so any failure is
// logged and swallowed.
func (c *BaleClient) SendTyping(ctx context.Context, chatID string) {
	ctx, cancel := context.WithTimeout(ctx, c.typingTimeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"chat_id": chatID,
			"action":  "typing",
		}).
		Post("/sendChatAction")
	if err != nil {
		c.logger.Warn("Bale sendTyping failed", zap.String("chat_id", chatID), zap.Error(err))
		return
	}
	if !resp.IsSuccess() {
		c.logger.Warn("Bale sendTyping rejected",
			zap.String("chat_id", chatID),
			zap.Int("status", resp.StatusCode()))
	}
}

// SetWebhook registers the public webhook URL with Bale.
func (c *BaleClient) SetWebhook(ctx context.Context, webhookURL string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"url": webhookURL}).
		Post("/setWebhook")
	if err != nil {
		return &DeliveryError{Op: "setWebhook", Status: 0, Body: err.Error()}
	}
	if !resp.IsSuccess() {
		return &DeliveryError{Op: "setWebhook", Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	return nil
}

// BotInfo fetches the bot account details.
func (c *BaleClient) BotInfo(ctx context.Context) (models.JSONMap, error) {
	var envelope baleResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get("/getMe")
	if err != nil {
		return nil, &DeliveryError{Op: "getMe", Status: 0, Body: err.Error()}
	}
	if !resp.IsSuccess() {
		return nil, &DeliveryError{Op: "getMe", Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var info models.JSONMap
	if err := json.Unmarshal(envelope.Result, &info); err != nil {
		return nil, &DeliveryError{Op: "getMe", Status: resp.StatusCode(), Body: "unexpected response shape: " + err.Error()}
	}

	return info, nil
}

// VerifySignature always accepts. Bale does not document a signing scheme
// for webhook deliveries yet.
// TODO: verify deliveries once Bale publishes a webhook signature scheme.
func (c *BaleClient) VerifySignature(payload []byte, signature string) bool {
	return true
}
