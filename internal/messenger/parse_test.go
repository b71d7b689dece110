package messenger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/messenger"
	"github.com/salamraya/iqjan-bot/internal/models"
)

func newTestClient(t *testing.T) *messenger.BaleClient {
	t.Helper()
	return messenger.NewBaleClient(&config.MessengerConfig{
		BaseURL:       "https://tapi.bale.ai/bot",
		Token:         "test-token",
		Timeout:       5,
		TypingTimeout: 1,
	}, zap.NewNop())
}

func TestBaleClient_ParseInbound_Success(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name         string
		payload      string
		expectedText string
		expectedChat string
	}{
		{
			name: "wrapped update shape",
			payload: `{"update":{"update_id":7,"message":{"message_id":100,
				"from":{"id":501,"username":"ali","first_name":"Ali"},
				"chat":{"id":501,"type":"private"},
				"date":1700000000,"text":"سلام"}}}`,
			expectedText: "سلام",
			expectedChat: "501",
		},
		{
			name: "flattened update shape",
			payload: `{"update_id":7,"message":{"message_id":100,
				"from":{"id":501,"username":"ali"},
				"chat":{"id":501,"type":"private"},
				"date":1700000000,"text":"hello"}}`,
			expectedText: "hello",
			expectedChat: "501",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := client.ParseInbound([]byte(tt.payload))
			require.NotNil(t, event)

			assert.Equal(t, models.EventKindMessage, event.Kind)
			assert.Equal(t, tt.expectedText, event.Text)
			assert.Equal(t, tt.expectedChat, event.ChatID)
			assert.Equal(t, "100", event.MessageID)
			assert.Equal(t, "501", event.SenderID)
			assert.Equal(t, "text", event.MessageType)
			assert.Equal(t, models.ChatKindPrivate, event.ChatKind)
			assert.JSONEq(t, tt.payload, string(event.RawPayload))
		})
	}
}

func TestBaleClient_ParseInbound_Degrades(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{"update": nope`},
		{name: "no message key", payload: `{"update":{"update_id":7,"edited_message":{"text":"hi"}}}`},
		{name: "message is not an object", payload: `{"message":"hello"}`},
		{name: "empty payload", payload: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := client.ParseInbound([]byte(tt.payload))
			require.NotNil(t, event)

			assert.Equal(t, models.EventKindUnknown, event.Kind)
			assert.Equal(t, tt.payload, string(event.RawPayload))
		})
	}
}

func TestBaleClient_ParseInbound_MessageTypes(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name         string
		message      string
		expectedType string
	}{
		{
			name:         "empty text is still text",
			message:      `{"message_id":1,"chat":{"id":1,"type":"private"},"text":""}`,
			expectedType: "text",
		},
		{
			name:         "text wins over photo",
			message:      `{"message_id":1,"chat":{"id":1,"type":"private"},"text":"caption","photo":[{"file_id":"x"}]}`,
			expectedType: "text",
		},
		{
			name:         "photo",
			message:      `{"message_id":1,"chat":{"id":1,"type":"private"},"photo":[{"file_id":"x"}]}`,
			expectedType: "photo",
		},
		{
			name:         "voice",
			message:      `{"message_id":1,"chat":{"id":1,"type":"private"},"voice":{"file_id":"v"}}`,
			expectedType: "voice",
		},
		{
			name:         "sticker",
			message:      `{"message_id":1,"chat":{"id":1,"type":"private"},"sticker":{"file_id":"s"}}`,
			expectedType: "sticker",
		},
		{
			name:         "nothing recognizable",
			message:      `{"message_id":1,"chat":{"id":1,"type":"private"},"contact":{"phone_number":"555"}}`,
			expectedType: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := client.ParseInbound([]byte(`{"message":` + tt.message + `}`))
			require.NotNil(t, event)

			assert.Equal(t, models.EventKindMessage, event.Kind)
			assert.Equal(t, tt.expectedType, event.MessageType)
		})
	}
}

func TestBaleClient_ParseInbound_GroupChat(t *testing.T) {
	client := newTestClient(t)

	payload := `{"message":{"message_id":9,
		"from":{"id":501,"first_name":"Ali"},
		"chat":{"id":-100200,"type":"group","title":"Quiz Friends"},
		"date":1700000000,"text":"question"}}`

	event := client.ParseInbound([]byte(payload))
	require.NotNil(t, event)

	assert.Equal(t, models.EventKindMessage, event.Kind)
	assert.Equal(t, "group", event.ChatKind)
	assert.Equal(t, "Quiz Friends", event.ChatTitle)
	assert.Equal(t, "-100200", event.ChatID)
}
