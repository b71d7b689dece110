package messenger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/messenger"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) (*messenger.BaleClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := messenger.NewBaleClient(&config.MessengerConfig{
		BaseURL:       server.URL + "/bot",
		Token:         "test-token",
		Timeout:       5,
		TypingTimeout: 1,
	}, zap.NewNop())

	return client, server
}

func TestBaleClient_SendMessage_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":777,"chat":{"id":501}}}`))
	})

	result, err := client.SendMessage(context.Background(), "501", "الان جواب می دم", "100")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "501", gotBody["chat_id"])
	assert.Equal(t, "الان جواب می دم", gotBody["text"])
	assert.Equal(t, "100", gotBody["reply_to_message_id"])
	assert.Equal(t, "HTML", gotBody["parse_mode"])

	assert.Equal(t, "777", result.MessageID)
	assert.Equal(t, "501", result.ChatID)
}

func TestBaleClient_SendMessage_NoReply(t *testing.T) {
	var gotBody map[string]interface{}

	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":778,"chat":{"id":501}}}`))
	})

	_, err := client.SendMessage(context.Background(), "501", "hi", "")
	require.NoError(t, err)

	_, hasReply := gotBody["reply_to_message_id"]
	assert.False(t, hasReply)
}

func TestBaleClient_SendMessage_Failure(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"bot was blocked by the user"}`))
	})

	_, err := client.SendMessage(context.Background(), "501", "hi", "")
	require.Error(t, err)

	var deliveryErr *messenger.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "sendMessage", deliveryErr.Op)
	assert.Equal(t, http.StatusForbidden, deliveryErr.Status)
	assert.Contains(t, deliveryErr.Body, "blocked")
}

func TestBaleClient_EditMessage_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":777,"chat":{"id":501}}}`))
	})

	err := client.EditMessage(context.Background(), "501", "777", "the real answer")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/editMessageText", gotPath)
	assert.Equal(t, "777", gotBody["message_id"])
	assert.Equal(t, "the real answer", gotBody["text"])
}

func TestBaleClient_EditMessage_Failure(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"message to edit not found"}`))
	})

	err := client.EditMessage(context.Background(), "501", "777", "answer")
	require.Error(t, err)

	var deliveryErr *messenger.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "editMessage", deliveryErr.Op)
	assert.Equal(t, http.StatusBadRequest, deliveryErr.Status)
}

func TestBaleClient_SendTyping_SwallowsFailure(t *testing.T) {
	var called bool

	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Must not panic or surface anything
	client.SendTyping(context.Background(), "501")
	assert.True(t, called)
}

func TestBaleClient_SetWebhook_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	})

	err := client.SetWebhook(context.Background(), "https://iq-jan.salam-raya.ir/api/webhook/bale")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/setWebhook", gotPath)
	assert.Equal(t, "https://iq-jan.salam-raya.ir/api/webhook/bale", gotBody["url"])
}

func TestBaleClient_BotInfo_Success(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getMe", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":99,"is_bot":true,"username":"iqjan_bot"}}`))
	})

	info, err := client.BotInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "iqjan_bot", info["username"])
	assert.Equal(t, true, info["is_bot"])
}

func TestBaleClient_VerifySignature_AcceptsAll(t *testing.T) {
	client := newTestClient(t)

	assert.True(t, client.VerifySignature([]byte(`{}`), ""))
	assert.True(t, client.VerifySignature([]byte(`{}`), "whatever"))
}

func TestBaleClient_Name(t *testing.T) {
	client := newTestClient(t)
	assert.Equal(t, "bale", client.Name())
}
