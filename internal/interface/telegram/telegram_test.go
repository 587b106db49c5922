package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planewatch-service/pkg/logger"
)

type apiCall struct {
	path string
	body map[string]interface{}
}

func newBotServer(t *testing.T, response string) (*httptest.Server, *[]apiCall) {
	t.Helper()
	var calls []apiCall
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		calls = append(calls, apiCall{path: r.URL.Path, body: body})
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestSendReportReturnsMessageID(t *testing.T) {
	server, calls := newBotServer(t, `{"ok": true, "result": {"message_id": 314}}`)
	client := NewClient(server.URL, "TEST", logger.NewNop())

	messageID, err := client.SendReport(context.Background(), 42, "<b>report</b>")
	require.NoError(t, err)
	assert.Equal(t, int64(314), messageID)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/botTEST/sendMessage", call.path)
	assert.Equal(t, float64(42), call.body["chat_id"])
	assert.Equal(t, "<b>report</b>", call.body["text"])
	assert.Equal(t, "HTML", call.body["parse_mode"])
}

func TestSendTextSplitsOnBlankLines(t *testing.T) {
	server, calls := newBotServer(t, `{"ok": true, "result": {"message_id": 1}}`)
	client := NewClient(server.URL, "TEST", logger.NewNop())

	err := client.SendText(context.Background(), 42, "first part\n\nsecond part")
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	assert.Equal(t, "first part", (*calls)[0].body["text"])
	assert.Equal(t, "second part", (*calls)[1].body["text"])
}

func TestSendTextSkipsEmptyParts(t *testing.T) {
	server, calls := newBotServer(t, `{"ok": true, "result": {"message_id": 1}}`)
	client := NewClient(server.URL, "TEST", logger.NewNop())

	err := client.SendText(context.Background(), 42, "only part\n\n\n\n")
	require.NoError(t, err)
	assert.Len(t, *calls, 1)
}

func TestEditReportSendsMessageID(t *testing.T) {
	server, calls := newBotServer(t, `{"ok": true, "result": true}`)
	client := NewClient(server.URL, "TEST", logger.NewNop())

	err := client.EditReport(context.Background(), 42, 314, "updated")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/botTEST/editMessageText", call.path)
	assert.Equal(t, float64(314), call.body["message_id"])
	assert.Equal(t, "updated", call.body["text"])
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	server, _ := newBotServer(t, `{"ok": false, "description": "Bad Request: chat not found"}`)
	client := NewClient(server.URL, "TEST", logger.NewNop())

	_, err := client.SendReport(context.Background(), 42, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSetWebhookDropsPendingUpdates(t *testing.T) {
	server, calls := newBotServer(t, `{"ok": true, "result": true}`)
	client := NewClient(server.URL, "TEST", logger.NewNop())

	err := client.SetWebhook(context.Background(), "https://bot.example.com/planeBot")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/botTEST/setWebhook", call.path)
	assert.Equal(t, "https://bot.example.com/planeBot", call.body["url"])
	assert.Equal(t, true, call.body["drop_pending_updates"])
}
