package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
)

// Client talks to the Telegram Bot API. It implements the transport
// capabilities the pipeline consumes: text replies, report messages, and
// in-place report edits.
type Client struct {
	logger  logger.Logger
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a new Telegram client
func NewClient(baseURL, token string, logger logger.Logger) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

var _ repository.TransportRepository = (*Client)(nil)

// apiResponse is the Bot API envelope shared by every method.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// sentMessage is the part of a sendMessage result the dispatcher needs.
type sentMessage struct {
	MessageID int64 `json:"message_id"`
}

// call posts one Bot API method and decodes the envelope.
func (c *Client) call(ctx context.Context, method string, body interface{}) (json.RawMessage, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if !envelope.OK {
		return nil, fmt.Errorf("telegram %s returned status %d: %s", method, resp.StatusCode, envelope.Description)
	}

	return envelope.Result, nil
}

// SendText sends a plain text reply. Multi-paragraph texts are split on blank
// lines and sent as separate messages.
func (c *Client) SendText(ctx context.Context, recipientID int64, text string) error {
	for _, part := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if part == "" {
			continue
		}
		body := map[string]interface{}{
			"chat_id":    recipientID,
			"text":       part,
			"parse_mode": "HTML",
		}
		if _, err := c.call(ctx, "sendMessage", body); err != nil {
			return err
		}
	}
	return nil
}

// SendReport sends one report message and returns its message identifier.
func (c *Client) SendReport(ctx context.Context, recipientID int64, text string) (int64, error) {
	body := map[string]interface{}{
		"chat_id":    recipientID,
		"text":       text,
		"parse_mode": "HTML",
	}

	result, err := c.call(ctx, "sendMessage", body)
	if err != nil {
		return 0, err
	}

	var msg sentMessage
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("failed to decode sent message: %w", err)
	}

	c.logger.Debug("Report sent", "recipientId", recipientID, "messageId", msg.MessageID)
	return msg.MessageID, nil
}

// EditReport replaces the text of a previously sent report message.
func (c *Client) EditReport(ctx context.Context, recipientID int64, messageID int64, text string) error {
	body := map[string]interface{}{
		"chat_id":    recipientID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	}

	_, err := c.call(ctx, "editMessageText", body)
	return err
}

// SetWebhook registers the inbound webhook with Telegram, dropping any
// updates queued while the service was down.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	body := map[string]interface{}{
		"url":                  url,
		"drop_pending_updates": true,
		"max_connections":      100,
	}

	if _, err := c.call(ctx, "setWebhook", body); err != nil {
		return err
	}

	c.logger.Info("Telegram webhook set", "url", url)
	return nil
}
