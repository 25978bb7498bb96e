package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
)

// DefaultTelegramAPIURL is the public Bot API endpoint
const DefaultTelegramAPIURL = "https://api.telegram.org"

// TelegramClient calls the Telegram Bot API
type TelegramClient struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

// NewTelegramClient creates a client. An empty baseURL uses DefaultTelegramAPIURL.
func NewTelegramClient(baseURL, token, chatID string, client *http.Client) *TelegramClient {
	if baseURL == "" {
		baseURL = DefaultTelegramAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &TelegramClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		chatID:  chatID,
		client:  client,
	}
}

// Ensure TelegramClient implements Notifier
var _ Notifier = (*TelegramClient)(nil)

// Enabled reports whether both the bot token and chat id are configured
func (c *TelegramClient) Enabled() bool {
	return c.token != "" && c.chatID != ""
}

// Channel names the channel in logs and metrics
func (c *TelegramClient) Channel() string { return "telegram" }

// Notify sends the text, then each photo. A failed send does not stop the remaining
// sends; all failures are returned joined.
func (c *TelegramClient) Notify(ctx context.Context, n Notification) error {
	if !c.Enabled() {
		return nil
	}

	var errs []error
	if err := c.SendMessage(ctx, n.Text()); err != nil {
		errs = append(errs, err)
	}
	for _, photo := range n.Photos {
		if err := c.SendPhoto(ctx, photo); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// telegramResponse is the envelope of every Bot API reply
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage posts a plain text message to the configured chat
func (c *TelegramClient) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": c.chatID,
		"text":    text,
	})
	if err != nil {
		return c.dispatchError(fmt.Errorf("failed to encode message: %w", err))
	}

	if err := c.post(ctx, "sendMessage", "application/json", bytes.NewReader(payload)); err != nil {
		return err
	}
	log.Printf("✅ TelegramClient.SendMessage: Sent %d characters", len(text))
	return nil
}

// SendPhoto uploads photo as multipart/form-data with its caption
func (c *TelegramClient) SendPhoto(ctx context.Context, photo Photo) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("chat_id", c.chatID); err != nil {
		return c.dispatchError(err)
	}

	mediaType := photo.MediaType
	if mediaType == "" {
		mediaType = "image/png"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, photo.Filename))
	header.Set("Content-Type", mediaType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return c.dispatchError(err)
	}
	if _, err := part.Write(photo.Data); err != nil {
		return c.dispatchError(err)
	}

	if photo.Caption != "" {
		if err := writer.WriteField("caption", photo.Caption); err != nil {
			return c.dispatchError(err)
		}
	}
	if err := writer.Close(); err != nil {
		return c.dispatchError(err)
	}

	if err := c.post(ctx, "sendPhoto", writer.FormDataContentType(), &body); err != nil {
		return err
	}
	log.Printf("✅ TelegramClient.SendPhoto: Sent %s (%d bytes)", photo.Filename, len(photo.Data))
	return nil
}

func (c *TelegramClient) post(ctx context.Context, method, contentType string, body io.Reader) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return c.dispatchError(fmt.Errorf("failed to build %s request: %w", method, err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		// The URL carries the bot token; keep it out of the error
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return c.dispatchError(fmt.Errorf("%s request failed: %w", method, err))
	}
	defer resp.Body.Close()

	var result telegramResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil && resp.StatusCode == http.StatusOK {
		return c.dispatchError(fmt.Errorf("%s: invalid response: %w", method, err))
	}
	if resp.StatusCode != http.StatusOK || !result.OK {
		return c.dispatchError(fmt.Errorf("%s returned status %d: %s", method, resp.StatusCode, result.Description))
	}
	return nil
}

func (c *TelegramClient) dispatchError(err error) error {
	return &apperr.NotificationDispatchError{Channel: c.Channel(), Err: err}
}
