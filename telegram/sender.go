// Package telegram implements toto.Sender on top of the Telegram Bot API.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/toto"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Telegram Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// DefaultTimeout bounds a single sendMessage call.
const DefaultTimeout = 15 * time.Second

// Ensure Sender implements toto.Sender at compile time.
var _ toto.Sender = (*Sender)(nil)

// Sender delivers messages through a bot's sendMessage method.
type Sender struct {
	client  *resty.Client
	token   string
	baseURL string
	timeout time.Duration
}

// Option configures a Sender.
type Option func(*Sender)

// WithBaseURL points the sender at a different API host.
func WithBaseURL(url string) Option {
	return func(s *Sender) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Sender) {
		s.timeout = d
	}
}

// NewSender creates a Sender authenticated with the bot token.
func NewSender(token string, opts ...Option) *Sender {
	s := &Sender{
		token:   token,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = resty.New().
		SetBaseURL(s.baseURL).
		SetTimeout(s.timeout).
		SetHeader("User-Agent", "toto-notifier/1.0")

	return s
}

// apiResponse is the envelope every Bot API method answers with.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send posts msg to the chat. Delivery succeeds only when the API answers
// with "ok": true.
//
// Returns EINVALID for a message without chat or text, and for requests
// the API rejects as bad; other failures are EUNAVAILABLE.
func (s *Sender) Send(ctx context.Context, msg toto.Message) error {
	if s.token == "" {
		return toto.Errorf(toto.EINVALID, "telegram bot token required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	form := map[string]string{
		"chat_id":                  msg.ChatID,
		"text":                     msg.Text,
		"disable_web_page_preview": "true",
	}
	if msg.ParseMode != "" {
		form["parse_mode"] = msg.ParseMode
	}

	res, err := s.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(fmt.Sprintf("/bot%s/sendMessage", s.token))
	if err != nil {
		return toto.Errorf(toto.EUNAVAILABLE, "telegram sendMessage: %v", redact(err.Error(), s.token))
	}

	var body apiResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return toto.Errorf(toto.EUNAVAILABLE, "telegram sendMessage: HTTP %d", res.StatusCode())
	}
	if body.OK {
		return nil
	}

	desc := body.Description
	if desc == "" {
		desc = fmt.Sprintf("HTTP %d", res.StatusCode())
	}
	code := toto.EUNAVAILABLE
	if body.ErrorCode == 400 || body.ErrorCode == 403 {
		code = toto.EINVALID
	}
	return toto.Errorf(code, "telegram sendMessage: %s", desc)
}

// redact removes the bot token from transport errors, which quote the URL.
func redact(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "<token>")
}
