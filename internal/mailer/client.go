// ABOUTME: EmailJS REST client for the contact form's outbound send
// ABOUTME: One JSON attempt, one form-encoded fallback, then give up

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.emailjs.com"

const (
	sendPath     = "/api/v1.0/email/send"
	sendFormPath = "/api/v1.0/email/send-form"
)

// Send errors independent of the remote service.
var (
	ErrNotConfigured = errors.New("email service not configured")
	ErrNoRecipient   = errors.New("recipient email is not configured")
)

// Message is one contact-form submission.
type Message struct {
	FromName  string
	FromEmail string
	Subject   string
	Body      string
	Recipient string
}

// Client sends contact-form messages through EmailJS.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an EmailJS client. An empty baseURL selects the public
// EmailJS API; tests point it at a local server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default().With("component", "mailer"),
	}
}

// Send delivers msg through the configured EmailJS service. The primary call
// is the JSON API; on any failure one fallback attempt is made through the
// form-encoded API before giving up.
func (c *Client) Send(ctx context.Context, cfg Settings, msg Message) error {
	if !cfg.Configured() {
		return ErrNotConfigured
	}
	if !strings.Contains(msg.Recipient, "@") {
		return ErrNoRecipient
	}

	params := templateParams(msg)

	err := c.sendJSON(ctx, cfg, params)
	if err == nil {
		return nil
	}
	c.logger.Warn("primary send failed, trying form fallback", "error", err)

	if ferr := c.sendForm(ctx, cfg, params); ferr == nil {
		return nil
	}
	return err
}

// templateParams builds the parameter mapping, including the recipient and
// reply-to aliases different EmailJS templates expect.
func templateParams(msg Message) map[string]string {
	return map[string]string{
		"from_name":  msg.FromName,
		"from_email": msg.FromEmail,
		"subject":    msg.Subject,
		"message":    msg.Body,
		"to_email":   msg.Recipient,
		"to":         msg.Recipient,
		"recipient":  msg.Recipient,
		"reply_to":   msg.FromEmail,
		"user_name":  msg.FromName,
		"user_email": msg.FromEmail,
		"to_name":    "Portfolio Owner",
	}
}

func (c *Client) sendJSON(ctx context.Context, cfg Settings, params map[string]string) error {
	payload, err := json.Marshal(map[string]any{
		"service_id":      cfg.ServiceID,
		"template_id":     cfg.TemplateID,
		"user_id":         cfg.PublicKey,
		"template_params": params,
	})
	if err != nil {
		return fmt.Errorf("encoding send payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) sendForm(ctx context.Context, cfg Settings, params map[string]string) error {
	form := url.Values{}
	form.Set("service_id", cfg.ServiceID)
	form.Set("template_id", cfg.TemplateID)
	form.Set("user_id", cfg.PublicKey)
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendFormPath, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

// do executes the request and maps anything but a 200/"OK" response to a
// classified SendError.
func (c *Client) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SendError{Category: CategoryNetwork, Raw: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	text := strings.TrimSpace(string(body))

	if resp.StatusCode == http.StatusOK || text == "OK" {
		return nil
	}

	raw := fmt.Sprintf("%d %s", resp.StatusCode, text)
	return &SendError{Category: Classify(raw), Raw: raw}
}
