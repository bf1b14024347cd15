package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
)

// sendMailRequest is the payload accepted by the mail relay service.
type sendMailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// HTTPMailerClient delivers transactional mail through the mail relay
// service over HTTP.
type HTTPMailerClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *logging.Logger
}

// NewHTTPMailerClient creates a new HTTP-based mailer client.
func NewHTTPMailerClient(cfg config.ServiceConfig, logger *logging.Logger) *HTTPMailerClient {
	return &HTTPMailerClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// Send delivers a single plain-text message.
func (c *HTTPMailerClient) Send(ctx context.Context, to, subject, body string) error {
	c.logger.Debug("Sending mail", logging.Fields{
		"to":      to,
		"subject": subject,
	})

	payload, err := json.Marshal(sendMailRequest{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/mail", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to send mail", logging.Fields{
			"to":    to,
			"error": err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail service returned status %d", resp.StatusCode)
	}

	c.logger.Info("Mail sent", logging.Fields{"to": to})
	return nil
}

// LogMailerClient writes mail to the log instead of delivering it. It is
// the default when FEATURE_MAIL_DISPATCH is off, and keeps local
// environments from needing a mail relay.
type LogMailerClient struct {
	logger *logging.Logger
}

// NewLogMailerClient creates a mailer that only logs.
func NewLogMailerClient(logger *logging.Logger) *LogMailerClient {
	return &LogMailerClient{logger: logger}
}

func (c *LogMailerClient) Send(ctx context.Context, to, subject, body string) error {
	c.logger.Info("Mail suppressed", logging.Fields{
		"to":      to,
		"subject": subject,
		"bytes":   len(body),
	})
	return nil
}
