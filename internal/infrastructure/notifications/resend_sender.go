package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/catermatch/backend/pkg/config"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendSender sends transactional email via the Resend HTTP API.
type ResendSender struct {
	apiKey     string
	from       string
	httpClient *http.Client
	baseURL    string
}

// NewResendSender creates a new Resend sender
func NewResendSender(cfg *config.EmailConfig) (*ResendSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY must be set")
	}

	return &ResendSender{
		apiKey: cfg.APIKey,
		from:   cfg.From,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultResendBaseURL,
	}, nil
}

// ResendEmailRequest represents the send-email request body
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ResendEmailResponse represents the API response
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// Send delivers a single HTML email and returns the Resend message id.
func (s *ResendSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	payload := ResendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Resend API error (status %d): %s", resp.StatusCode, string(body))
	}

	var emailResp ResendEmailResponse
	if err := json.Unmarshal(body, &emailResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if emailResp.ID == "" {
		return "", fmt.Errorf("no message ID in response")
	}

	return emailResp.ID, nil
}
