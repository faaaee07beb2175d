package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	APIKey string
	From   string
}

func (s *ResendSender) Send(to, subject, body string) error {
	if s.APIKey == "" {
		return fmt.Errorf("resend: API key not configured")
	}

	payload := resendRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Text:    body,
		HTML:    strings.ReplaceAll(body, "\n", "<br>"),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}

	return nil
}

// LogSender records the message instead of delivering it. Used when no
// email service is configured so invitations degrade to manual relay of
// the returned temporary password.
type LogSender struct{}

func (s *LogSender) Send(to, subject, body string) error {
	slog.Info("email delivery not configured, logging message",
		"to", to, "subject", subject)
	return nil
}
