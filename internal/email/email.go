// Package email delivers transactional notifications. Delivery is always
// best-effort: workflows that send mail treat a failed send as a warning,
// not an error, because the temporary credential is also returned to the
// calling administrator for manual relay.
package email

import (
	"fmt"

	"github.com/takamaro111/construction-management-app/internal/config"
)

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// NewSender picks an implementation from config: "resend" uses the Resend
// HTTP API, "smtp" uses a plain SMTP relay, anything else logs the message
// instead of sending it.
func NewSender(cfg *config.Config) Sender {
	switch cfg.EmailService {
	case "resend":
		return &ResendSender{APIKey: cfg.ResendAPIKey, From: cfg.FromEmail}
	case "smtp":
		return &SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.FromEmail,
		}
	default:
		return &LogSender{}
	}
}

// InvitationBody renders the invitation mail containing the temporary
// credential and first-login instructions.
func InvitationBody(name, email, tempPassword, loginURL string) string {
	return fmt.Sprintf(`Hello %s,

You have been invited to GENBA.

Login URL: %s
Email: %s
Temporary password: %s

Please sign in and change your password after your first login.

Do not share the temporary password with anyone.

GENBA Team`, name, loginURL, email, tempPassword)
}

// PasswordResetBody renders the reset notification mail.
func PasswordResetBody(name, email, tempPassword, loginURL string) string {
	return fmt.Sprintf(`Hello %s,

Your password has been reset.

Login URL: %s
Email: %s
New temporary password: %s

Please sign in and change your password.

Do not share the temporary password with anyone.

GENBA Team`, name, loginURL, email, tempPassword)
}
