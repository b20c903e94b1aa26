package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// Mailer delivers a notification email, optionally with an attachment.
type Mailer interface {
	Send(to, subject, body, attachment string) error
}

// SMTPMailer sends mail through an SMTP server using gomail.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      *logger.Logger
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(host string, port int, username, password, from string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
	}
}

// Send builds and dispatches the message. Attachment is a file path; an
// empty string sends a plain message.
func (m *SMTPMailer) Send(to, subject, body, attachment string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if attachment != "" {
		msg.Attach(attachment)
	}

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Errorw("Failed to send email", "error", err, "to", to, "subject", subject)
		return fmt.Errorf("notification: failed to send email to %s: %w", to, err)
	}

	m.log.Infow("Email sent", "to", to, "subject", subject, "attachment", attachment)
	return nil
}

// LogMailer only logs the send attempt. It is wired in when no SMTP host
// is configured so the batch stays runnable in development.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the message instead of delivering it.
func (m *LogMailer) Send(to, subject, body, attachment string) error {
	m.log.Infow("Mock email sent", "to", to, "subject", subject, "attachment", attachment)
	return nil
}
