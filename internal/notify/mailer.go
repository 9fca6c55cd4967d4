package notify

import (
	"io"
	"log"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers a single message. Implementations are best-effort
// collaborators; callers log failures and move on.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Mailer sends mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *log.Logger
}

func NewMailer(host string, port int, user, pass, from string, logger *log.Logger) *Mailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		logger: logger,
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !strings.Contains(to, "@") {
		m.logger.Printf("mailer: skipped, invalid recipient %q", to)
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Printf("mailer: send to=%s subject=%q error=%v", to, subject, err)
		return err
	}
	return nil
}

// Discard is a Sender for deployments without SMTP credentials.
type Discard struct{}

func (Discard) Send(string, string, string) error { return nil }
