package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a rendered email to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender configures a sender for host:port. Auth is used only when a
// user is set, so local relays without authentication work too.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	var sb strings.Builder
	sb.WriteString("From: " + s.from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
