package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"helpmate/config"

	"github.com/pkg/errors"
)

// emailSender delivers messages over SMTP.
type emailSender struct {
	server   string
	port     int
	username string
	password string
	from     string
}

func newEmailSender(cfg *config.EmailConfig) *emailSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &emailSender{
		server:   cfg.SMTPServer,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     from,
	}
}

// Send delivers one message. net/smtp has no context support; the ctx is
// accepted for interface symmetry and checked before dialing.
func (s *emailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.server == "" || s.port == 0 || s.username == "" || s.password == "" {
		return errors.New("missing email configuration: SMTPServer, SMTPPort, Username, or Password is empty")
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "email send aborted")
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body)
	auth := smtp.PlainAuth("", s.username, s.password, s.server)
	addr := fmt.Sprintf("%s:%d", s.server, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message)); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", to)
	}

	return nil
}
