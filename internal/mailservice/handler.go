package mailservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

func NewMailService(host string, port int, username, password, sender, recipient string, logger MailLogger) *MailService {
	return &MailService{
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		recipient: recipient,
		logger:    logger,
	}
}

// SendContactMessage relays a contact form submission to the site owner. It is sent once
// and any delivery failure is returned to the caller.
func (s *MailService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.recipient == "" {
		return errors.New("contact recipient is not configured")
	}

	replyTo := strings.TrimSpace(msg.Email)
	if strings.ContainsAny(replyTo, "\r\n") {
		replyTo = ""
	}

	err := s.m.send(s.recipient, replyTo, msg, contactFormTemplate)
	if err != nil {
		s.logger.Error("could not send contact message", slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("contact message sent", slog.String("email", replyTo))

	return nil
}
