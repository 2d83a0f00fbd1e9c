package mailer

import (
	"context"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/config"
	mail "github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithSSLPort(false),
	)
	if err != nil {
		return nil, err
	}

	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUsername
	}

	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return err
	}
	if err := mm.To(msg.To); err != nil {
		return err
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)

	return m.client.DialAndSendWithContext(ctx, mm)
}
