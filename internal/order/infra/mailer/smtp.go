package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/al1ce23/shitshop/internal/order/app"
	gomail "github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host   string
	Port   int
	Secure bool // implicit TLS; otherwise STARTTLS when offered
	User   string
	Pass   string
	From   string
}

// SMTP sends notifications through an SMTP relay. Sends are serialized
// since the client holds a single connection.
type SMTP struct {
	mu     sync.Mutex
	cfg    SMTPConfig
	client *gomail.Client
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.From == "" {
		return nil, errors.New("smtp: from address is empty")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(15 * time.Second),
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Pass),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTP{cfg: cfg, client: client}, nil
}

func (s *SMTP) Send(ctx context.Context, msg app.Message) error {
	m, err := buildMsg(s.cfg.From, msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMsg(from string, msg app.Message) (*gomail.Msg, error) {
	if msg.To == "" {
		return nil, errors.New("to address is empty")
	}

	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}
