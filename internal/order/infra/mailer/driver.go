package mailer

import (
	"fmt"
	"log/slog"

	"github.com/al1ce23/shitshop/internal/order/app"
	"github.com/al1ce23/shitshop/pkg/config"
)

// New builds the Mailer selected by cfg.Driver.
func New(cfg config.Mail, shopName string, log *slog.Logger) (app.Mailer, error) {
	switch cfg.Driver {
	case "smtp", "":
		return NewSMTP(SMTPConfig{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			Secure: cfg.SMTPSecure,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPass,
			From:   cfg.From,
		})
	case "sendgrid":
		return NewSendGrid(cfg.SendGridAPIKey, cfg.From, shopName)
	case "log":
		return NewLog(log), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
