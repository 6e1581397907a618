package mailer

import (
	"context"
	"log/slog"

	"github.com/al1ce23/shitshop/internal/order/app"
)

// Log writes notifications to the logger instead of sending them.
// Meant for local development.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Send(ctx context.Context, msg app.Message) error {
	l.log.InfoContext(ctx, "mail (log driver)",
		slog.String("to", msg.To),
		slog.String("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
