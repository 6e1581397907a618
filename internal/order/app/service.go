package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/al1ce23/shitshop/internal/order/domain"
	"github.com/google/uuid"
)

// ErrDispatch is returned when a notification could not be delivered.
// Callers must not expose the wrapped cause.
var ErrDispatch = errors.New("order notification failed")

type Service struct {
	mailer Mailer
	shop   Shop
	log    *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewService(mailer Mailer, shop Shop, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		mailer: mailer,
		shop:   shop,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SubmitOrder validates p, sanitizes it, recomputes the total and sends
// the owner and customer notifications. It returns a *ValidationError
// when p is rejected and ErrDispatch when either mail failed.
func (s *Service) SubmitOrder(ctx context.Context, p domain.Payload) (domain.Order, error) {
	if problems := Validate(p); len(problems) > 0 {
		s.log.Info("order rejected", slog.Any("problems", problems))
		return domain.Order{}, &ValidationError{Problems: problems}
	}

	order := Sanitize(p)
	order.ID = s.newID()
	order.ReceivedAt = s.now()

	if err := s.dispatch(ctx, order); err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order submitted",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// dispatch attempts both sends even when the first fails.
func (s *Service) dispatch(ctx context.Context, order domain.Order) error {
	var errs []error

	if err := s.mailer.Send(ctx, OwnerMessage(s.shop, order)); err != nil {
		s.log.Error("owner notification failed", slog.String("order_id", order.ID), slog.Any("err", err))
		errs = append(errs, fmt.Errorf("owner: %w", err))
	}

	if err := s.mailer.Send(ctx, CustomerMessage(s.shop, order)); err != nil {
		s.log.Error("customer notification failed", slog.String("order_id", order.ID), slog.Any("err", err))
		errs = append(errs, fmt.Errorf("customer: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrDispatch, errors.Join(errs...))
	}
	return nil
}
