package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/middleware"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock clock.Clock
	Money domain.MoneyFactory
}

// ServiceOption is a functional option for configuring the shared service base
type ServiceOption func(*BaseService)

// WithClock replaces the system clock, e.g. with a fixed one in tests.
func WithClock(clk clock.Clock) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clk
	}
}

func newBaseService(money domain.MoneyFactory, options ...ServiceOption) BaseService {
	base := BaseService{Clock: clock.NewReal(), Money: money}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeOwner fails with ErrForbidden when requester does not own the resource.
func (s *BaseService) AuthorizeOwner(ctx context.Context, resourceOwner, requester domain.UserID, resource string) error {
	if resourceOwner != requester {
		s.GetLogger(ctx).Warn("Ownership check failed",
			slog.String("resource", resource),
			slog.String("owner_id", resourceOwner.String()),
			slog.String("requester_id", requester.String()))
		return fmt.Errorf("%w: %s belongs to another user", apperrors.ErrForbidden, resource)
	}
	return nil
}

// moneyOf builds Money in currency, or in the configured default when currency is empty.
func (s *BaseService) moneyOf(amount decimal.Decimal, currency string) (domain.Money, error) {
	if currency == "" {
		return s.Money.Of(amount), nil
	}
	return domain.NewMoney(amount, currency)
}
