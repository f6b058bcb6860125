package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandeepkv93/fraudguard/internal/domain"
)

// CodeDispatcher delivers a verification code to a phone. Implementations must return
// promptly once ctx is cancelled.
type CodeDispatcher interface {
	Dispatch(ctx context.Context, phone, code string) error
}

// DevSMSDispatcher stands in for an SMS gateway: it waits out a configurable latency and
// logs the code.
type DevSMSDispatcher struct {
	logger  *slog.Logger
	latency time.Duration
}

func NewDevSMSDispatcher(logger *slog.Logger, latency time.Duration) *DevSMSDispatcher {
	return &DevSMSDispatcher{logger: logger, latency: latency}
}

func (d *DevSMSDispatcher) Dispatch(ctx context.Context, phone, code string) error {
	if d.latency > 0 {
		timer := time.NewTimer(d.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.InfoContext(ctx, "verification code dispatched",
		"phone", domain.MaskPhone(phone),
		"code", code,
	)
	return nil
}
