package loyalty

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Повтор операций с хранилищем при временных ошибках (экспоненциальная задержка)
type Retrier struct {
	tries   uint
	initial time.Duration
	max     time.Duration
	logger  *zap.Logger
}

func NewRetrier(logger *zap.Logger, tries int) *Retrier {
	if tries < 1 {
		tries = 1
	}
	return &Retrier{
		tries:   uint(tries),
		initial: 100 * time.Millisecond,
		max:     2 * time.Second,
		logger:  logger,
	}
}

func (r *Retrier) backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxInterval = r.max
	return b
}

// Do выполняет fn, повторяя только временные ошибки
func (r *Retrier) Do(ctx context.Context, op string, fn func() error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := fn()
		if err == nil {
			return struct{}{}, nil
		}
		if !IsTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(r.backoff()),
		backoff.WithMaxTries(r.tries),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.Warn("Storage retry",
				zap.Error(err),
				zap.String("service", op),
				zap.Duration("next", next),
			)
		}),
	)
	return err
}

// Временные ошибки: обрыв соединения до отправки запроса, сериализация, дедлок, класс 08
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001", pgErr.Code == "40P01":
			return true
		case strings.HasPrefix(pgErr.Code, "08"):
			return true
		}
		return false
	}
	return pgconn.SafeToRetry(err)
}
