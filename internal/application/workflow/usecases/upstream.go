package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
)

// upstream bounds every persistence, report store and guard call with the
// configured timeout.
type upstream struct {
	timeout time.Duration
}

func (u upstream) do(ctx context.Context, fn func(ctx context.Context) error) error {
	cctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	err := fn(cctx)
	if err != nil && isDeadline(cctx, err) {
		return fmt.Errorf("%w: %v", workflow.ErrUpstreamTimeout, err)
	}
	return err
}

func fetch[T any](ctx context.Context, u upstream, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := u.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

func isDeadline(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
