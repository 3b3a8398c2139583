// Package signaler runs long-lived tasks under one context that ends on
// SIGINT or SIGTERM, so that they shut down in unison.
package signaler

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrShutdownTimeout is returned by Wait when tasks outlive the shutdown timeout.
var ErrShutdownTimeout = errors.New("tasks did not stop before the shutdown timeout")

// Signaler owns the shared context and the tasks started on it.
type Signaler struct {
	ctx   context.Context
	stop  context.CancelFunc
	group *errgroup.Group
}

// Setup starts catching SIGINT and SIGTERM.
func Setup() *Signaler {
	return setup(context.Background())
}

func setup(parent context.Context) *Signaler {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	group, ctx := errgroup.WithContext(ctx)

	return &Signaler{
		ctx:   ctx,
		stop:  stop,
		group: group,
	}
}

// Start runs task on its own goroutine with the shared context. A task
// returning an error cancels the context for the others.
func (s *Signaler) Start(task func(context.Context) error) {
	s.group.Go(func() error {
		return task(s.ctx)
	})
}

// Shutdown cancels the shared context as if a signal had arrived.
func (s *Signaler) Shutdown() {
	s.stop()
}

// Wait blocks until all started tasks return, and returns the first error.
// Once the context is cancelled the tasks get timeout to finish.
func (s *Signaler) Wait(timeout time.Duration) error {
	defer s.stop()

	done := make(chan error, 1)
	go func() {
		done <- s.group.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-s.ctx.Done():
	}

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
