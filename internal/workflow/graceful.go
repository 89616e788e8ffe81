// Package workflow holds process lifecycle helpers shared by the commands.
package workflow

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/imtaco/dailyco-go/internal/log"
)

// ErrShutdownTimeout is returned when the shutdown action outlives its budget.
var ErrShutdownTimeout = errors.New("shutdown timeout exceeded")

type ShutdownAction func(ctx context.Context) error

// WaitGracefulShutdown blocks until ctx is done or the process receives
// SIGINT/SIGTERM, then runs action with a fresh context bounded by timeout.
func WaitGracefulShutdown(
	ctx context.Context,
	logger *log.Logger,
	action ShutdownAction,
	timeout time.Duration,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("Starting graceful shutdown")

	ctxClean, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.Errorf("panic during shutdown: %v", r)
			}
		}()
		done <- action(ctxClean)
	}()

	select {
	case <-ctxClean.Done():
		logger.Warn("Shutdown timeout exceeded, forcing exit", log.Duration("timeout", timeout))
		return ErrShutdownTimeout
	case err := <-done:
		if err != nil {
			logger.Error("Graceful shutdown failed", log.Error(err))
			return err
		}
		logger.Info("Graceful shutdown completed")
		return nil
	}
}
