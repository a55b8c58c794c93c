package cliapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	os.Kill,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

const stopTimeout = 10 * time.Second

type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Stopped() bool
}

// LifecycleAction builds the Lifecycle of an app. close lets the app end its
// own lifecycle.
type LifecycleAction func(ctx *cli.Context, close context.CancelCauseFunc) (Lifecycle, error)

// LifecycleCmd starts the Lifecycle built by fn and stops it on interrupt or
// when the app closes itself.
func LifecycleCmd(fn LifecycleAction) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		hostCtx := ctx.Context
		appCtx, appCancel := context.WithCancelCause(hostCtx)
		ctx.Context = appCtx

		interruptCtx, stopInterrupt := signal.NotifyContext(appCtx, interruptSignals...)
		defer stopInterrupt()
		go func() {
			<-interruptCtx.Done()
			appCancel(errors.New("interrupt signal"))
		}()

		appLifecycle, err := fn(ctx, appCancel)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to setup: %w", err), context.Cause(appCtx))
		}

		if err := appLifecycle.Start(appCtx); err != nil {
			return errors.Join(fmt.Errorf("failed to start: %w", err), context.Cause(appCtx))
		}

		<-appCtx.Done()
		log.Info("Shutting down", "cause", context.Cause(appCtx))

		stopCtx, stopCancel := context.WithTimeout(hostCtx, stopTimeout)
		defer stopCancel()
		if err := appLifecycle.Stop(stopCtx); err != nil {
			return fmt.Errorf("failed to stop: %w", err)
		}
		return nil
	}
}
