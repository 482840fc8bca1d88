package service

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

// SignalContext is cancelled on SIGINT or SIGTERM. A second signal exits the
// process. It can only be called once per process.
func SignalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := signals.SetupSignalHandler()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
