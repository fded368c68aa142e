package serviceutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Fatal logs the error and exits with status 1.
func Fatal(msg string, err error) {
	if err != nil {
		slog.Error(msg, "err", err)
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	} else {
		slog.Error(msg)
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(1)
}

// Returns a context that will live until Ctrl+C is pressed
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
