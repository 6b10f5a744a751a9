package utils

import (
	"context"
	"os/signal"
	"syscall"
)

// TerminationContext is cancelled on SIGINT or SIGTERM.
func TerminationContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Truncate shortens s to at most n bytes for log lines.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
