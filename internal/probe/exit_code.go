package probe

import (
	"context"
	"errors"

	"scaling_probe/internal/core"
)

const (
	ExitOK = iota
	ExitUsage
	ExitConnectivity
	ExitEncoding
	ExitNotFound
	ExitInterrupted
)

var ErrUsage = errors.New("invalid usage")

// ExitCode maps an error onto the process exit status. Interruption wins
// over the error class it surfaced through.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, core.ErrEncoding):
		return ExitEncoding
	case errors.Is(err, core.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, core.ErrConnectivity), errors.Is(err, context.DeadlineExceeded):
		return ExitConnectivity
	default:
		return ExitUsage
	}
}
