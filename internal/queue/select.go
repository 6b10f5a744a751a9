package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"scaling_probe/internal/core"
	"scaling_probe/pkg/utils"
)

// SelectBackend probes the candidates once, in order, and returns the first
// one that answers a ping. Nil candidates are skipped.
func SelectBackend(ctx context.Context, candidates ...core.QueueBackend) (core.QueueBackend, error) {
	var errs []error

	for _, backend := range candidates {
		if backend == nil {
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
		err := backend.Ping(probeCtx)
		cancel()

		if err == nil {
			logrus.Infof("Using queue backend %s", backend.Name())
			return backend, nil
		}

		logrus.Warnf("Queue backend %s is not reachable - %v", backend.Name(), err)
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no queue backend configured", core.ErrConnectivity)
	}

	return nil, fmt.Errorf("%w: no reachable queue backend: %w", core.ErrConnectivity, errors.Join(errs...))
}
