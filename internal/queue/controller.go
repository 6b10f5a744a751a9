package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"scaling_probe/internal/core"
	"scaling_probe/internal/envelope"
	"scaling_probe/pkg/utils"
)

type Options struct {
	Key             string
	TaskName        string
	Origin          string
	RoutingKey      string
	ArgumentPool    []string
	ProcessingDelay time.Duration
}

// Controller drives a single named work queue. It assumes it is the only
// writer while a test runs; there is no locking against other producers.
type Controller struct {
	backend core.QueueBackend
	clock   clock.Clock
	opts    Options
}

func NewController(backend core.QueueBackend, opts Options) *Controller {
	return NewControllerWithClock(backend, opts, clock.RealClock{})
}

func NewControllerWithClock(backend core.QueueBackend, opts Options, clk clock.Clock) *Controller {
	if opts.Key == "" {
		opts.Key = utils.DefaultQueueName
	}
	if opts.TaskName == "" {
		opts.TaskName = utils.DefaultTaskName
	}
	if len(opts.ArgumentPool) == 0 {
		opts.ArgumentPool = utils.SampleCities
	}

	return &Controller{
		backend: backend,
		clock:   clk,
		opts:    opts,
	}
}

func (c *Controller) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
	defer cancel()

	return c.backend.Ping(ctx)
}

// ReadLength is the fallible form of Length.
func (c *Controller) ReadLength(ctx context.Context) core.Result[int64] {
	ctx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
	defer cancel()

	n, err := c.backend.LLen(ctx, c.opts.Key)
	if err != nil {
		return core.Fail[int64](err)
	}

	return core.Ok(n)
}

// Length reports 0 when the backend cannot be read; the substitution is
// logged, which is the only way to tell it apart from an empty queue.
func (c *Controller) Length(ctx context.Context) int64 {
	return c.ReadLength(ctx).OrDefault(0, "llen", c.opts.Key)
}

func (c *Controller) argument(i int) string {
	return c.opts.ArgumentPool[i%len(c.opts.ArgumentPool)]
}

func (c *Controller) encode(i int) ([]byte, string, error) {
	item := core.NewWorkItem(c.opts.TaskName, []any{c.argument(i)}, core.EnvelopeMetadata{
		Origin:     c.opts.Origin,
		RoutingKey: c.opts.RoutingKey,
	})

	data, err := envelope.EncodeWorkItem(item)
	return data, item.ID(), err
}

// Enqueue pushes n work items onto the head of the queue. On failure it
// returns how many were pushed before the failing one.
func (c *Controller) Enqueue(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("number of tasks to enqueue must be positive, got %d", n)
	}

	batch := envelope.MarkerTaskName(c.clock.Now())

	for i := 0; i < n; i++ {
		data, id, err := c.encode(i)
		if err != nil {
			logrus.WithFields(logrus.Fields{"operation": "enqueue", "target": c.opts.Key}).Errorf("Failed to encode task %d - %v", i, err)
			return i, err
		}

		pushCtx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
		_, err = c.backend.LPush(pushCtx, c.opts.Key, data)
		cancel()

		if err != nil {
			logrus.WithFields(logrus.Fields{"operation": "lpush", "target": c.opts.Key}).Errorf("Failed to enqueue task %d of %d - %v", i+1, n, err)
			return i, err
		}

		logrus.Debugf("Enqueued task %s (%s) with argument %q", id, c.opts.TaskName, c.argument(i))
	}

	logrus.Infof("Added %d complete Celery messages to queue %s (batch %s)", n, c.opts.Key, batch)

	return n, nil
}

// Clear deletes the queue key and returns the number of keys removed.
func (c *Controller) Clear(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
	defer cancel()

	n, err := c.backend.Del(ctx, c.opts.Key)
	if err != nil {
		logrus.WithFields(logrus.Fields{"operation": "del", "target": c.opts.Key}).Errorf("Failed to clear queue - %v", err)
		return 0, err
	}

	logrus.Infof("Cleared %d queue(s)", n)

	return n, nil
}

// DequeueSimulated pops up to n items from the tail, oldest first, pausing
// between pops to emulate processing. It stops early once the queue is empty.
func (c *Controller) DequeueSimulated(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("number of tasks to process cannot be negative, got %d", n)
	}

	processed := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		popCtx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
		value, ok, err := c.backend.RPop(popCtx, c.opts.Key)
		cancel()

		if err != nil {
			logrus.WithFields(logrus.Fields{"operation": "rpop", "target": c.opts.Key}).Errorf("Failed to pop task - %v", err)
			return processed, err
		}
		if !ok {
			break
		}

		processed++
		logProcessed(processed, value)

		if i+1 < n && c.opts.ProcessingDelay > 0 {
			select {
			case <-ctx.Done():
				return processed, ctx.Err()
			case <-c.clock.After(c.opts.ProcessingDelay):
			}
		}
	}

	logrus.Infof("Processed %d tasks from queue %s", processed, c.opts.Key)

	return processed, nil
}

func logProcessed(index int, value []byte) {
	decoded, err := envelope.Decode(value)
	if errors.Is(err, core.ErrEncoding) {
		logrus.Infof("Processed task %d: %s", index, utils.Truncate(string(value), 50))
		return
	}

	logrus.Infof("Processed task %d: %s %s%s", index, decoded.ID(), decoded.Task(), envelope.ArgsRepr(decoded.Args))
}
