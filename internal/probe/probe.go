package probe

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"scaling_probe/internal/core"
	"scaling_probe/internal/monitor"
)

type Queue interface {
	core.QueueReader
	Ping(ctx context.Context) error
	Enqueue(ctx context.Context, n int) (int, error)
	Clear(ctx context.Context) (int64, error)
	DequeueSimulated(ctx context.Context, n int) (int, error)
}

type Option func(*Probe)

func WithMonitorWindow(duration, interval time.Duration) Option {
	return func(p *Probe) {
		p.duration = duration
		p.interval = interval
	}
}

// WithSinks adds observation sinks next to the console table.
func WithSinks(sinks ...monitor.Sink) Option {
	return func(p *Probe) {
		p.sinks = append(p.sinks, sinks...)
	}
}

func WithClock(clk clock.Clock) Option {
	return func(p *Probe) {
		p.clock = clk
	}
}

// Probe runs the user-facing flows. Results go to out, diagnostics to the
// logger.
type Probe struct {
	queue   Queue
	cluster core.ClusterReader
	policy  monitor.Policy
	target  monitor.Target
	out     io.Writer

	duration time.Duration
	interval time.Duration
	sinks    []monitor.Sink
	clock    clock.Clock
}

type InitialState struct {
	QueueLength int64
	Replicas    int
	Autoscaler  core.AutoscalerStatus
}

func New(queue Queue, cluster core.ClusterReader, policy monitor.Policy, target monitor.Target, out io.Writer, opts ...Option) *Probe {
	p := &Probe{
		queue:   queue,
		cluster: cluster,
		policy:  policy,
		target:  target,
		out:     out,
		clock:   clock.RealClock{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Probe) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Probe) CheckConnection(ctx context.Context) error {
	if err := p.queue.Ping(ctx); err != nil {
		p.printf("Redis connection failed: %v\n", err)
		return err
	}

	p.printf("Redis connection verified\n")

	return nil
}

func (p *Probe) InitialState(ctx context.Context) InitialState {
	state := InitialState{
		QueueLength: p.queue.Length(ctx),
		Replicas:    p.cluster.RunningReplicaCount(ctx, p.target.Namespace, p.target.Selector),
		Autoscaler:  p.cluster.AutoscalerStatus(ctx, p.target.Namespace),
	}

	p.printf("\nInitial State:\n")
	p.printf("   Queue Length: %d\n", state.QueueLength)
	p.printf("   Pod Count: %d\n", state.Replicas)
	p.printf("   KEDA Ready: %s\n", state.Autoscaler.Ready)
	p.printf("   KEDA Triggers: %d\n", state.Autoscaler.TriggerCount)

	return state
}

// RunScalingTest checks the connection, reports the starting point, enqueues
// n tasks and then watches how the cluster reacts.
func (p *Probe) RunScalingTest(ctx context.Context, n int) error {
	p.printf("KEDA Redis Queue Scaling Test\n")
	p.printf("%s\n", strings.Repeat("=", 50))

	if err := p.CheckConnection(ctx); err != nil {
		p.printf("Cannot connect to Redis. Exiting.\n")
		return err
	}

	p.InitialState(ctx)

	p.printf("\nAdding %d tasks to trigger scaling...\n", n)
	added, err := p.queue.Enqueue(ctx, n)
	if err != nil {
		p.printf("Failed to add tasks after %d of %d. Exiting.\n", added, n)
		return err
	}

	length := p.queue.Length(ctx)
	p.printf("   New Queue Length: %d\n", length)

	if p.policy.ExceedsThreshold(length) {
		p.printf("Queue length (%d) exceeds threshold (%d)\n", length, p.policy.QueueThreshold)
		p.printf("   KEDA should scale up beyond %d replica(s)\n", p.policy.ReplicaBaseline)
	} else {
		p.printf("Queue length (%d) below threshold (%d)\n", length, p.policy.QueueThreshold)
	}

	p.printf("\nMonitoring scaling behavior...\n")

	return p.Monitor(ctx)
}

func (p *Probe) Monitor(ctx context.Context) error {
	table := monitor.NewTableSink(p.out)
	sinks := append([]monitor.Sink{table}, p.sinks...)

	loop := monitor.NewLoopWithClock(p.queue, p.cluster, p.policy, p.target, p.duration, p.interval, p.clock, sinks...)

	table.Begin(p.duration, p.interval)
	err := loop.Run(ctx)
	if err != nil {
		p.printf("Monitoring stopped after %d checks: %v\n", loop.Ticks(), err)
		return err
	}

	table.End()
	logrus.Debugf("Monitor finished with %d observations", loop.Ticks())

	return nil
}

func (p *Probe) ClearQueue(ctx context.Context) error {
	p.printf("Clearing Redis queue...\n")

	if err := p.CheckConnection(ctx); err != nil {
		return err
	}

	if _, err := p.queue.Clear(ctx); err != nil {
		return err
	}

	p.printf("Queue cleared. Current length: %d\n", p.queue.Length(ctx))

	return nil
}

func (p *Probe) SimulateProcessing(ctx context.Context, n int) error {
	p.printf("Simulating processing of %d tasks...\n", n)

	if err := p.CheckConnection(ctx); err != nil {
		return err
	}

	p.printf("   Initial queue length: %d\n", p.queue.Length(ctx))

	processed, err := p.queue.DequeueSimulated(ctx, n)
	if err != nil {
		p.printf("   Stopped after %d tasks: %v\n", processed, err)
		return err
	}

	p.printf("   Processed %d tasks\n", processed)
	p.printf("   Final queue length: %d\n", p.queue.Length(ctx))

	return nil
}

func (p *Probe) MonitorOnly(ctx context.Context) error {
	p.printf("Monitoring KEDA scaling status...\n")

	if err := p.CheckConnection(ctx); err != nil {
		return err
	}

	return p.Monitor(ctx)
}
