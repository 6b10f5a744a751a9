package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"scaling_probe/internal/core"
)

type State int

const (
	Sampling State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "Done"
	}

	return "Sampling"
}

type Sink interface {
	Record(observation core.Observation)
}

type Target struct {
	Namespace string
	Selector  string
}

// Loop samples queue depth and cluster state once per interval until the
// duration elapses or the context is cancelled. Ticks never overlap.
type Loop struct {
	queue   core.QueueReader
	cluster core.ClusterReader
	policy  Policy
	target  Target
	clock   clock.Clock

	Duration time.Duration
	Interval time.Duration

	sinks []Sink

	mutex sync.Mutex
	state State
	ticks int
}

func NewLoop(queue core.QueueReader, cluster core.ClusterReader, policy Policy, target Target, duration, interval time.Duration, sinks ...Sink) *Loop {
	return NewLoopWithClock(queue, cluster, policy, target, duration, interval, clock.RealClock{}, sinks...)
}

func NewLoopWithClock(queue core.QueueReader, cluster core.ClusterReader, policy Policy, target Target, duration, interval time.Duration, clk clock.Clock, sinks ...Sink) *Loop {
	return &Loop{
		queue:    queue,
		cluster:  cluster,
		policy:   policy,
		target:   target,
		clock:    clk,
		Duration: duration,
		Interval: interval,
		sinks:    sinks,
		state:    Sampling,
	}
}

func (l *Loop) State() State {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.state
}

func (l *Loop) Ticks() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.ticks
}

// Run returns nil once the duration has elapsed and ctx.Err() when stopped
// early. The deadline is checked before a tick starts, so a zero duration
// produces no observations. Ticks start one interval apart however long the
// reads take.
func (l *Loop) Run(ctx context.Context) error {
	if l.Interval <= 0 {
		return errors.New("monitor interval must be positive")
	}

	defer l.setState(Done)

	end := l.clock.Now().Add(l.Duration)

	for {
		if err := ctx.Err(); err != nil {
			logrus.Debugf("Monitor stopped after %d ticks - %v", l.Ticks(), err)
			return err
		}

		now := l.clock.Now()
		if !now.Before(end) {
			return nil
		}

		l.tick(ctx, now)

		wait := l.untilNextTick(now, end)
		if wait <= 0 {
			continue
		}

		timer := l.clock.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Debugf("Monitor stopped after %d ticks - %v", l.Ticks(), ctx.Err())
			return ctx.Err()
		case <-timer.C():
		}
	}
}

// untilNextTick never waits past the end of the window.
func (l *Loop) untilNextTick(started, end time.Time) time.Duration {
	next := started.Add(l.Interval)
	if next.After(end) {
		next = end
	}

	return next.Sub(l.clock.Now())
}

func (l *Loop) tick(ctx context.Context, now time.Time) {
	queueSample := core.QueueSample{
		Timestamp: now,
		Length:    l.queue.Length(ctx),
	}
	clusterSample := core.ClusterSample{
		RunningReplicas: l.cluster.RunningReplicaCount(ctx, l.target.Namespace, l.target.Selector),
		Autoscaler:      l.cluster.AutoscalerStatus(ctx, l.target.Namespace),
	}

	// Reads cut short by cancellation return defaults, not observations.
	if ctx.Err() != nil {
		return
	}

	observation := l.observe(queueSample, clusterSample)

	logrus.WithFields(logrus.Fields{
		"queue":    observation.QueueLength,
		"replicas": observation.Replicas,
		"ready":    observation.Ready,
	}).Tracef("Tick classified as %s", observation.Decision.Label())

	for _, sink := range l.sinks {
		sink.Record(observation)
	}

	l.mutex.Lock()
	l.ticks++
	l.mutex.Unlock()
}

func (l *Loop) observe(queueSample core.QueueSample, clusterSample core.ClusterSample) core.Observation {
	return core.Observation{
		Time:        queueSample.Timestamp,
		QueueLength: queueSample.Length,
		Replicas:    clusterSample.RunningReplicas,
		Ready:       clusterSample.Autoscaler.Ready,
		Decision:    l.policy.Classify(queueSample.Length, clusterSample.RunningReplicas),
	}
}

func (l *Loop) setState(state State) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.state = state
}
