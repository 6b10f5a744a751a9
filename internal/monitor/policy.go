package monitor

import (
	"scaling_probe/internal/core"
	"scaling_probe/pkg/utils"
)

// Policy mirrors the autoscaler trigger the harness is checking against. It
// is not derived from the trigger spec; configure it to match the deployment.
type Policy struct {
	QueueThreshold  int64
	ReplicaBaseline int
}

type PolicyOption func(*Policy)

func WithQueueThreshold(threshold int64) PolicyOption {
	return func(p *Policy) {
		p.QueueThreshold = threshold
	}
}

func WithReplicaBaseline(baseline int) PolicyOption {
	return func(p *Policy) {
		p.ReplicaBaseline = baseline
	}
}

func NewPolicy(opts ...PolicyOption) Policy {
	p := Policy{
		QueueThreshold:  utils.DefaultQueueThreshold,
		ReplicaBaseline: utils.DefaultReplicaBaseline,
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// ExceedsThreshold is strict: a queue exactly at the threshold does not
// warrant scaling.
func (p Policy) ExceedsThreshold(length int64) bool {
	return length > p.QueueThreshold
}

// Classify applies the rules in order, first match wins.
func (p Policy) Classify(length int64, replicas int) core.DecisionClass {
	busy := p.ExceedsThreshold(length)

	switch {
	case busy && replicas == p.ReplicaBaseline:
		return core.ScaleUpExpected
	case !busy && replicas > p.ReplicaBaseline:
		return core.ScaleDownExpected
	case busy && replicas > p.ReplicaBaseline:
		return core.ScaledCorrectly
	default:
		return core.NoActionExpected
	}
}
