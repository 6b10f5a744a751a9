package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scaling_probe/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		length   int64
		replicas int
		expected core.DecisionClass
	}{
		{name: "backlog_single_replica", length: 10, replicas: 1, expected: core.ScaleUpExpected},
		{name: "drained_many_replicas", length: 3, replicas: 3, expected: core.ScaleDownExpected},
		{name: "backlog_scaled_out", length: 8, replicas: 2, expected: core.ScaledCorrectly},
		{name: "quiet_single_replica", length: 2, replicas: 1, expected: core.NoActionExpected},
		{name: "at_threshold_is_not_backlog", length: 5, replicas: 1, expected: core.NoActionExpected},
		{name: "just_over_threshold", length: 6, replicas: 1, expected: core.ScaleUpExpected},
		{name: "at_threshold_scaled_out", length: 5, replicas: 2, expected: core.ScaleDownExpected},
		{name: "backlog_no_replicas", length: 50, replicas: 0, expected: core.NoActionExpected},
		{name: "empty_no_replicas", length: 0, replicas: 0, expected: core.NoActionExpected},
	}

	policy := NewPolicy()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, policy.Classify(test.length, test.replicas))
		})
	}
}

func TestPolicyOptions(t *testing.T) {
	policy := NewPolicy(WithQueueThreshold(20), WithReplicaBaseline(2))

	assert.Equal(t, int64(20), policy.QueueThreshold)
	assert.Equal(t, 2, policy.ReplicaBaseline)

	assert.Equal(t, core.NoActionExpected, policy.Classify(10, 2))
	assert.Equal(t, core.ScaleUpExpected, policy.Classify(21, 2))
	assert.Equal(t, core.ScaleDownExpected, policy.Classify(20, 3))
	assert.Equal(t, core.ScaledCorrectly, policy.Classify(21, 4))
}

func TestExceedsThreshold(t *testing.T) {
	policy := NewPolicy()

	assert.False(t, policy.ExceedsThreshold(5))
	assert.True(t, policy.ExceedsThreshold(6))
}
