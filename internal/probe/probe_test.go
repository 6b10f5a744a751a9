package probe

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	testingclock "k8s.io/utils/clock/testing"

	"scaling_probe/internal/core"
	"scaling_probe/internal/envelope"
	"scaling_probe/internal/monitor"
	"scaling_probe/internal/queue"
	mock_core "scaling_probe/mock"
)

var probeTarget = monitor.Target{Namespace: "backend", Selector: "app=backend"}

type harness struct {
	probe   *Probe
	server  *miniredis.Miniredis
	cluster *mock_core.MockClusterReader
	out     *bytes.Buffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	controller := queue.NewController(queue.NewRedisBackend(client), queue.Options{Key: "celery"})

	mockCtrl := gomock.NewController(t)
	t.Cleanup(mockCtrl.Finish)
	cluster := mock_core.NewMockClusterReader(mockCtrl)

	out := &bytes.Buffer{}
	opts = append([]Option{WithMonitorWindow(0, 15*time.Second), WithClock(testingclock.NewFakeClock(time.Now()))}, opts...)

	return &harness{
		probe:   New(controller, cluster, monitor.NewPolicy(), probeTarget, out, opts...),
		server:  server,
		cluster: cluster,
		out:     out,
	}
}

func (h *harness) seed(t *testing.T, n int) {
	for i := 0; i < n; i++ {
		data, err := envelope.Encode("app.fetch_weather_data", []any{fmt.Sprintf("city-%d", i)})
		require.NoError(t, err)
		_, err = h.server.Lpush("celery", string(data))
		require.NoError(t, err)
	}
}

func TestRunScalingTest(t *testing.T) {
	h := newHarness(t)

	h.cluster.EXPECT().RunningReplicaCount(gomock.Any(), "backend", "app=backend").Return(1)
	h.cluster.EXPECT().AutoscalerStatus(gomock.Any(), "backend").Return(core.AutoscalerStatus{Name: "backend-scaler", Ready: core.ReadyTrue, TriggerCount: 1})

	require.NoError(t, h.probe.RunScalingTest(context.Background(), 15))

	length, err := h.server.List("celery")
	require.NoError(t, err)
	assert.Len(t, length, 15)

	output := h.out.String()
	assert.Contains(t, output, "Redis connection verified")
	assert.Contains(t, output, "   Queue Length: 0\n")
	assert.Contains(t, output, "   Pod Count: 1\n")
	assert.Contains(t, output, "   KEDA Ready: True\n")
	assert.Contains(t, output, "   KEDA Triggers: 1\n")
	assert.Contains(t, output, "   New Queue Length: 15\n")
	assert.Contains(t, output, "Queue length (15) exceeds threshold (5)")
	assert.Contains(t, output, "Monitoring completed")
}

func TestRunScalingTestBelowThreshold(t *testing.T) {
	h := newHarness(t)

	h.cluster.EXPECT().RunningReplicaCount(gomock.Any(), "backend", "app=backend").Return(1)
	h.cluster.EXPECT().AutoscalerStatus(gomock.Any(), "backend").Return(core.UnknownAutoscalerStatus())

	require.NoError(t, h.probe.RunScalingTest(context.Background(), 5))
	assert.Contains(t, h.out.String(), "Queue length (5) below threshold (5)")
	assert.Contains(t, h.out.String(), "   KEDA Ready: Unknown\n")
}

func TestRunScalingTestWithoutRedis(t *testing.T) {
	h := newHarness(t)
	h.server.Close()

	err := h.probe.RunScalingTest(context.Background(), 15)
	assert.ErrorIs(t, err, core.ErrConnectivity)
	assert.Equal(t, ExitConnectivity, ExitCode(err))
	assert.Contains(t, h.out.String(), "Cannot connect to Redis")
}

func TestClearQueue(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 4)

	require.NoError(t, h.probe.ClearQueue(context.Background()))
	assert.False(t, h.server.Exists("celery"))
	assert.Contains(t, h.out.String(), "Queue cleared. Current length: 0")

	require.NoError(t, h.probe.ClearQueue(context.Background()))
}

func TestSimulateProcessing(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 5)

	require.NoError(t, h.probe.SimulateProcessing(context.Background(), 3))

	output := h.out.String()
	assert.Contains(t, output, "   Initial queue length: 5\n")
	assert.Contains(t, output, "   Processed 3 tasks\n")
	assert.Contains(t, output, "   Final queue length: 2\n")
}

func TestMonitorOnlyWritesSinks(t *testing.T) {
	recorded := &countingSink{}
	h := newHarness(t, WithSinks(recorded))
	h.seed(t, 8)

	require.NoError(t, h.probe.MonitorOnly(context.Background()))
	assert.Contains(t, h.out.String(), "Time         Queue    Pods   KEDA Ready   Action")
	assert.Zero(t, recorded.count, "a zero-length window takes no samples")
}

func TestMonitorInterrupted(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.probe.Monitor(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitInterrupted, ExitCode(err))
	assert.NotContains(t, h.out.String(), "Monitoring completed")
}

type countingSink struct {
	count int
}

func (c *countingSink) Record(core.Observation) {
	c.count++
}
