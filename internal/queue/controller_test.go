package queue

import (
	"context"
	"errors"
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
	mock_core "scaling_probe/mock"
)

func newMiniredisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBackend(client), server
}

func popArgument(t *testing.T, backend core.QueueBackend, key string) string {
	value, ok, err := backend.RPop(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "queue unexpectedly empty")

	decoded, err := envelope.Decode(value)
	require.NoError(t, err)
	require.Len(t, decoded.Args, 1)

	return decoded.Args[0].(string)
}

func TestEnqueueIncreasesLengthByN(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery"})
	ctx := context.Background()

	before := ctrl.Length(ctx)

	n, err := ctrl.Enqueue(ctx, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, before+15, ctrl.Length(ctx))

	n, err = ctrl.Enqueue(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, before+22, ctrl.Length(ctx))
}

func TestEnqueueRoundRobinArguments(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery", ArgumentPool: []string{"London", "Paris", "Oslo"}})

	_, err := ctrl.Enqueue(context.Background(), 5)
	require.NoError(t, err)

	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, popArgument(t, backend, "celery"))
	}

	assert.Equal(t, []string{"London", "Paris", "Oslo", "London", "Paris"}, got)
}

func TestEnqueueWritesWorkerReadableEnvelopes(t *testing.T) {
	backend, server := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery", TaskName: "app.fetch_weather_data", Origin: "probe@test"})

	_, err := ctrl.Enqueue(context.Background(), 1)
	require.NoError(t, err)

	items, err := server.List("celery")
	require.NoError(t, err)
	require.Len(t, items, 1)

	decoded, err := envelope.Decode([]byte(items[0]))
	require.NoError(t, err)
	assert.Equal(t, "app.fetch_weather_data", decoded.Task())
	assert.Equal(t, []any{"London"}, decoded.Args)
	assert.Equal(t, "probe@test", decoded.Message.Headers.Origin)
	assert.Equal(t, decoded.ID(), decoded.Message.Properties.CorrelationID)
}

func TestEnqueueRejectsNonPositive(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{})

	for _, n := range []int{0, -3} {
		count, err := ctrl.Enqueue(context.Background(), n)
		assert.Error(t, err)
		assert.Zero(t, count)
	}
}

func TestEnqueuePartialFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	backend := mock_core.NewMockQueueBackend(mockCtrl)
	pushErr := fmt.Errorf("%w: connection reset", core.ErrConnectivity)

	gomock.InOrder(
		backend.EXPECT().LPush(gomock.Any(), "celery", gomock.Any()).Return(int64(1), nil),
		backend.EXPECT().LPush(gomock.Any(), "celery", gomock.Any()).Return(int64(2), nil),
		backend.EXPECT().LPush(gomock.Any(), "celery", gomock.Any()).Return(int64(0), pushErr),
	)

	n, err := NewController(backend, Options{Key: "celery"}).Enqueue(context.Background(), 10)
	assert.Equal(t, 2, n, "only the pushes before the failure count")
	assert.ErrorIs(t, err, core.ErrConnectivity)
}

func TestEnqueueEncodingErrorAbortsBatch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	backend := mock_core.NewMockQueueBackend(mockCtrl)
	backend.EXPECT().LPush(gomock.Any(), "celery", gomock.Any()).Return(int64(1), nil).Times(1)

	pool := []string{"London", string([]byte{0xc3, 0x28})}
	n, err := NewController(backend, Options{Key: "celery", ArgumentPool: pool}).Enqueue(context.Background(), 4)

	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, core.ErrEncoding)
}

func TestDequeueIsFIFO(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery", ArgumentPool: []string{"first", "second", "third"}})
	ctx := context.Background()

	_, err := ctrl.Enqueue(ctx, 3)
	require.NoError(t, err)

	processed, err := ctrl.DequeueSimulated(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	// the two oldest are gone, the newest is still waiting at the tail
	assert.Equal(t, int64(1), ctrl.Length(ctx))
	assert.Equal(t, "third", popArgument(t, backend, "celery"))
}

func TestDequeueStopsWhenEmpty(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery"})
	ctx := context.Background()

	_, err := ctrl.Enqueue(ctx, 2)
	require.NoError(t, err)

	processed, err := ctrl.DequeueSimulated(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Zero(t, ctrl.Length(ctx))

	processed, err = ctrl.DequeueSimulated(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestDequeuePausesBetweenPops(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	fakeClock := testingclock.NewFakeClock(time.Now())
	ctrl := NewControllerWithClock(backend, Options{Key: "celery", ProcessingDelay: time.Second}, fakeClock)
	ctx := context.Background()

	_, err := ctrl.Enqueue(ctx, 3)
	require.NoError(t, err)

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := ctrl.DequeueSimulated(ctx, 3)
		done <- result{n, err}
	}()

	for i := 0; i < 2; i++ {
		require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)
		assert.Equal(t, int64(2-i), ctrl.Length(ctx))
		fakeClock.Step(time.Second)
	}

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, 3, res.n)
	case <-time.After(time.Second):
		t.Fatal("simulated processing did not finish")
	}
}

func TestDequeueHonoursCancellation(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	fakeClock := testingclock.NewFakeClock(time.Now())
	ctrl := NewControllerWithClock(backend, Options{Key: "celery", ProcessingDelay: time.Hour}, fakeClock)

	_, err := ctrl.Enqueue(context.Background(), 3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var processed int
	go func() {
		var err error
		processed, err = ctrl.DequeueSimulated(ctx, 3)
		done <- err
	}()

	require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, processed)
	case <-time.After(time.Second):
		t.Fatal("cancellation was not honoured during the pause")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	backend, _ := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery"})
	ctx := context.Background()

	_, err := ctrl.Enqueue(ctx, 4)
	require.NoError(t, err)

	removed, err := ctrl.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = ctrl.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
	assert.Zero(t, ctrl.Length(ctx))
}

func TestLengthSubstitutesZeroOnFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	backend := mock_core.NewMockQueueBackend(mockCtrl)
	backend.EXPECT().LLen(gomock.Any(), "celery").Return(int64(0), fmt.Errorf("%w: %v", core.ErrConnectivity, context.DeadlineExceeded)).Times(2)

	ctrl := NewController(backend, Options{Key: "celery"})

	_, err := ctrl.ReadLength(context.Background()).Unwrap()
	assert.True(t, errors.Is(err, core.ErrConnectivity))
	assert.Zero(t, ctrl.Length(context.Background()))
}

func TestLengthOnUnreachableServer(t *testing.T) {
	backend, server := newMiniredisBackend(t)
	ctrl := NewController(backend, Options{Key: "celery"})

	_, err := ctrl.Enqueue(context.Background(), 3)
	require.NoError(t, err)

	server.Close()

	assert.Zero(t, ctrl.Length(context.Background()))
}
