package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"scaling_probe/internal/core"
	mock_core "scaling_probe/mock"
)

func TestSelectPrefersDirect(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	direct := mock_core.NewMockQueueBackend(mockCtrl)
	relay := mock_core.NewMockQueueBackend(mockCtrl)

	direct.EXPECT().Ping(gomock.Any()).Return(nil)
	direct.EXPECT().Name().Return("redis://10.0.0.1:6379").AnyTimes()

	selected, err := SelectBackend(context.Background(), direct, relay)
	require.NoError(t, err)
	assert.Same(t, direct, selected)
}

func TestSelectFallsBackToRelay(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	direct := mock_core.NewMockQueueBackend(mockCtrl)
	relay := mock_core.NewMockQueueBackend(mockCtrl)

	direct.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp: lookup redis-redis-chart: no such host"))
	direct.EXPECT().Name().Return("redis://redis-redis-chart:6379").AnyTimes()
	relay.EXPECT().Ping(gomock.Any()).Return(nil)
	relay.EXPECT().Name().Return("relay://backend/backend-0").AnyTimes()

	selected, err := SelectBackend(context.Background(), direct, relay)
	require.NoError(t, err)
	assert.Same(t, relay, selected)
}

func TestSelectNothingReachable(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	direct := mock_core.NewMockQueueBackend(mockCtrl)
	direct.EXPECT().Ping(gomock.Any()).Return(errors.New("refused"))
	direct.EXPECT().Name().Return("redis://127.0.0.1:6379").AnyTimes()

	_, err := SelectBackend(context.Background(), direct, nil)
	assert.ErrorIs(t, err, core.ErrConnectivity)

	_, err = SelectBackend(context.Background())
	assert.ErrorIs(t, err, core.ErrConnectivity)
}
