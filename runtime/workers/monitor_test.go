package workers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
	"webchat/contract"
	"webchat/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/shirou/gopsutil/process"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMonitorWorker_Collect(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	registry.EXPECT().Stats().Return(contract.RegistryStats{Connections: 3, Rooms: 2})

	w := NewMonitorWorker(logs.GetLoggerFromLevel(slog.LevelDebug), registry, time.Second)
	p, err := process.NewProcess(int32(os.Getpid()))
	req.NoError(err)

	stats, err := w.Collect(p)

	req.NoError(err)
	req.Equal(3, stats.Connections)
	req.Equal(2, stats.Rooms)
	req.Positive(stats.RSS)
}

func TestMonitorWorker_Run_Stops_With_Context(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	registry.EXPECT().Stats().Return(contract.RegistryStats{}).MinTimes(1)

	w := NewMonitorWorker(logs.GetLoggerFromLevel(slog.LevelDebug), registry, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	req.NoError(w.Run(ctx))
}
