package workers

import (
	"context"
	"log/slog"
	"os"
	"time"
	"webchat/contract"

	"github.com/shirou/gopsutil/process"
)

// Stats is one sample of the relay's own load.
type Stats struct {
	Connections int
	Rooms       int
	RSS         uint64
	CPUPercent  float64
}

// MonitorWorker logs connection and room counts along with the
// process footprint every interval.
type MonitorWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	interval time.Duration
}

func NewMonitorWorker(log *slog.Logger, registry contract.IRegistry, interval time.Duration) *MonitorWorker {
	return &MonitorWorker{log: log, registry: registry, interval: interval}
}

func (w *MonitorWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping monitor")
			return nil
		case <-ticker.C:
			stats, err := w.Collect(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "error", err)
				continue
			}
			w.log.Info("Runtime stats",
				"connections", stats.Connections,
				"rooms", stats.Rooms,
				"rss_bytes", stats.RSS,
				"cpu_percent", stats.CPUPercent)
		}
	}
}

func (w *MonitorWorker) Collect(p *process.Process) (Stats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return Stats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return Stats{}, err
	}
	registryStats := w.registry.Stats()
	return Stats{
		Connections: registryStats.Connections,
		Rooms:       registryStats.Rooms,
		RSS:         memInfo.RSS,
		CPUPercent:  cpuPercent,
	}, nil
}
