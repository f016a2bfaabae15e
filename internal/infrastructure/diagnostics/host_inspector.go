package diagnostics

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/dreschagin/macro-watch/internal/application/port"
)

// GopsutilHostInspector reports basic facts about the machine producing
// a report. Implements port.HostInspector.
type GopsutilHostInspector struct{}

func NewGopsutilHostInspector() *GopsutilHostInspector {
	return &GopsutilHostInspector{}
}

func (i *GopsutilHostInspector) Inspect(ctx context.Context) (port.HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return port.HostInfo{}, fmt.Errorf("read host info: %w", err)
	}

	result := port.HostInfo{
		Hostname:    info.Hostname,
		Platform:    fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
		UptimeHours: float64(info.Uptime) / 3600,
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		result.MemUsedPercent = vm.UsedPercent
	}

	return result, nil
}
