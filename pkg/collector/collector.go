// Package collector gathers the endpoint subsystem documents locally, as a
// stand-in for a fleet-managed collector: host info, fixed-disk usage and
// CPU/memory load via gopsutil. Subsystems this platform cannot answer
// (service control, reboot flags, security agent) are written as honest
// placeholders so the auditor's document contract is always satisfied.
package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/endpoint"
	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
	"github.com/stoshu2/opsreport/pkg/output"
)

// sampleWindow is how long the CPU load is sampled before averaging.
const sampleWindow = 2 * time.Second

// Collect gathers every subsystem document and writes them into dir.
func Collect(rc *ops_io.RuntimeContext, dir string) (*endpoint.Documents, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, ops_err.NewIOError(
			fmt.Sprintf("cannot create collection directory %s", dir), err)
	}

	docs := &endpoint.Documents{
		SystemInfo: collectSystemInfo(rc),
		Disks:      collectDisks(rc),
		Resource:   collectResource(rc),
		Services:   []endpoint.Service{},
		Reboot:     endpoint.RebootState{Pending: false},
		Defender:   placeholderDefender(),
	}

	for name, doc := range map[string]interface{}{
		endpoint.SystemInfoFile: docs.SystemInfo,
		endpoint.DiskFile:       docs.Disks,
		endpoint.ResourceFile:   docs.Resource,
		endpoint.ServicesFile:   docs.Services,
		endpoint.RebootFile:     docs.Reboot,
		endpoint.DefenderFile:   docs.Defender,
	} {
		path := filepath.Join(dir, name)
		if err := output.JSONToFile(path, doc); err != nil {
			return nil, ops_err.NewIOError(
				fmt.Sprintf("cannot write collector document %s", path), err)
		}
	}

	logger.Info("✅ Collection complete",
		zap.String("dir", dir),
		zap.String("host", docs.SystemInfo.Hostname),
		zap.Int("disks", len(docs.Disks)))
	return docs, nil
}

func collectSystemInfo(rc *ops_io.RuntimeContext) endpoint.SystemInfo {
	logger := otelzap.Ctx(rc.Ctx)

	info := endpoint.SystemInfo{Hostname: "unknown", OS: "unknown"}
	hi, err := host.InfoWithContext(rc.Ctx)
	if err != nil {
		logger.Warn("Host info unavailable", zap.Error(err))
		return info
	}

	info.Hostname = hi.Hostname
	info.OS = hi.Platform
	info.OSVersion = hi.PlatformVersion
	uptime := float64(hi.Uptime) / 3600.0
	info.UptimeHours = &uptime
	info.BootTime = time.Unix(int64(hi.BootTime), 0).Format("2006-01-02T15:04:05")
	return info
}

func collectDisks(rc *ops_io.RuntimeContext) []endpoint.Disk {
	logger := otelzap.Ctx(rc.Ctx)

	parts, err := disk.PartitionsWithContext(rc.Ctx, false)
	if err != nil {
		logger.Warn("Disk partitions unavailable", zap.Error(err))
		return nil
	}

	disks := make([]endpoint.Disk, 0, len(parts))
	for _, p := range parts {
		d := endpoint.Disk{Drive: p.Mountpoint, VolumeName: p.Device}
		usage, err := disk.UsageWithContext(rc.Ctx, p.Mountpoint)
		if err != nil {
			// leave the pointers nil: the auditor flags missing data
			logger.Warn("Disk usage unavailable",
				zap.String("mountpoint", p.Mountpoint), zap.Error(err))
			disks = append(disks, d)
			continue
		}
		sizeGB := float64(usage.Total) / (1 << 30)
		freeGB := float64(usage.Free) / (1 << 30)
		freePct := 100.0 - usage.UsedPercent
		d.SizeGB = &sizeGB
		d.FreeGB = &freeGB
		d.FreePercent = &freePct
		disks = append(disks, d)
	}
	return disks
}

func collectResource(rc *ops_io.RuntimeContext) endpoint.Resource {
	logger := otelzap.Ctx(rc.Ctx)
	res := endpoint.Resource{}

	if pcts, err := cpu.PercentWithContext(rc.Ctx, sampleWindow, false); err == nil && len(pcts) > 0 {
		res.CPULoadPercent = &pcts[0]
	} else {
		logger.Warn("CPU load unavailable", zap.Error(err))
	}

	if vm, err := mem.VirtualMemoryWithContext(rc.Ctx); err == nil {
		used := vm.UsedPercent
		res.MemoryUsedPercent = &used
	} else {
		logger.Warn("Memory usage unavailable", zap.Error(err))
	}

	return res
}

func placeholderDefender() endpoint.DefenderState {
	available := false
	return endpoint.DefenderState{
		Available: &available,
		Notes:     "security agent state not collected on this platform",
	}
}
