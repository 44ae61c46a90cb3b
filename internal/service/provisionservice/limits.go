package provisionservice

import (
	"errors"

	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/panel"
)

var ErrInvalidHardware = errors.New("hardware spec needs positive cpu and ram")

const defaultIO = 500

type LimitsConfig struct {
	DiskPerRAM    int
	DiskPerCPU    int
	MinDiskMB     int
	MaxDiskMB     int
	BackupRAMStep int
	BackupCPUStep int
	MinBackups    int
	MaxBackups    int
	Allocations   int
	Databases     int
}

func LimitsFromConfig(cfg config.Provision) LimitsConfig {
	return LimitsConfig{
		DiskPerRAM:    cfg.DiskPerRAM,
		DiskPerCPU:    cfg.DiskPerCPU,
		MinDiskMB:     cfg.MinDiskMB,
		MaxDiskMB:     cfg.MaxDiskMB,
		BackupRAMStep: cfg.BackupRAMStep,
		BackupCPUStep: cfg.BackupCPUStep,
		MinBackups:    cfg.MinBackups,
		MaxBackups:    cfg.MaxBackups,
		Allocations:   cfg.Allocations,
		Databases:     cfg.Databases,
	}
}

type ServerLimits struct {
	Limits   panel.Limits
	Features panel.FeatureLimits
}

// BuildLimits derives panel limits from the ordered hardware. Disk and backup
// counts grow with cpu and ram and are clamped to the configured bounds.
func BuildLimits(hw domain.Hardware, cfg LimitsConfig) (ServerLimits, error) {
	if hw.CPUPercent <= 0 || hw.RAMMB <= 0 {
		return ServerLimits{}, ErrInvalidHardware
	}

	disk := clamp(hw.RAMMB*cfg.DiskPerRAM+hw.CPUPercent*cfg.DiskPerCPU, cfg.MinDiskMB, cfg.MaxDiskMB)

	backups := 0
	if cfg.BackupRAMStep > 0 {
		backups += hw.RAMMB / cfg.BackupRAMStep
	}
	if cfg.BackupCPUStep > 0 {
		backups += hw.CPUPercent / cfg.BackupCPUStep
	}
	backups = clamp(backups, cfg.MinBackups, cfg.MaxBackups)

	return ServerLimits{
		Limits: panel.Limits{
			Memory: hw.RAMMB,
			Swap:   0,
			Disk:   disk,
			IO:     defaultIO,
			CPU:    hw.CPUPercent,
		},
		Features: panel.FeatureLimits{
			Databases:   cfg.Databases,
			Allocations: max(cfg.Allocations, 1),
			Backups:     backups,
		},
	}, nil
}

// clamp ignores a bound that is not positive.
func clamp(v, lo, hi int) int {
	if lo > 0 && v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}
