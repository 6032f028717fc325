// Package thresholds defines the named limit sets that drive classification.
// A threshold set is loaded once per run, validated up front, and read-only
// for the lifetime of the run.
package thresholds

// Backup holds the limits for the backup-job verifier.
type Backup struct {
	// StaleDays is the age of the last success beyond which a job is stale.
	StaleDays float64 `json:"stale_days" yaml:"stale_days" mapstructure:"stale_days" validate:"required,gt=0"`
	// WarningDays marks the approaching-stale band; must sit below StaleDays.
	WarningDays float64 `json:"warning_days" yaml:"warning_days" mapstructure:"warning_days" validate:"gte=0,ltfield=StaleDays"`

	AllowedSuccessValues []string `json:"allowed_success_values" yaml:"allowed_success_values" mapstructure:"allowed_success_values"`
	AllowedWarningValues []string `json:"allowed_warning_values" yaml:"allowed_warning_values" mapstructure:"allowed_warning_values"`
	AllowedFailValues    []string `json:"allowed_fail_values" yaml:"allowed_fail_values" mapstructure:"allowed_fail_values" validate:"required,min=1"`

	// FailOnWarningResult escalates warning results to failed.
	FailOnWarningResult bool `json:"fail_on_warning_result" yaml:"fail_on_warning_result" mapstructure:"fail_on_warning_result"`
}

// DefaultBackup returns the stock backup thresholds.
func DefaultBackup() Backup {
	return Backup{
		StaleDays:            3,
		WarningDays:          2,
		AllowedSuccessValues: []string{"success"},
		AllowedWarningValues: []string{"warning"},
		AllowedFailValues:    []string{"failed", "error"},
	}
}

// Endpoint holds the limits for the endpoint health auditor.
type Endpoint struct {
	DiskFreeWarnPct  float64 `json:"disk_free_warn_pct" yaml:"disk_free_warn_pct" mapstructure:"disk_free_warn_pct" validate:"required,gt=0,lte=100"`
	DiskFreeAlertPct float64 `json:"disk_free_alert_pct" yaml:"disk_free_alert_pct" mapstructure:"disk_free_alert_pct" validate:"required,gt=0,ltfield=DiskFreeWarnPct"`

	CPUWarnPct  float64 `json:"cpu_warn_pct" yaml:"cpu_warn_pct" mapstructure:"cpu_warn_pct" validate:"required,gt=0,lte=100"`
	CPUAlertPct float64 `json:"cpu_alert_pct" yaml:"cpu_alert_pct" mapstructure:"cpu_alert_pct" validate:"required,gtfield=CPUWarnPct,lte=100"`

	MemUsedWarnPct  float64 `json:"mem_used_warn_pct" yaml:"mem_used_warn_pct" mapstructure:"mem_used_warn_pct" validate:"required,gt=0,lte=100"`
	MemUsedAlertPct float64 `json:"mem_used_alert_pct" yaml:"mem_used_alert_pct" mapstructure:"mem_used_alert_pct" validate:"required,gtfield=MemUsedWarnPct,lte=100"`

	// ServiceAllowlist names automatic services that may legitimately be
	// stopped (case-insensitive match).
	ServiceAllowlist []string `json:"service_allowlist" yaml:"service_allowlist" mapstructure:"service_allowlist"`
}

// DefaultEndpoint returns the stock endpoint thresholds.
func DefaultEndpoint() Endpoint {
	return Endpoint{
		DiskFreeWarnPct:  15,
		DiskFreeAlertPct: 10,
		CPUWarnPct:       75,
		CPUAlertPct:      90,
		MemUsedWarnPct:   80,
		MemUsedAlertPct:  90,
	}
}

// Counter holds warn/alert limits for one performance counter. High-is-bad
// counters compare upward; LowIsBad inverts both comparisons (available
// memory style).
type Counter struct {
	Warn     float64 `json:"warn" yaml:"warn" mapstructure:"warn" validate:"required"`
	Alert    float64 `json:"alert" yaml:"alert" mapstructure:"alert" validate:"required"`
	LowIsBad bool    `json:"low_is_bad" yaml:"low_is_bad" mapstructure:"low_is_bad"`
}

// Perf maps normalized counter paths to their limits.
type Perf struct {
	Counters map[string]Counter `json:"counters" yaml:"counters" mapstructure:"counters" validate:"required,min=1,dive"`
}

// DefaultPerf returns the stock counter limits.
func DefaultPerf() Perf {
	return Perf{
		Counters: map[string]Counter{
			`\processor(_total)\% processor time`:          {Warn: 70, Alert: 85},
			`\memory\% committed bytes in use`:             {Warn: 75, Alert: 85},
			`\physicaldisk(_total)\avg. disk queue length`: {Warn: 2, Alert: 4},
			`\memory\available mbytes`:                     {Warn: 1024, Alert: 512, LowIsBad: true},
		},
	}
}
