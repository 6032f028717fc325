// pkg/endpoint/classify.go

package endpoint

import (
	"fmt"
	"strings"

	"github.com/stoshu2/opsreport/pkg/classify"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

// Audit is the classified view of one host: one result per audited entity
// (each disk, CPU, memory, the service sweep, reboot state, security agent)
// plus the stopped services that survived the allowlist.
type Audit struct {
	Host        SystemInfo
	Results     []classify.Result
	AutoStopped []Service
}

// DiskRules builds the ordered ruleset for one disk. Free-space data the
// collector could not read is a warning, not a silent skip.
func DiskRules(t thresholds.Endpoint) classify.Ruleset[Disk] {
	return classify.Ruleset[Disk]{
		{
			Name:     "no-disk-data",
			Severity: classify.SeverityWarning,
			When: func(d Disk) (bool, string) {
				if d.FreePercent == nil {
					return true, "No disk size/free data"
				}
				return false, ""
			},
		},
		{
			Name:     "disk-free-alert",
			Severity: classify.SeverityFailed,
			When: func(d Disk) (bool, string) {
				if *d.FreePercent < t.DiskFreeAlertPct {
					return true, fmt.Sprintf("Low disk space: %.2f%% free", *d.FreePercent)
				}
				return false, ""
			},
		},
		{
			Name:     "disk-free-warn",
			Severity: classify.SeverityWarning,
			When: func(d Disk) (bool, string) {
				if *d.FreePercent < t.DiskFreeWarnPct {
					return true, fmt.Sprintf("Disk space getting low: %.2f%% free", *d.FreePercent)
				}
				return false, ""
			},
		},
	}
}

// metric is a sampled percentage with a display name, so CPU and memory share
// one ruleset.
type metric struct {
	value    *float64
	noun     string
	warnPct  float64
	alertPct float64
}

func metricRules() classify.Ruleset[metric] {
	return classify.Ruleset[metric]{
		{
			Name:     "metric-unavailable",
			Severity: classify.SeverityWarning,
			When: func(m metric) (bool, string) {
				if m.value == nil {
					return true, fmt.Sprintf("%s unavailable", m.noun)
				}
				return false, ""
			},
		},
		{
			Name:     "metric-alert",
			Severity: classify.SeverityFailed,
			When: func(m metric) (bool, string) {
				if *m.value >= m.alertPct {
					return true, fmt.Sprintf("High %s: %.2f%%", strings.ToLower(m.noun), *m.value)
				}
				return false, ""
			},
		},
		{
			Name:     "metric-warn",
			Severity: classify.SeverityWarning,
			When: func(m metric) (bool, string) {
				if *m.value >= m.warnPct {
					return true, fmt.Sprintf("Elevated %s: %.2f%%", strings.ToLower(m.noun), *m.value)
				}
				return false, ""
			},
		},
	}
}

// Classify audits the documents against the thresholds. Every entity yields
// exactly one result so the report counts reconcile with the input.
func Classify(docs *Documents, t thresholds.Endpoint) *Audit {
	audit := &Audit{Host: docs.SystemInfo}

	diskRules := DiskRules(t)
	for _, d := range docs.Disks {
		name := strings.TrimSpace("Disk " + d.Drive)
		result := diskRules.Evaluate(name, d, "Disk space OK")
		result.Category = "disk"
		result.Attributes = diskAttributes(d)
		audit.Results = append(audit.Results, result)
	}

	rules := metricRules()

	cpu := rules.Evaluate("CPU", metric{
		value: docs.Resource.CPULoadPercent, noun: "CPU load",
		warnPct: t.CPUWarnPct, alertPct: t.CPUAlertPct,
	}, okMetric("CPU load", docs.Resource.CPULoadPercent))
	cpu.Category = "resource"
	audit.Results = append(audit.Results, cpu)

	mem := rules.Evaluate("Memory", metric{
		value: docs.Resource.MemoryUsedPercent, noun: "Memory usage",
		warnPct: t.MemUsedWarnPct, alertPct: t.MemUsedAlertPct,
	}, okMetric("Memory usage", docs.Resource.MemoryUsedPercent))
	mem.Category = "resource"
	audit.Results = append(audit.Results, mem)

	audit.AutoStopped = filterAllowlisted(docs.Services, t.ServiceAllowlist)
	audit.Results = append(audit.Results, servicesResult(audit.AutoStopped))
	audit.Results = append(audit.Results, rebootResult(docs.Reboot))
	audit.Results = append(audit.Results, defenderResult(docs.Defender))

	return audit
}

func okMetric(noun string, v *float64) string {
	if v == nil {
		return noun + " OK"
	}
	return fmt.Sprintf("%s OK: %.2f%%", noun, *v)
}

func diskAttributes(d Disk) map[string]string {
	attrs := map[string]string{}
	if d.SizeGB != nil {
		attrs["size_gb"] = fmt.Sprintf("%.1f", *d.SizeGB)
	}
	if d.FreeGB != nil {
		attrs["free_gb"] = fmt.Sprintf("%.1f", *d.FreeGB)
	}
	if d.FreePercent != nil {
		attrs["free_percent"] = fmt.Sprintf("%.2f", *d.FreePercent)
	}
	if d.VolumeName != "" {
		attrs["volume"] = d.VolumeName
	}
	return attrs
}

// filterAllowlisted drops services the operator has accepted as stopped.
func filterAllowlisted(services []Service, allowlist []string) []Service {
	allow := make(map[string]bool, len(allowlist))
	for _, name := range allowlist {
		allow[strings.ToLower(name)] = true
	}

	var out []Service
	for _, s := range services {
		name := strings.TrimSpace(s.Name)
		if name == "" || allow[strings.ToLower(name)] {
			continue
		}
		out = append(out, s)
	}
	return out
}

func servicesResult(stopped []Service) classify.Result {
	result := classify.Result{Name: "Services", Category: "services"}
	if len(stopped) > 0 {
		result.Severity = classify.SeverityWarning
		result.Reason = fmt.Sprintf("%d automatic service(s) not running", len(stopped))
		names := make([]string, 0, len(stopped))
		for _, s := range stopped {
			names = append(names, s.Name)
		}
		result.Attributes = map[string]string{"stopped": strings.Join(names, ", ")}
	} else {
		result.Severity = classify.SeverityOK
		result.Reason = "All automatic services running"
	}
	return result
}

func rebootResult(r RebootState) classify.Result {
	result := classify.Result{Name: "Reboot", Category: "reboot"}
	if r.Pending {
		result.Severity = classify.SeverityWarning
		result.Reason = "Pending reboot detected"
		if len(r.Reasons) > 0 {
			result.Attributes = map[string]string{"reasons": strings.Join(r.Reasons, ", ")}
		}
	} else {
		result.Severity = classify.SeverityOK
		result.Reason = "No pending reboot"
	}
	return result
}

func defenderResult(d DefenderState) classify.Result {
	result := classify.Result{Name: "Defender", Category: "defender"}
	switch {
	case d.Available == nil || !*d.Available:
		result.Severity = classify.SeverityWarning
		result.Reason = "Security agent state unavailable"
		if d.Notes != "" {
			result.Attributes = map[string]string{"notes": d.Notes}
		}
	case d.RealTimeProtectionEnabled != nil && !*d.RealTimeProtectionEnabled:
		result.Severity = classify.SeverityWarning
		result.Reason = "Real-time protection is disabled"
	default:
		result.Severity = classify.SeverityOK
		result.Reason = "Real-time protection enabled"
	}
	return result
}
