// Package endpoint audits a single host from the structured documents its
// collector produces: one JSON file per subsystem (system info, disks,
// resource usage, stopped services, reboot state, security agent state).
package endpoint

// SystemInfo identifies the audited host.
type SystemInfo struct {
	Hostname    string   `json:"Hostname"`
	OS          string   `json:"OS"`
	OSVersion   string   `json:"OSVersion,omitempty"`
	UptimeHours *float64 `json:"UptimeHours,omitempty"`
	BootTime    string   `json:"BootTime,omitempty"`
}

// Disk is one fixed disk. Pointer fields distinguish "zero" from "the
// collector could not read this".
type Disk struct {
	Drive       string   `json:"Drive"`
	SizeGB      *float64 `json:"SizeGB"`
	FreeGB      *float64 `json:"FreeGB"`
	FreePercent *float64 `json:"FreePercent"`
	VolumeName  string   `json:"VolumeName,omitempty"`
}

// Resource carries the sampled CPU and memory load.
type Resource struct {
	CPULoadPercent    *float64 `json:"CpuLoadPercent"`
	MemoryUsedPercent *float64 `json:"MemoryUsedPercent"`
}

// Service is an automatic service the collector found stopped.
type Service struct {
	Name        string `json:"Name"`
	DisplayName string `json:"DisplayName"`
	State       string `json:"State"`
	StartMode   string `json:"StartMode"`
}

// RebootState reports whether the host has a pending reboot.
type RebootState struct {
	Pending bool     `json:"Pending"`
	Reasons []string `json:"Reasons,omitempty"`
}

// DefenderState reports the security agent. Pointers again: "false" and
// "unknown" are different findings.
type DefenderState struct {
	Available                 *bool  `json:"Available"`
	RealTimeProtectionEnabled *bool  `json:"RealTimeProtectionEnabled"`
	AntivirusEnabled          *bool  `json:"AntivirusEnabled"`
	Notes                     string `json:"Notes,omitempty"`
}

// Documents is the full collected input for one audit run.
type Documents struct {
	SystemInfo SystemInfo
	Disks      []Disk
	Resource   Resource
	Services   []Service
	Reboot     RebootState
	Defender   DefenderState
}
