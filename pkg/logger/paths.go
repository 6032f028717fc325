/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"
)

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			xdgStatePath("opsreport.log"),
			"./opsreport.log",
			"/tmp/opsreport/opsreport.log",
		}
	case "linux":
		return []string{
			"/var/log/opsreport/opsreport.log", // best if writable
			xdgStatePath("opsreport.log"),      // user-local fallback (~/.local/state/opsreport)
			"./opsreport.log",                  // current working dir, ideal for devs
			"/tmp/opsreport/opsreport.log",     // ephemeral
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("ProgramData"), "opsreport", "opsreport.log"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "opsreport", "opsreport.log"),
			".\\opsreport.log",
		}
	default:
		return []string{"./opsreport.log"}
	}
}

// ResolveLogPath attempts to find the best writable log file path.
func ResolveLogPath() string {
	for _, path := range PlatformLogPaths() {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			continue
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err == nil {
			_ = file.Close()
			return path
		}
	}
	return ""
}

func xdgStatePath(name string) string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "opsreport", name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", "opsreport", name)
	}
	return filepath.Join(home, ".local", "state", "opsreport", name)
}
