// Package system reports host identity and provides context-aware
// execution helpers. The identity values end up in backup manifests, so
// their spellings are stable across releases.
package system

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"time"
)

// Version is the tool version, set at build time via -ldflags.
var Version = "0.3.0"

// Hostname returns the machine's hostname.
func Hostname() (string, error) {
	return os.Hostname()
}

// Username returns the current user's login name, falling back to the
// USER and LOGNAME environment variables when the lookup fails (static
// binaries without cgo cannot always resolve the passwd database).
func Username() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username, nil
	}
	if name := os.Getenv("USER"); name != "" {
		return name, nil
	}
	if name := os.Getenv("LOGNAME"); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("unable to determine current user")
}

// Platform returns the operating system name as recorded in manifests.
func Platform() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "linux", "freebsd", "openbsd", "netbsd", "windows":
		return runtime.GOOS
	default:
		return "unknown"
	}
}

// Architecture returns the machine architecture as recorded in manifests.
func Architecture() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "i386"
	case "arm64":
		return "aarch64"
	case "arm":
		return "arm"
	case "riscv64":
		return "riscv64"
	default:
		return "unknown"
	}
}

// Timestamp returns the current Unix time in seconds.
func Timestamp() int64 {
	return time.Now().Unix()
}

// IsRoot reports whether the process runs with root privileges.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// BuildInfo returns a single-line description of this build for logs
// and the --version flag.
func BuildInfo() string {
	return fmt.Sprintf("krowno v%s (%s-%s, %s)", Version, Platform(), Architecture(), runtime.Version())
}
