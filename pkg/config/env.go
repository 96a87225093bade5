package config

import (
	"errors"
	"os"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// Platform identifiers. They follow the names CLI manifests and update
// channels use, not GOOS.
const (
	PlatformWindows = "win32"
	PlatformDarwin  = "darwin"
	PlatformLinux   = "linux"
)

// Scoped environment variable suffixes. The full name is ScopedKey(bin, suffix).
const (
	EnvDebug           = "DEBUG"
	EnvSkipCoreUpdates = "SKIP_CORE_UPDATES"
	EnvS3Host          = "S3_HOST"
	EnvNpmRegistry     = "NPM_REGISTRY"
	EnvCLIBinPath      = "CLI_BINPATH"
	EnvSkipAnalytics   = "SKIP_ANALYTICS"
)

// Environment is a read-only snapshot of everything the resolver reads from
// the process and the OS.
type Environment struct {
	// Vars holds environment variables by name.
	Vars map[string]string

	// Platform and Arch use the identifiers NormalizePlatform and
	// NormalizeArch produce.
	Platform string
	Arch     string

	// HomeDir looks up the user's home directory. It is only consulted when
	// the HOME family of variables is unset.
	HomeDir func() (string, error)
	// TempDir is the last resort for home.
	TempDir func() string

	// RuntimeName and RuntimeVersion fill the user agent's trailing segment.
	RuntimeName    string
	RuntimeVersion string
}

// CurrentEnvironment captures the running process.
func CurrentEnvironment() *Environment {
	return &Environment{
		Vars:           environMap(os.Environ()),
		Platform:       NormalizePlatform(runtime.GOOS),
		Arch:           NormalizeArch(runtime.GOARCH),
		HomeDir:        userHomeDir,
		TempDir:        os.TempDir,
		RuntimeName:    "go",
		RuntimeVersion: strings.TrimPrefix(runtime.Version(), "go"),
	}
}

func userHomeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	return "", errors.New("home directory not found")
}

func environMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}

// Get returns the named variable or "".
func (e *Environment) Get(key string) string {
	if e == nil {
		return ""
	}
	return e.Vars[key]
}

// IsTrue reports whether the named variable is "1" or "true".
func (e *Environment) IsTrue(key string) bool {
	v := e.Get(key)
	return v == "1" || v == "true"
}

// Windows reports whether the snapshot describes a Windows host.
func (e *Environment) Windows() bool {
	return e != nil && e.Platform == PlatformWindows
}

// ScopedKey builds a bin-scoped variable name: ScopedKey("my-cli", "DEBUG")
// is "MY_CLI_DEBUG".
func ScopedKey(bin, suffix string) string {
	return strings.ToUpper(strings.ReplaceAll(bin, "-", "_")) + "_" + suffix
}

// ScopedKeys lists every scoped variable the resolver and its collaborators
// read for bin.
func ScopedKeys(bin string) []string {
	suffixes := []string{EnvDebug, EnvSkipCoreUpdates, EnvS3Host, EnvNpmRegistry, EnvCLIBinPath, EnvSkipAnalytics}
	keys := make([]string, len(suffixes))
	for i, s := range suffixes {
		keys[i] = ScopedKey(bin, s)
	}
	return keys
}

// NormalizePlatform maps GOOS names to manifest platform identifiers.
func NormalizePlatform(goos string) string {
	if goos == "windows" {
		return PlatformWindows
	}
	return goos
}

// NormalizeArch maps GOARCH names to manifest arch identifiers. The legacy
// "ia32" is reported as "x86".
func NormalizeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386", "ia32":
		return "x86"
	default:
		return goarch
	}
}
