package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type category string

const (
	categoryData   category = "data"
	categoryConfig category = "config"
	categoryCache  category = "cache"
)

var xdgVars = map[category]string{
	categoryData:   "XDG_DATA_HOME",
	categoryConfig: "XDG_CONFIG_HOME",
	categoryCache:  "XDG_CACHE_HOME",
}

type dirResolver struct {
	env      *Environment
	home     string
	dirname  string
	platform string
	windows  bool
}

// dir returns <base>/<dirname>. The base is, in order: the macOS cache
// location for cache on darwin, the category's XDG variable, LOCALAPPDATA on
// Windows for data and config, and finally a directory under home.
func (d dirResolver) dir(cat category) string {
	return filepath.Join(d.base(cat), d.dirname)
}

func (d dirResolver) base(cat category) string {
	if cat == categoryCache && d.platform == PlatformDarwin {
		return filepath.Join(d.home, "Library", "Caches")
	}
	if xdg := d.env.Get(xdgVars[cat]); xdg != "" {
		return xdg
	}
	if d.windows && cat != categoryCache {
		if local := d.env.Get("LOCALAPPDATA"); local != "" {
			return local
		}
	}
	if cat == categoryData {
		return filepath.Join(d.home, ".local", "share")
	}
	return filepath.Join(d.home, "."+string(cat))
}

// homeDir resolves the user's home: $HOME, then on Windows
// $HOMEDRIVE$HOMEPATH or $USERPROFILE, then the OS lookup, then the temp dir.
func homeDir(env *Environment, windows bool) string {
	if home := env.Get("HOME"); home != "" {
		return home
	}
	if windows {
		drive, path := env.Get("HOMEDRIVE"), env.Get("HOMEPATH")
		if drive != "" && path != "" {
			return drive + path
		}
		if profile := env.Get("USERPROFILE"); profile != "" {
			return profile
		}
	}
	if env.HomeDir != nil {
		if home, err := env.HomeDir(); err == nil && home != "" {
			return home
		}
	}
	if env.TempDir != nil {
		return env.TempDir()
	}
	return ""
}

// shellName is the last path segment of $SHELL, or of $COMSPEC on Windows.
func shellName(env *Environment, windows bool) string {
	if shell := env.Get("SHELL"); shell != "" {
		return lastSegment(shell, "/")
	}
	if windows {
		if comspec := env.Get("COMSPEC"); comspec != "" {
			return lastSegment(comspec, `\/`)
		}
	}
	return "unknown"
}

func lastSegment(path, separators string) string {
	if i := strings.LastIndexAny(path, separators); i >= 0 {
		return path[i+1:]
	}
	return path
}

// userAgent renders "<name>/<version>[ <channel>] (<platform>-<arch>) <runtime>-<version>".
func userAgent(c *Config, env *Environment) string {
	channel := ""
	if c.Channel != DefaultChannel {
		channel = " " + c.Channel
	}
	return fmt.Sprintf("%s/%s%s (%s-%s) %s-%s",
		c.Name, c.Version, channel, c.Platform, c.Arch, env.RuntimeName, env.RuntimeVersion)
}

func commandsDir(root, commands string) string {
	if root == "" || commands == "" {
		return ""
	}
	return filepath.Join(root, commands)
}
