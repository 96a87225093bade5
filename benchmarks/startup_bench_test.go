package benchmarks

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cli-engine/cli-engine/internal/logging"
	"github.com/cli-engine/cli-engine/pkg/config"
	"github.com/cli-engine/cli-engine/pkg/manifest"
	"github.com/cli-engine/cli-engine/pkg/output"
)

var manifestData = []byte(`{
	"name": "heroku-cli",
	"version": "6.14.0",
	"dependencies": {"heroku-pg": "^2.0.0", "heroku-redis": "^1.0.0"},
	"cli-engine": {
		"bin": "heroku",
		"commands": "./lib/commands",
		"s3": {"host": "cli-assets.heroku.com"},
		"hooks": {"init": "./lib/hooks/init.js", "prerun": ["./a.js", "./b.js"]},
		"aliases": {"apps": "apps:list"},
		"plugins": ["heroku-pg", "heroku-redis"],
		"topics": {"apps": {"description": "manage apps", "subtopics": {"config": {}}}}
	}
}`)

func writeRoot(b *testing.B) string {
	b.Helper()
	root := b.TempDir()
	if err := os.WriteFile(filepath.Join(root, manifest.FileName), manifestData, 0o600); err != nil {
		b.Fatalf("failed to write manifest: %v", err)
	}
	return root
}

func benchEnv(b *testing.B) *config.Environment {
	b.Helper()
	return &config.Environment{
		Vars:           map[string]string{"HOME": b.TempDir(), "SHELL": "/bin/zsh", "DEBUG": "express:*,-heroku"},
		Platform:       config.PlatformLinux,
		Arch:           "x64",
		RuntimeName:    "go",
		RuntimeVersion: "1.24.0",
	}
}

// BenchmarkManifestLoad benchmarks reading and parsing package.json
func BenchmarkManifestLoad(b *testing.B) {
	root := writeRoot(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := manifest.Load(root); err != nil {
			b.Fatalf("failed to load manifest: %v", err)
		}
	}
}

// BenchmarkResolveWithRoot benchmarks a full resolution including the manifest read
func BenchmarkResolveWithRoot(b *testing.B) {
	root := writeRoot(b)
	r := config.NewResolver(benchEnv(b), config.WithLogger(logging.Discard()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Resolve(&config.Options{Root: root}); err != nil {
			b.Fatalf("failed to resolve: %v", err)
		}
	}
}

// BenchmarkResolveDefaults benchmarks resolution without a manifest on disk
func BenchmarkResolveDefaults(b *testing.B) {
	r := config.NewResolver(benchEnv(b), config.WithLogger(logging.Discard()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Resolve(nil); err != nil {
			b.Fatalf("failed to resolve: %v", err)
		}
	}
}

// BenchmarkResolveShortCircuit benchmarks re-resolving an already resolved config
func BenchmarkResolveShortCircuit(b *testing.B) {
	r := config.NewResolver(benchEnv(b), config.WithLogger(logging.Discard()))
	cfg, err := r.Resolve(&config.Options{Root: writeRoot(b)})
	if err != nil {
		b.Fatalf("failed to resolve: %v", err)
	}
	opts := cfg.Options()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Resolve(opts); err != nil {
			b.Fatalf("failed to resolve: %v", err)
		}
	}
}

// BenchmarkRenderJSON benchmarks rendering a resolved config
func BenchmarkRenderJSON(b *testing.B) {
	r := config.NewResolver(benchEnv(b), config.WithLogger(logging.Discard()))
	cfg, err := r.Resolve(&config.Options{Root: writeRoot(b)})
	if err != nil {
		b.Fatalf("failed to resolve: %v", err)
	}
	m := output.NewManager()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Format(io.Discard, cfg, "json"); err != nil {
			b.Fatalf("failed to render: %v", err)
		}
	}
}
