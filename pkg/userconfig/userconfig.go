// Package userconfig manages the per-user config.json that lives in a CLI's
// config directory.
//
// The file records two things: whether the user opted out of analytics and
// a random identifier for this install. The identifier is generated on
// first use and persisted; if the directory cannot be created or the file
// cannot be written, the install simply has no identifier.
//
//	mgr, err := userconfig.NewManager(cfg, env)
//	if err != nil {
//	    return err
//	}
//	if !mgr.SkipAnalytics() {
//	    send(mgr.InstallID())
//	}
package userconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cli-engine/cli-engine/internal/logging"
	"github.com/cli-engine/cli-engine/pkg/config"
)

// FileName is the user config file inside Config.ConfigDir.
const FileName = "config.json"

// UserConfig is the content of config.json.
type UserConfig struct {
	SkipAnalytics bool   `json:"skipAnalytics,omitempty" yaml:"skipAnalytics,omitempty"`
	Install       string `json:"install,omitempty" yaml:"install,omitempty"`
}

// Manager loads and saves a CLI's user config.
type Manager struct {
	path          string
	user          UserConfig
	skipAnalytics bool
	envSkip       bool
	logger        *log.Logger
	newID         func() string
	mu            sync.RWMutex
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithIDGenerator replaces uuid.NewString for install identifiers.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// Path returns the user config path for cfg.
func Path(cfg *config.Config) string {
	return filepath.Join(cfg.ConfigDir, FileName)
}

// NewManager loads <ConfigDir>/config.json for cfg.
//
// A missing file is an empty config. Any other read or parse error is
// returned. Analytics are skipped when the file says so, when TESTING is
// truthy, or when <BIN>_SKIP_ANALYTICS is truthy; in that case the install
// id is dropped. Otherwise a missing install id is generated and saved.
func NewManager(cfg *config.Config, env *config.Environment, opts ...Option) (*Manager, error) {
	m := &Manager{
		path:   Path(cfg),
		logger: logging.New("userconfig"),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.load(); err != nil {
		return nil, err
	}

	m.envSkip = env.IsTrue("TESTING") ||
		env.IsTrue(config.ScopedKey(cfg.Bin, config.EnvSkipAnalytics))
	m.skipAnalytics = m.user.SkipAnalytics || m.envSkip

	if m.skipAnalytics {
		m.user.Install = ""
	} else {
		m.ensureInstallID()
	}

	return m, nil
}

// ensureInstallID generates and saves an install id when there is none.
// A failed save leaves the install without an id.
func (m *Manager) ensureInstallID() {
	m.mu.Lock()
	if m.user.Install != "" {
		m.mu.Unlock()
		return
	}
	m.user.Install = m.newID()
	m.mu.Unlock()

	if err := m.Save(); err != nil {
		m.logger.Debug("could not persist install id", "path", m.path, "err", err)
		m.mu.Lock()
		m.user.Install = ""
		m.mu.Unlock()
	}
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	// ENOTDIR: a path component is a file, so config.json cannot exist either.
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		m.user = UserConfig{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read user config: %w", err)
	}

	var user UserConfig
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("failed to parse user config %s: %w", m.path, err)
	}
	m.user = user
	return nil
}

// Save writes the user config atomically.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.Marshal(m.user)
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// Path returns the file this manager reads and writes.
func (m *Manager) Path() string {
	return m.path
}

// Config returns a copy of the loaded user config.
func (m *Manager) Config() UserConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// SkipAnalytics reports whether analytics are disabled for this install.
func (m *Manager) SkipAnalytics() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.skipAnalytics
}

// InstallID returns the install identifier, or "" when there is none.
func (m *Manager) InstallID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Install
}

// SetSkipAnalytics records the user's analytics preference and saves it.
// Opting out drops the install id. Opting back in generates a new one,
// unless TESTING or <BIN>_SKIP_ANALYTICS still disables analytics.
func (m *Manager) SetSkipAnalytics(skip bool) error {
	m.mu.Lock()
	m.user.SkipAnalytics = skip
	m.skipAnalytics = skip || m.envSkip
	if m.skipAnalytics {
		m.user.Install = ""
	}
	optedIn := !m.skipAnalytics
	m.mu.Unlock()

	if err := m.Save(); err != nil {
		return err
	}
	if optedIn {
		m.ensureInstallID()
	}
	return nil
}
