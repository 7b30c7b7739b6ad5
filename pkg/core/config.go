// pkg/core/config.go
package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInterpreter runs the host entry point
	DefaultInterpreter = "php"
	// DefaultEntryPoint is the host CLI file in the project root
	DefaultEntryPoint = "artisan"
	// DefaultBootstrapFile appears once Composer has materialized vendor/
	DefaultBootstrapFile = "vendor/autoload.php"
	// DefaultModulesDir is where module packages are installed
	DefaultModulesDir = "Modules"
	// DefaultTimeout bounds a single host command
	DefaultTimeout = 300 * time.Second

	// DefaultSetupCommand is the host command that sets a module up
	DefaultSetupCommand = "module:setup"
	// DefaultRemoveCommand is the host command that removes a module
	DefaultRemoveCommand = "module:remove"
)

// Environment overrides
const (
	EnvInterpreter = "FOCUSMOD_INTERPRETER"
	EnvTimeout     = "FOCUSMOD_TIMEOUT"
)

// configNames are looked up in the working directory, in order
var configNames = []string{"focusmod.yaml", "focusmod.yml", "focusmod.toml"}

// Config holds focusmod configuration
type Config struct {
	PackageType   string        `yaml:"package_type" toml:"package_type"`
	Interpreter   string        `yaml:"interpreter" toml:"interpreter"`
	EntryPoint    string        `yaml:"entry_point" toml:"entry_point"`
	BootstrapFile string        `yaml:"bootstrap_file" toml:"bootstrap_file"`
	ModulesDir    string        `yaml:"modules_dir" toml:"modules_dir"`
	Timeout       time.Duration `yaml:"timeout" toml:"timeout"`
	SetupCommand  string        `yaml:"setup_command" toml:"setup_command"`
	RemoveCommand string        `yaml:"remove_command" toml:"remove_command"`
	Debug         bool          `yaml:"debug" toml:"debug"`

	// WorkDir is the project root; it is never read from a file
	WorkDir string `yaml:"-" toml:"-"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PackageType:   DefaultPackageType,
		Interpreter:   DefaultInterpreter,
		EntryPoint:    DefaultEntryPoint,
		BootstrapFile: DefaultBootstrapFile,
		ModulesDir:    DefaultModulesDir,
		Timeout:       DefaultTimeout,
		SetupCommand:  DefaultSetupCommand,
		RemoveCommand: DefaultRemoveCommand,
	}
}

// CommandFor maps an action to the configured host command
func (c *Config) CommandFor(action Action) (string, error) {
	switch action {
	case ActionSetup:
		return c.SetupCommand, nil
	case ActionRemove:
		return c.RemoveCommand, nil
	default:
		return "", fmt.Errorf("unknown action: %d", action)
	}
}

// LoadConfig loads configuration from path. An empty path searches the
// working directory, then $XDG_CONFIG_HOME/focusmod/config.yaml. A missing
// file is not an error.
func LoadConfig(path, workDir string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfig(workDir)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := decodeConfig(path, data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		workDir = wd
	}
	cfg.WorkDir = workDir

	return cfg, nil
}

// SaveConfig saves configuration to path, picking the format by extension
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "focusmod", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = buf.Bytes()
	} else {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = out
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func findConfig(workDir string) string {
	for _, name := range configNames {
		candidate := filepath.Join(workDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	global := filepath.Join(xdg.ConfigHome, "focusmod", "config.yaml")
	if _, err := os.Stat(global); err == nil {
		return global
	}
	return ""
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvInterpreter)); v != "" {
		c.Interpreter = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// fillDefaults restores defaults for fields a config file blanked out
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.PackageType == "" {
		c.PackageType = def.PackageType
	}
	if c.Interpreter == "" {
		c.Interpreter = def.Interpreter
	}
	if c.EntryPoint == "" {
		c.EntryPoint = def.EntryPoint
	}
	if c.BootstrapFile == "" {
		c.BootstrapFile = def.BootstrapFile
	}
	if c.ModulesDir == "" {
		c.ModulesDir = def.ModulesDir
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.SetupCommand == "" {
		c.SetupCommand = def.SetupCommand
	}
	if c.RemoveCommand == "" {
		c.RemoveCommand = def.RemoveCommand
	}
}
