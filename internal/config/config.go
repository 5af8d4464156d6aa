package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vlite/internal/errors"
)

const (
	// JSONFileName is the JSON configuration file.
	JSONFileName = "vlite.json"

	// YAMLFileName is the YAML configuration file.
	YAMLFileName = "vlite.yaml"

	// DefaultPort is the preview server port.
	DefaultPort = 4000

	// DefaultHost is the preview server host.
	DefaultHost = "localhost"

	// DefaultMountID is the id of the element the app renders into.
	DefaultMountID = "app"

	// DefaultTitle is the preview page title.
	DefaultTitle = "vlite • TodoMVC"

	// DefaultMetricsPath is where the preview server exposes Prometheus
	// metrics.
	DefaultMetricsPath = "/metrics"

	DefaultKeyedTag   = "ul"
	DefaultKeyedClass = "keyed-list"
	DefaultStateClass = "editing"
	DefaultMaxPasses  = 100
)

// Config is the project configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// MountID is the id of the mount point element.
	MountID string `json:"mountId,omitempty" yaml:"mountId,omitempty"`

	// Title is the preview page title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Render tunes the reconciler and the state container.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// Dev configures the preview server.
	Dev DevConfig `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Log configures structured logging.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Todos seeds the todo list shown by the preview server and the
	// render command.
	Todos []string `json:"todos,omitempty" yaml:"todos,omitempty"`

	configPath string
}

// RenderConfig tunes rendering.
type RenderConfig struct {
	// KeyedTag and KeyedClass form the keyed-list container signature.
	KeyedTag   string `json:"keyedTag,omitempty" yaml:"keyedTag,omitempty"`
	KeyedClass string `json:"keyedClass,omitempty" yaml:"keyedClass,omitempty"`

	// StateClass is the keyed item class whose flip rebuilds the item.
	StateClass string `json:"stateClass,omitempty" yaml:"stateClass,omitempty"`

	// MaxPasses bounds chained update passes.
	MaxPasses int `json:"maxPasses,omitempty" yaml:"maxPasses,omitempty"`
}

// DevConfig configures the preview server.
type DevConfig struct {
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Metrics exposes Prometheus metrics at MetricsPath.
	Metrics     bool   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`
}

// LogConfig configures the slog handler built by the CLI.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads vlite.json, or failing that vlite.yaml, from dir.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E203").
		WithDetailf("Neither %s nor %s exists in %s.", JSONFileName, YAMLFileName, dir)
}

// LoadOrDefault is Load, but returns the defaults when dir has no config
// file.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads the config at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON. Unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E203").
				WithDetailf("%s does not exist.", path).
				WithSuggestion("Check the --config flag or drop it to use the defaults")
		}
		return nil, errors.New("E201").Wrap(err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, errors.New("E201").
			Wrap(err).
			WithLocationFromError(path, err).
			WithSuggestion("Check that " + filepath.Base(path) + " is well formed")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return err
		}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveTo writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E303").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory of the config file, or "".
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.MountID == "" {
		c.MountID = DefaultMountID
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}

	if c.Render.KeyedTag == "" {
		c.Render.KeyedTag = DefaultKeyedTag
	}
	if c.Render.KeyedClass == "" {
		c.Render.KeyedClass = DefaultKeyedClass
	}
	if c.Render.StateClass == "" {
		c.Render.StateClass = DefaultStateClass
	}
	if c.Render.MaxPasses == 0 {
		c.Render.MaxPasses = DefaultMaxPasses
	}

	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.MetricsPath == "" {
		c.Dev.MetricsPath = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

var (
	validID  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	validTag = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
)

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		e := errors.New("E202").WithDetailf(format, args...)
		if c.configPath != "" {
			e.Detail += " (" + c.configPath + ")"
		}
		return e
	}

	if c.Dev.Port < 1 || c.Dev.Port > 65535 {
		return invalid("dev.port must be between 1 and 65535, got %d.", c.Dev.Port)
	}
	if !validID.MatchString(c.MountID) {
		return invalid("mountId %q is not a valid element id.", c.MountID)
	}
	if !validTag.MatchString(c.Render.KeyedTag) {
		return invalid("render.keyedTag %q is not a valid tag name.", c.Render.KeyedTag)
	}
	if strings.ContainsAny(c.Render.KeyedClass, " \t\n") {
		return invalid("render.keyedClass %q must be a single class.", c.Render.KeyedClass)
	}
	if strings.ContainsAny(c.Render.StateClass, " \t\n") {
		return invalid("render.stateClass %q must be a single class.", c.Render.StateClass)
	}
	if c.Render.MaxPasses < 1 {
		return invalid("render.maxPasses must be positive, got %d.", c.Render.MaxPasses)
	}
	if !strings.HasPrefix(c.Dev.MetricsPath, "/") {
		return invalid("dev.metricsPath %q must start with '/'.", c.Dev.MetricsPath)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return invalid("%v.", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format must be text or json, got %q.", c.Log.Format)
	}
	return nil
}

// Address returns host:port for the preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// URL returns the preview server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// LogLevel returns the configured slog level. Invalid levels, which
// Validate rejects, fall back to info.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}

// Exists reports whether dir holds a config file.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
