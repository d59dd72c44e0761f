package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. HUE_PROBE_SERVICES_SOLR_URL.
const EnvPrefix = "HUE_PROBE"

const (
	defaultTimeZone = "America/Los_Angeles"
	defaultTimeout  = 30 * time.Second
)

// ServiceKeys lists the service sections the config file may carry.
var ServiceKeys = []string{"httpfs", "solr", "oozie", "rm", "jhs", "sparkhs"}

// ServiceConfig is one service's REST endpoint as Hue sees it.
type ServiceConfig struct {
	URL             string `mapstructure:"url" yaml:"url"`
	SecurityEnabled bool   `mapstructure:"security_enabled" yaml:"security_enabled"`
}

// KerberosConfig locates the ambient Kerberos material used for SPNEGO.
type KerberosConfig struct {
	CCache   string `mapstructure:"ccache" yaml:"ccache"`
	Krb5Conf string `mapstructure:"krb5_conf" yaml:"krb5_conf"`
}

// Config is the resolved hue-probe configuration.
type Config struct {
	TimeZone           string                   `mapstructure:"time_zone" yaml:"time_zone"`
	LogDir             string                   `mapstructure:"log_dir" yaml:"log_dir"`
	Timeout            time.Duration            `mapstructure:"timeout" yaml:"timeout"`
	InsecureSkipVerify bool                     `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	Kerberos           KerberosConfig           `mapstructure:"kerberos" yaml:"kerberos"`
	Services           map[string]ServiceConfig `mapstructure:"services" yaml:"services"`

	// File is the config file that was read, empty when none was.
	File string `mapstructure:"-" yaml:"-"`
}

// Service returns the configuration for name (case-insensitive).
func (c *Config) Service(name string) (ServiceConfig, bool) {
	if c == nil || c.Services == nil {
		return ServiceConfig{}, false
	}
	svc, ok := c.Services[strings.ToLower(name)]
	return svc, ok
}

// AnySecure reports whether any configured service requires Kerberos.
func (c *Config) AnySecure() bool {
	for _, svc := range c.Services {
		if svc.URL != "" && svc.SecurityEnabled {
			return true
		}
	}
	return false
}

// Load reads the YAML config at path and layers HUE_PROBE_* environment
// overrides on top. An empty path skips the file and uses defaults + env.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := sanitize(&cfg); err != nil {
		return nil, err
	}
	cfg.File = path

	return &cfg, nil
}

// LoadDefault loads paths.ConfigFile() when it exists, otherwise defaults + env.
func LoadDefault(paths *Paths) (*Config, error) {
	path := paths.ConfigFile()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("time_zone", defaultTimeZone)
	v.SetDefault("log_dir", DefaultLogDir())
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("insecure_skip_verify", false)
	v.SetDefault("kerberos.ccache", DefaultCCache())
	v.SetDefault("kerberos.krb5_conf", DefaultKrb5Conf())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested service keys are only visible to Unmarshal once bound.
	for _, name := range ServiceKeys {
		_ = v.BindEnv("services." + name + ".url")
		_ = v.BindEnv("services." + name + ".security_enabled")
	}

	return v
}

func sanitize(cfg *Config) error {
	cfg.TimeZone = strings.TrimSpace(cfg.TimeZone)
	if cfg.TimeZone == "" {
		cfg.TimeZone = defaultTimeZone
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		cfg.LogDir = DefaultLogDir()
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	services := make(map[string]ServiceConfig, len(cfg.Services))
	for name, svc := range cfg.Services {
		svc.URL = strings.TrimSpace(svc.URL)
		services[strings.ToLower(name)] = svc
	}
	cfg.Services = services
	return nil
}
