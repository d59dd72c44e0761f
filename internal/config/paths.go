package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Paths holds the standard file locations used by hue-probe.
type Paths struct {
	BaseDir string // Base directory for user config ($HOME/.hue-probe)
}

// NewPaths creates a new Paths instance
// baseDir: base directory (empty string uses default)
func NewPaths(baseDir string) *Paths {
	if baseDir == "" {
		baseDir = DefaultBaseDir()
	}
	return &Paths{
		BaseDir: baseDir,
	}
}

// DefaultBaseDir returns the default base directory: $HOME/.hue-probe
func DefaultBaseDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		// Fallback to user.Current if HOME not set
		if currentUser, err := user.Current(); err == nil {
			home = currentUser.HomeDir
		}
	}

	return filepath.Join(home, ".hue-probe")
}

// ConfigFile returns the default config file path: $BASE_DIR/config.yaml
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir, "config.yaml")
}

// DefaultLogDir returns the directory run logs are appended to.
// Honors DESKTOP_LOG_DIR like the Hue desktop process does, else "logs".
func DefaultLogDir() string {
	if dir := strings.TrimSpace(os.Getenv("DESKTOP_LOG_DIR")); dir != "" {
		return dir
	}
	return "logs"
}

// DefaultKrb5Conf returns KRB5_CONFIG or /etc/krb5.conf.
func DefaultKrb5Conf() string {
	if p := strings.TrimSpace(os.Getenv("KRB5_CONFIG")); p != "" {
		return p
	}
	return "/etc/krb5.conf"
}

// DefaultCCache returns the Kerberos credential cache path from KRB5CCNAME,
// falling back to /tmp/krb5cc_<uid>. Only FILE: caches are supported.
func DefaultCCache() string {
	if name := strings.TrimSpace(os.Getenv("KRB5CCNAME")); name != "" {
		return strings.TrimPrefix(name, "FILE:")
	}
	return filepath.Join(os.TempDir(), "krb5cc_"+currentUID())
}

func currentUID() string {
	if u, err := user.Current(); err == nil {
		return u.Uid
	}
	return "0"
}
