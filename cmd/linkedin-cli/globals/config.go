package globals

import (
	"linkedin-dashboard/internal/linkedin"
	"linkedin-dashboard/lib/configutil"
	configlibsql "linkedin-dashboard/lib/configutil/libsql"
	"os"
	"path/filepath"
	"time"
)

const ConfigName = "linkedin-cli.json5"

type Config struct {
	BaseUrl        string              `json:"base_url"`
	TimeoutSeconds int                 `json:"timeout_seconds"`
	Keystore       configlibsql.Struct `json:"keystore"`
	ExportDir      string              `json:"export_dir"`
	DebugHttpDir   string              `json:"debug_http_dir"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaultKeystorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "linkedin-dashboard.db"
	}
	return filepath.Join(dir, "linkedin-dashboard", "keystore.db")
}

func (c *Config) applyDefaults() {
	if c.BaseUrl == "" {
		c.BaseUrl = linkedin.DefaultBaseUrl
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	if c.Keystore.File == "" && c.Keystore.Url == "" {
		c.Keystore.File = defaultKeystorePath()
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
}

// LoadConfig reads `path`, or when empty searches for linkedin-cli.json5 from
// the working directory up. A missing file is not an error, every field has
// a default.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		cfg, err = configutil.ReadConfig[Config](path)
	} else {
		cfg, err = configutil.ReadRecursively[Config](ConfigName)
		if os.IsNotExist(err) {
			err = nil
		}
	}
	if err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}
