package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/loom/pkg/db"
	"github.com/dmitrymomot/loom/pkg/logger"
	"github.com/dmitrymomot/loom/pkg/oauth"
	"github.com/dmitrymomot/loom/pkg/redis"
)

// DefaultFile is the project config file name looked up in the working
// directory.
const DefaultFile = "loom.yaml"

var (
	ErrReadFile  = errors.New("config: failed to read file")
	ErrParseFile = errors.New("config: failed to parse file")
)

// Config is the project configuration loaded from loom.yaml.
// Values may reference environment variables as ${VAR} or $VAR; they are
// expanded before parsing so secrets stay out of the file.
type Config struct {
	App      App                 `yaml:"app"`
	Server   Server              `yaml:"server"`
	Routes   Routes              `yaml:"routes"`
	Database db.Config           `yaml:"database"`
	Redis    redis.Config        `yaml:"redis"`
	Auth     Auth                `yaml:"auth"`
	Log      Log                 `yaml:"log"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
	Dev      Dev                 `yaml:"dev"`
	Domains  map[string]string   `yaml:"domains"`
}

// App identifies the project.
type App struct {
	Name    string `yaml:"name"`
	Env     string `yaml:"env"`
	BaseURL string `yaml:"base_url"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Routes configures file-based route discovery.
type Routes struct {
	Dir string `yaml:"dir"`
}

// Auth configures the authentication stack.
type Auth struct {
	Secret        string                  `yaml:"secret"`
	TokenTTL      time.Duration           `yaml:"token_ttl"`
	CookieName    string                  `yaml:"cookie_name"`
	LoginPath     string                  `yaml:"login_path"`
	AfterLogin    string                  `yaml:"after_login"`
	AfterLogout   string                  `yaml:"after_logout"`
	Providers     map[string]oauth.Config `yaml:"providers"`
	SecureCookies bool                    `yaml:"secure_cookies"`
}

// Log configures the application logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dev configures the development server.
type Dev struct {
	WatchDir string `yaml:"watch_dir"`
	Bundler  string `yaml:"bundler"`
	Port     int    `yaml:"port"`
}

// Load reads and parses the config file at path. A missing file yields
// the defaults, not an error, so zero-config projects work.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, errors.Join(ErrReadFile, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Join(ErrParseFile, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.App.Name == "" {
		cfg.App.Name = "loom-app"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = time.Minute
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Routes.Dir == "" {
		cfg.Routes.Dir = "routes"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "auth_token"
	}
	if cfg.Auth.LoginPath == "" {
		cfg.Auth.LoginPath = "/login"
	}
	if cfg.Auth.AfterLogin == "" {
		cfg.Auth.AfterLogin = "/"
	}
	if cfg.Auth.AfterLogout == "" {
		cfg.Auth.AfterLogout = "/"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Dev.WatchDir == "" {
		cfg.Dev.WatchDir = "."
	}
	if cfg.Dev.Port == 0 {
		cfg.Dev.Port = 3000
	}
}

// IsProduction reports whether the app runs with env set to production.
func (cfg *Config) IsProduction() bool {
	return cfg.App.Env == "production"
}

// Validate checks settings that cannot be defaulted.
func (cfg *Config) Validate() error {
	if len(cfg.Auth.Providers) > 0 && cfg.Auth.Secret == "" {
		return fmt.Errorf("config: auth.secret is required when providers are configured")
	}
	return nil
}
