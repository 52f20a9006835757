package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/docserver"
	dochttp "github.com/sagarc03/docserver/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for docserver.
type Config struct {
	Env     string             `mapstructure:"env" yaml:"env"`
	Server  ServerConfig       `mapstructure:"server" yaml:"server"`
	Storage StorageConfig      `mapstructure:"storage" yaml:"storage"`
	Auth    AuthConfig         `mapstructure:"auth" yaml:"auth"`
	CORS    dochttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log     LogConfig          `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
// Zero timeouts disable the corresponding limit.
type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size" yaml:"max_upload_size" validate:"min=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=0"`
}

// StorageConfig holds the public root location.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

// AuthConfig holds the Basic auth credentials required for PUT and DELETE.
type AuthConfig struct {
	User     string `mapstructure:"user" yaml:"user" validate:"required"`
	Password string `mapstructure:"password" yaml:"password"`
	Realm    string `mapstructure:"realm" yaml:"realm" validate:"required"`
}

// Credentials returns the configured credentials.
func (a AuthConfig) Credentials() docserver.Credentials {
	return docserver.Credentials{User: a.User, Password: a.Password}
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":      "server.port",
	"root":      "storage.path",
	"log-level": "log.level",
}

// envAliases binds bare environment variables to viper keys, in addition
// to the DOCSERVER_ prefixed names.
var envAliases = map[string]string{
	"server.port":   "PORT",
	"auth.user":     "AUTH_USER",
	"auth.password": "AUTH_PASS",
	"storage.path":  "PUBLIC_DIR",
	"log.level":     "LOG_LEVEL",
	"env":           "ENV",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// DefaultPublicDir returns the "public" directory next to the running
// executable, falling back to ./public when the executable path is unknown.
func DefaultPublicDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "public"
	}
	return filepath.Join(filepath.Dir(exe), "public")
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.max_upload_size", 0) // 0 means no limit
	v.SetDefault("server.read_timeout", 0)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.idle_timeout", 0)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("storage.path", DefaultPublicDir())

	v.SetDefault("auth.user", "admin")
	v.SetDefault("auth.password", "secret")
	v.SetDefault("auth.realm", docserver.DefaultRealm)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "PUT", "DELETE"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("DOCSERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		_ = v.BindEnv(key, env)
	}

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
