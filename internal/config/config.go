package config

import (
	"errors"
	"fmt"
	"time"

	"artifacts/internal/runner"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	URLKey       = "url"
	TokenKey     = "token"
	TokenFileKey = "token_file"
	NameKey      = "name"
	TimeoutKey   = "timeout"
	MoveXKey     = "move.x"
	MoveYKey     = "move.y"
)

const (
	DefaultTokenFile = "token.txt"
	DefaultName      = "Jura"
)

type Position struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
}

type Config struct {
	URL       string        `mapstructure:"url"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token_file"`
	Name      string        `mapstructure:"name"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Move      Position      `mapstructure:"move"`
}

// TokenSource returns the literal token when one is configured, otherwise the token file.
func (c *Config) TokenSource(fs afero.Fs) TokenSource {
	if c.Token != "" {
		return StaticToken(c.Token)
	}
	return FileToken{Fs: fs, Path: c.TokenFile}
}

// Load reads config.yaml from the first of dirs that has one. A missing file is
// fine; defaults apply and the token falls back to the token file.
func Load(v *viper.Viper, fs afero.Fs, dirs ...string) (*Config, error) {
	v.SetFs(fs)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetDefault(URLKey, runner.DefaultURL)
	v.SetDefault(TokenFileKey, DefaultTokenFile)
	v.SetDefault(NameKey, DefaultName)
	v.SetDefault(MoveXKey, 0)
	v.SetDefault(MoveYKey, 1)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Name == "" {
		return nil, fmt.Errorf("character name not found in config")
	}

	token, err := cfg.TokenSource(fs).Token()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	cfg.Token = token

	return cfg, nil
}
