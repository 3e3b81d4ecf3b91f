package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/schack/schack/internal/chess"
	"github.com/spf13/viper"
)

const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Game      GameConfig      `mapstructure:"game"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Spectator SpectatorConfig `mapstructure:"spectator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Frontend string `mapstructure:"frontend"`
	Title    string `mapstructure:"title"`
}

type GameConfig struct {
	// StartFEN is the position every new game starts from; empty means the
	// standard starting position.
	StartFEN string `mapstructure:"start_fen"`
}

// ThemeConfig holds hex colours; empty values keep the built-in palette.
type ThemeConfig struct {
	Light     string `mapstructure:"light"`
	Dark      string `mapstructure:"dark"`
	Highlight string `mapstructure:"highlight"`
	WhiteTurn string `mapstructure:"white_turn"`
	BlackTurn string `mapstructure:"black_turn"`
}

type SpectatorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads config.yaml from the working directory or ./config, or the file
// at path when one is given. SCHACK_ prefixed environment variables override
// both, e.g. SCHACK_SPECTATOR_PORT. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SCHACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("app.frontend", d.App.Frontend)
	v.SetDefault("app.title", d.App.Title)
	v.SetDefault("game.start_fen", d.Game.StartFEN)
	v.SetDefault("theme.light", d.Theme.Light)
	v.SetDefault("theme.dark", d.Theme.Dark)
	v.SetDefault("theme.highlight", d.Theme.Highlight)
	v.SetDefault("theme.white_turn", d.Theme.WhiteTurn)
	v.SetDefault("theme.black_turn", d.Theme.BlackTurn)
	v.SetDefault("spectator.enabled", d.Spectator.Enabled)
	v.SetDefault("spectator.host", d.Spectator.Host)
	v.SetDefault("spectator.port", d.Spectator.Port)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.pretty", d.Logging.Pretty)
}

// Defaults is the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Frontend: FrontendWindow,
			Title:    "Schack",
		},
		Spectator: SpectatorConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    8090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Validate checks the values that cannot be caught by decoding alone.
func (c *Config) Validate() error {
	switch c.App.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return fmt.Errorf("app.frontend must be %q or %q, got %q", FrontendWindow, FrontendTerminal, c.App.Frontend)
	}

	if c.Game.StartFEN != "" {
		if err := chess.ValidateFEN(c.Game.StartFEN); err != nil {
			return fmt.Errorf("game.start_fen: %w", err)
		}
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	if c.Spectator.Enabled && (c.Spectator.Port <= 0 || c.Spectator.Port > 65535) {
		return fmt.Errorf("spectator.port out of range: %d", c.Spectator.Port)
	}
	return nil
}
