// Package config loads the drawgram configuration from defaults, an
// optional yaml file and DRAWGRAM_ environment variables, and sets up the
// logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DRAWGRAM"

	// name of the config file searched when no path is given
	defaultName = "drawgram"
)

type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	DocPath     string `mapstructure:"doc_path"`
	LexiconPath string `mapstructure:"lexicon_path"`

	Parser struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"parser"`

	Fallback struct {
		Enabled bool   `mapstructure:"enabled"`
		Force   bool   `mapstructure:"force"`
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"fallback"`

	Render struct {
		Color bool `mapstructure:"color"`
	} `mapstructure:"render"`
}

// Defaults are set for local use: a parse service on localhost and no
// language model.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"log_level":    "warn",
		"doc_path":     "docs",
		"lexicon_path": "",
		"parser": map[string]interface{}{
			"url":     "http://localhost:8000",
			"timeout": "10s",
		},
		"fallback": map[string]interface{}{
			"enabled": false,
			"force":   false,
			"api_key": "",
			"model":   "gemini-2.0-flash",
		},
		"render": map[string]interface{}{
			"color": true,
		},
	}
}

// Load reads the configuration. With an empty path, drawgram.yaml is looked
// up in the working directory and $HOME/.config/drawgram, and its absence is
// not an error. Environment variables override file keys:
// DRAWGRAM_PARSER_URL sets parser.url.
func Load(path string) (Config, error) {
	v := viper.New()

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/drawgram")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound) && path == "":
	case err != nil:
		return Config{}, fmt.Errorf("config file: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config decoding error: %w", err)
	}

	return c, nil
}

// Logger returns a console logger writing to w at the given level.
func Logger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
