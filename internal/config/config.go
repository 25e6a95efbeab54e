// Package config loads process-wide settings once at startup: .env, then an
// optional YAML file, then WIKI_RESEARCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/petasbytes/wiki-research/internal/provider"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. WIKI_RESEARCH_OUTPUT_FILE.
	EnvPrefix = "WIKI_RESEARCH"
	// ConfigName is the config file base name searched for when no path is given.
	ConfigName = "wiki-research"
)

type Anthropic struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Prompt is the model and output bound for one program.
type Prompt struct {
	Model     string `mapstructure:"model"`
	MaxTokens int64  `mapstructure:"max_tokens"`
}

type Output struct {
	// Root is the sandbox root; File is relative to it.
	Root string `mapstructure:"root"`
	File string `mapstructure:"file"`
}

type Wiki struct {
	Endpoint    string        `mapstructure:"endpoint"`
	UserAgent   string        `mapstructure:"user_agent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchLimit int           `mapstructure:"search_limit"`
}

// Config is the full process configuration.
type Config struct {
	Anthropic  Anthropic `mapstructure:"anthropic"`
	Arithmetic Prompt    `mapstructure:"arithmetic"`
	Research   Prompt    `mapstructure:"research"`
	Output     Output    `mapstructure:"output"`
	Wiki       Wiki      `mapstructure:"wiki"`
	Debug      bool      `mapstructure:"debug"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("arithmetic.model", string(provider.ArithmeticModel))
	v.SetDefault("arithmetic.max_tokens", 400)
	v.SetDefault("research.model", string(provider.ResearchModel))
	v.SetDefault("research.max_tokens", 500)
	v.SetDefault("output.root", ".")
	v.SetDefault("output.file", "output/research_reading.md")
	v.SetDefault("wiki.endpoint", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wiki.user_agent", "wiki-research/0.1 (https://github.com/petasbytes/wiki-research)")
	v.SetDefault("wiki.timeout", 30*time.Second)
	v.SetDefault("wiki.search_limit", 10)
	v.SetDefault("debug", false)
}

// Load reads configuration. cfgFile, when non-empty, must exist; otherwise
// ./wiki-research.yaml and ~/.config/wiki-research/wiki-research.yaml are tried and
// may be absent. A missing .env is not an error.
func Load(cfgFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// APIKeyAvailable reports whether any Anthropic credential is configured.
func (c Config) APIKeyAvailable() bool {
	return c.Anthropic.APIKey != "" || os.Getenv("ANTHROPIC_API_KEY") != ""
}

// Validate fails fast on settings that would only surface as API errors later.
func (c Config) Validate() error {
	var errs []error
	if !c.APIKeyAvailable() {
		errs = append(errs, errors.New("missing ANTHROPIC_API_KEY; export it or set anthropic.api_key"))
	}
	if c.Arithmetic.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("arithmetic.max_tokens must be positive, got %d", c.Arithmetic.MaxTokens))
	}
	if c.Research.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("research.max_tokens must be positive, got %d", c.Research.MaxTokens))
	}
	if strings.TrimSpace(c.Output.File) == "" {
		errs = append(errs, errors.New("output.file must not be empty"))
	}
	return errors.Join(errs...)
}
