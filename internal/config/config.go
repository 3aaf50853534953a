package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project-local config file name.
	FileName = ".md2markup.yml"

	DefaultOutputExt = ".txt"
	DefaultJobs      = 4

	envPrefix = "MD2MARKUP"
)

var ErrConfigNotFound = errors.New("config file not found")

// Config is the converter configuration.
type Config struct {
	// OutputExt replaces the input extension when no output path is given.
	OutputExt string `mapstructure:"output_ext" yaml:"output_ext"`
	// StripFrontMatter drops a leading YAML front matter block.
	StripFrontMatter bool `mapstructure:"strip_front_matter" yaml:"strip_front_matter"`
	// Jobs bounds the number of files converted at once.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`
	// Languages maps fence language tokens to the names Confluence knows.
	Languages map[string]string `mapstructure:"languages" yaml:"languages"`

	// File is the config file that was read, "" when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		OutputExt: DefaultOutputExt,
		Jobs:      DefaultJobs,
		Languages: map[string]string{},
	}
}

// Load reads the configuration. An explicit path must exist. With an empty
// path ./.md2markup.yml and then ~/.config/md2markup/config.yml are tried,
// and defaults are used when neither exists. MD2MARKUP_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("output_ext", def.OutputExt)
	v.SetDefault("strip_front_matter", def.StripFrontMatter)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("languages", def.Languages)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file, err := findFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
	}
	cfg.File = file
	cfg.normalize()
	return &cfg, nil
}

// normalize fixes values a user is likely to get slightly wrong: a missing
// dot in the extension and a non-positive job count.
func (c *Config) normalize() {
	if c.OutputExt == "" {
		c.OutputExt = DefaultOutputExt
	}
	if !strings.HasPrefix(c.OutputExt, ".") {
		c.OutputExt = "." + c.OutputExt
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	if c.Languages == nil {
		c.Languages = map[string]string{}
	}
}

// YAML encodes c in the config file format.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// findFile resolves the config file to load. An explicit path must exist;
// otherwise the first existing search path wins and "" means none.
func findFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return "", err
		}
		return path, nil
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// searchPaths lists the implicit config locations in lookup order.
func searchPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "md2markup", "config.yml"))
	}
	return paths
}
