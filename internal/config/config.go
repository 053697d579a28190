package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config holds the settings read from the dotfile and environment.
type Config struct {
	APIKey        string `mapstructure:"api_key"`
	APIBase       string `mapstructure:"api_base"`
	Model         string `mapstructure:"model"`
	Timeout       int    `mapstructure:"timeout"`
	MaxDiffLength int    `mapstructure:"max_diff_length"`
	Language      string `mapstructure:"language"`
	Emoji         bool   `mapstructure:"emoji"`
}

const (
	DefaultModel         = "gpt-4o-mini"
	DefaultTimeout       = 30
	DefaultMaxDiffLength = 12000
	DefaultLanguage      = "en"
	DefaultConfigName    = ".hookmsg"
	EnvPrefix            = "HOOKMSG"
)

const (
	KeyAPIKey        = "api_key"
	KeyAPIBase       = "api_base"
	KeyModel         = "model"
	KeyTimeout       = "timeout"
	KeyMaxDiffLength = "max_diff_length"
	KeyLanguage      = "language"
	KeyEmoji         = "emoji"
)

var defaults = map[string]any{
	KeyAPIKey:        "",
	KeyAPIBase:       "",
	KeyModel:         DefaultModel,
	KeyTimeout:       DefaultTimeout,
	KeyMaxDiffLength: DefaultMaxDiffLength,
	KeyLanguage:      DefaultLanguage,
	KeyEmoji:         false,
}

// ErrUnknownKey is returned by Set for keys outside the supported set.
var ErrUnknownKey = errors.New("unknown configuration key")

// Provider loads configuration from a single dotfile, with HOOKMSG_*
// environment variables taking precedence.
type Provider struct {
	v    *viper.Viper
	path string
}

// NewProvider creates a provider for cfgFile, or the default dotfile when
// cfgFile is empty.
func NewProvider(cfgFile string) (*Provider, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Provider{v: v, path: path}, nil
}

// DefaultPath returns the dotfile location in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot find home directory")
	}
	return filepath.Join(home, DefaultConfigName+".yaml"), nil
}

// Path is the file the provider reads and writes.
func (p *Provider) Path() string {
	return p.path
}

// GetConfig reads the dotfile. A missing file yields defaults, while an
// unreadable or malformed file is an error.
func (p *Provider) GetConfig() (*Config, error) {
	if err := p.read(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := p.v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse configuration %s", p.path)
	}
	return cfg, nil
}

func (p *Provider) read() error {
	if _, err := os.Stat(p.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := p.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "cannot read configuration %s", p.path)
	}
	return nil
}

// Get returns the effective value of a single key.
func (p *Provider) Get(key string) (string, error) {
	if !IsValidKey(key) {
		return "", errors.Wrapf(ErrUnknownKey, "%q", key)
	}
	if err := p.read(); err != nil {
		return "", err
	}
	return p.v.GetString(key), nil
}

// Set validates and persists a single key, creating the dotfile if needed.
func (p *Provider) Set(key, value string) error {
	if !IsValidKey(key) {
		return errors.WithHintf(errors.Wrapf(ErrUnknownKey, "%q", key),
			"supported keys: %s", strings.Join(Keys(), ", "))
	}
	if err := p.read(); err != nil {
		return err
	}

	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	// Only keys already in the file plus this one are written; environment
	// overrides and defaults stay out of it.
	file, err := p.fileOnly()
	if err != nil {
		return err
	}
	file.Set(key, parsed)
	p.v.Set(key, parsed)

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return errors.Wrap(err, "cannot create configuration directory")
	}
	if err := file.WriteConfigAs(p.path); err != nil {
		return errors.Wrapf(err, "cannot write configuration %s", p.path)
	}
	// The file holds a credential.
	if err := os.Chmod(p.path, 0o600); err != nil {
		return errors.Wrapf(err, "cannot restrict permissions on %s", p.path)
	}
	return nil
}

// fileOnly loads the dotfile into a viper instance without defaults or
// environment bindings.
func (p *Provider) fileOnly() (*viper.Viper, error) {
	file := viper.New()
	file.SetConfigType("yaml")
	if _, err := os.Stat(p.path); errors.Is(err, os.ErrNotExist) {
		return file, nil
	}
	file.SetConfigFile(p.path)
	if err := file.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration %s", p.path)
	}
	return file, nil
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeyTimeout, KeyMaxDiffLength:
		n, err := parsePositiveInt(value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for %s", key)
		}
		return n, nil
	case KeyEmoji:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "1", "on":
			return true, nil
		case "false", "no", "0", "off":
			return false, nil
		}
		return nil, errors.Newf("invalid value for %s: %q is not a boolean", key, value)
	case KeyModel, KeyLanguage:
		if strings.TrimSpace(value) == "" {
			return nil, errors.Newf("%s cannot be empty", key)
		}
	}
	return value, nil
}

func parsePositiveInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.Newf("%d is not a positive integer", n)
	}
	return n, nil
}

// IsValidKey reports whether key is a supported configuration key.
func IsValidKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Keys lists the supported configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MaskSecret hides all but the last four characters of a credential.
func MaskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}
