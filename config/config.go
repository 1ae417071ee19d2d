package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// TokenEnv 是提供机器人令牌的环境变量名。
const TokenEnv = "DISCORD_TOKEN"

// ErrMissingToken 表示启动时缺少令牌，进程应立即退出。
var ErrMissingToken = fmt.Errorf("failed to get environment variable from env %s", TokenEnv)

// defaultFiles 是未显式指定配置文件时依次尝试的路径。
var defaultFiles = []string{"housebot.yml", "housebot.yaml"}

type Config struct {
	// Bot token, only read from the environment
	Token string `yaml:"-" json:"-"`
	// Prefix for message commands such as !hello
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	// Register slash commands to a single guild instead of globally
	GuildID string `yaml:"guildID,omitempty" json:"guildID,omitempty"`
	// Directory used to resolve relative background and font paths
	AssetsDir string `yaml:"assetsDir,omitempty" json:"assetsDir,omitempty"`
	// Background image of the titlecard
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	// Font resource: builtin:<name> or a font file path
	Font string `yaml:"font,omitempty" json:"font,omitempty"`
	// Line spacing factor, 1.0 = no extra space
	LineSpacing float64 `yaml:"lineSpacing,omitempty" json:"lineSpacing,omitempty"`
	// Greeting template, ${user.name} is the caller's display name
	Greeting string `yaml:"greeting,omitempty" json:"greeting,omitempty"`
	// Candidate activities offered by autocomplete
	Activities []string `yaml:"activities,omitempty" json:"activities,omitempty"`
	LogDir     string   `yaml:"logDir,omitempty" json:"logDir,omitempty"`
	LogLevel   string   `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Prefix:      "!",
		AssetsDir:   ".",
		Background:  "sbob_background.webp",
		LineSpacing: 1.1,
		Greeting:    "Hey great day in our house ${user.name}!",
		LogDir:      ".log",
		LogLevel:    "info",
	}
}

// LoadDotEnv 加载 .env 文件到进程环境；文件不存在时不视为错误。
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads the configuration.
// It reads the YAML file at path when given, otherwise the first existing
// file of housebot.yml, housebot.yaml in the working directory.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else {
		for _, p := range defaultFiles {
			b, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config %s: %w", p, err)
			}
			break
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Token = os.Getenv(TokenEnv)
	for env, dst := range map[string]*string{
		"HOUSEBOT_PREFIX":     &c.Prefix,
		"HOUSEBOT_GUILD_ID":   &c.GuildID,
		"HOUSEBOT_ASSETS_DIR": &c.AssetsDir,
		"HOUSEBOT_BACKGROUND": &c.Background,
		"HOUSEBOT_FONT":       &c.Font,
		"HOUSEBOT_GREETING":   &c.Greeting,
		"HOUSEBOT_LOG_DIR":    &c.LogDir,
		"HOUSEBOT_LOG_LEVEL":  &c.LogLevel,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("HOUSEBOT_LINE_SPACING"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HOUSEBOT_LINE_SPACING %q: %w", v, err)
		}
		c.LineSpacing = f
	}
	return nil
}

// Validate checks the settings required to connect.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.LineSpacing <= 0 {
		return fmt.Errorf("lineSpacing must be positive, got %g", c.LineSpacing)
	}
	return nil
}
