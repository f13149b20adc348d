package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"livslogg/pkg/confkit"
	llmpkg "livslogg/pkg/llm"
)

// Config is the application configuration for both the CLI and the
// dashboard server. Store paths are resolved against the directory of
// the main config file unless absolute.
type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod.
	Env string `json:",default=test"`
	// StorePath is the activity log CSV file.
	StorePath string `json:",default=livslogg.csv"`
	// TaskPath is the task list CSV file.
	TaskPath string `json:",default=tasks.csv"`
	// AuditDir enables JSON audit files for AI parse cycles when set.
	AuditDir string `json:",optional"`

	LLM confkit.Section[llmpkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return errors.New("config: storePath is required")
	}
	if strings.TrimSpace(c.TaskPath) == "" {
		return errors.New("config: taskPath is required")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	if err := c.LLM.Hydrate(c.baseDir, llmpkg.LoadConfig); err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	return nil
}

// ResolvedStorePath returns the activity store path resolved against the
// config file directory.
func (c *Config) ResolvedStorePath() string {
	return confkit.ResolvePath(c.baseDir, c.StorePath)
}

// ResolvedTaskPath returns the task store path resolved against the
// config file directory.
func (c *Config) ResolvedTaskPath() string {
	return confkit.ResolvePath(c.baseDir, c.TaskPath)
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
