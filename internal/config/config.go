package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the chart service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Initial props: a JSON document {"data": ..., "area": ...} loaded at startup
	DataFile    string `env:"DATA_FILE"`
	DefaultArea string `env:"DEFAULT_AREA,default=中国"`

	// Rendering
	ChartWidth  int    `env:"CHART_WIDTH,default=1024"`
	ChartHeight int    `env:"CHART_HEIGHT,default=400"`
	EChartsCDN  string `env:"ECHARTS_CDN,default=https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"`
	// TrueType font with CJK glyphs for PNG charts; system fonts are searched when empty
	ChartFont string `env:"CHART_FONT"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables, after reading
// envFiles (default ".env") into the environment. Missing env files are
// ignored; variables already set take precedence over file values.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0 {
		return nil, fmt.Errorf("chart size must be positive, got %dx%d", cfg.ChartWidth, cfg.ChartHeight)
	}
	return &cfg, nil
}
