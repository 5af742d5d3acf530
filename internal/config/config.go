package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/doccover/internal/forest"
)

type Config struct {
	Port string

	// Auth
	DoccoverAPIKey string

	// Repository under analysis
	RepoRoot   string
	IgnoreFile string

	// Anchor families
	PrimaryAnchorName string
	MirrorAnchorName  string

	// Budget policy
	BudgetThresholdPercent float64
	SkipBinary             bool
	MaxLines               int

	// Split policy
	MinSplitFiles           int
	MinSplitCoveragePercent float64

	// Scanner
	ScanWorkers  int
	MaxFileBytes int64

	// Report refresh; 0 disables the background rebuild.
	RefreshInterval time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DoccoverAPIKey: os.Getenv("DOCCOVER_API_KEY"),

		RepoRoot:   os.Getenv("REPO_ROOT"),
		IgnoreFile: envOr("IGNORE_FILE", ".doccoverignore"),

		PrimaryAnchorName: envOr("PRIMARY_ANCHOR_NAME", "AGENTS.md"),
		MirrorAnchorName:  envOr("MIRROR_ANCHOR_NAME", "CLAUDE.md"),

		BudgetThresholdPercent: envFloat("BUDGET_THRESHOLD_PERCENT", 5),
		SkipBinary:             envBool("SKIP_BINARY", true),
		MaxLines:               envInt("MAX_LINES", 8000),

		MinSplitFiles:           envInt("MIN_SPLIT_FILES", 3),
		MinSplitCoveragePercent: envFloat("MIN_SPLIT_COVERAGE_PERCENT", 10),

		ScanWorkers:  envInt("SCAN_WORKERS", 8),
		MaxFileBytes: envInt64("MAX_FILE_BYTES", 2097152), // 2MB

		RefreshInterval: envDuration("REFRESH_INTERVAL", 0),
	}

	if cfg.BudgetThresholdPercent <= 0 {
		cfg.BudgetThresholdPercent = 5
	}
	if cfg.MaxLines < 0 {
		cfg.MaxLines = 0
	}
	if cfg.MinSplitFiles <= 0 {
		cfg.MinSplitFiles = 3
	}
	if cfg.MinSplitCoveragePercent <= 0 {
		cfg.MinSplitCoveragePercent = 10
	}
	if cfg.ScanWorkers <= 0 {
		cfg.ScanWorkers = 8
	}
	if cfg.MaxFileBytes < 0 {
		cfg.MaxFileBytes = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.RepoRoot == "" {
		return fmt.Errorf("REPO_ROOT is required")
	}
	if c.DoccoverAPIKey == "" {
		return fmt.Errorf("DOCCOVER_API_KEY is required")
	}
	if c.PrimaryAnchorName == c.MirrorAnchorName {
		return fmt.Errorf("PRIMARY_ANCHOR_NAME and MIRROR_ANCHOR_NAME must differ")
	}
	return nil
}

// AnchorNames maps each anchor kind to its configured file name.
func (c Config) AnchorNames() map[forest.Kind]string {
	return map[forest.Kind]string{
		forest.KindPrimary: c.PrimaryAnchorName,
		forest.KindMirror:  c.MirrorAnchorName,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
