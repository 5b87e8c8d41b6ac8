// Package runtimeconfig defines the configuration surface of the lexicon
// builder. The root package re-exports these types so callers configure the
// library without importing internal packages.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceDirRequired indicates the article source directory is missing.
var ErrSourceDirRequired = errors.New("lexicon config: source directory is required")

// ErrOutputDirRequired indicates the site output directory is missing.
var ErrOutputDirRequired = errors.New("lexicon config: output directory is required")

// ErrIndexBucketInvalid indicates an index bucket with no name or letters.
var ErrIndexBucketInvalid = errors.New("lexicon config: index buckets need a name and a letter set")

// ErrIndexLetterReused indicates a letter claimed by two index buckets.
var ErrIndexLetterReused = errors.New("lexicon config: index letter assigned to more than one bucket")

// ErrIndexCapacityInvalid indicates a negative bucket capacity.
var ErrIndexCapacityInvalid = errors.New("lexicon config: index bucket capacity must be zero or positive")

// ErrStatsDampingInvalid indicates a PageRank damping factor outside (0, 1).
var ErrStatsDampingInvalid = errors.New("lexicon config: pagerank damping factor must be between 0 and 1")

// ErrLoggingLevelInvalid indicates an unsupported logging level.
var ErrLoggingLevelInvalid = errors.New("lexicon config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unsupported logging format.
var ErrLoggingFormatInvalid = errors.New("lexicon config: logging format is invalid")

// Config is the full configuration for one lexicon build.
type Config struct {
	Site    SiteConfig
	Source  SourceConfig
	Output  OutputConfig
	Index   IndexConfig
	Stats   StatsConfig
	Logging LoggingConfig
}

// SiteConfig describes the rendered site itself.
type SiteConfig struct {
	Title string
	// BaseURL prefixes every generated link. Empty means root-relative
	// links, which is what a locally served site wants.
	BaseURL string
	// SessionHTML is the markup shown on the session page: the current
	// prompt, house rules, whatever the editor wants players to read.
	SessionHTML string
}

// SourceConfig locates and bounds article ingestion.
type SourceConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
	// Workers bounds concurrent parsing. Zero means one per CPU.
	Workers int
}

// OutputConfig controls where and how pages get written.
type OutputConfig struct {
	Dir         string
	TemplateDir string
	AssetDir    string
	CopyAssets  bool
	Workers     int
}

// IndexConfig partitions titles into index buckets by leading letter.
type IndexConfig struct {
	Buckets []IndexBucketConfig
	// CatchAll names the bucket for titles starting with digits or symbols.
	CatchAll string
}

// IndexBucketConfig is one named letter group. Capacity zero means uncapped;
// a positive capacity is reported against occupancy but never enforced.
type IndexBucketConfig struct {
	Name     string
	Letters  string
	Capacity int
}

// StatsConfig tunes the statistics engine.
type StatsConfig struct {
	EnablePageRank bool
	Damping        float64
	MaxIterations  int
	Convergence    float64
	TopN           int
}

// LoggingConfig selects logger behaviour for the build.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a configuration that builds a classic lexicon layout
// out of ./articles into ./site.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title: "Lexicon",
		},
		Source: SourceConfig{
			Dir:       "articles",
			Pattern:   "*.md",
			Recursive: false,
		},
		Output: OutputConfig{
			Dir:        "site",
			CopyAssets: true,
		},
		Index: IndexConfig{
			Buckets: []IndexBucketConfig{
				{Name: "ABC", Letters: "ABC"},
				{Name: "DEF", Letters: "DEF"},
				{Name: "GHI", Letters: "GHI"},
				{Name: "JKL", Letters: "JKL"},
				{Name: "MNO", Letters: "MNO"},
				{Name: "PQRS", Letters: "PQRS"},
				{Name: "TUV", Letters: "TUV"},
				{Name: "WXYZ", Letters: "WXYZ"},
			},
			CatchAll: "&c",
		},
		Stats: StatsConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Source.Dir) == "" {
		return ErrSourceDirRequired
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return ErrOutputDirRequired
	}

	claimed := map[rune]string{}
	for _, bucket := range cfg.Index.Buckets {
		if strings.TrimSpace(bucket.Name) == "" || strings.TrimSpace(bucket.Letters) == "" {
			return ErrIndexBucketInvalid
		}
		if bucket.Capacity < 0 {
			return fmt.Errorf("%w: %s", ErrIndexCapacityInvalid, bucket.Name)
		}
		for _, letter := range strings.ToUpper(bucket.Letters) {
			if owner, ok := claimed[letter]; ok {
				return fmt.Errorf("%w: %q in %s and %s", ErrIndexLetterReused, letter, owner, bucket.Name)
			}
			claimed[letter] = bucket.Name
		}
	}

	if cfg.Stats.EnablePageRank && cfg.Stats.Damping != 0 {
		if cfg.Stats.Damping <= 0 || cfg.Stats.Damping >= 1 {
			return fmt.Errorf("%w: %v", ErrStatsDampingInvalid, cfg.Stats.Damping)
		}
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
