package lexicon

import "github.com/goliatone/go-lexicon/internal/runtimeconfig"

var (
	ErrSourceDirRequired    = runtimeconfig.ErrSourceDirRequired
	ErrOutputDirRequired    = runtimeconfig.ErrOutputDirRequired
	ErrIndexBucketInvalid   = runtimeconfig.ErrIndexBucketInvalid
	ErrIndexLetterReused    = runtimeconfig.ErrIndexLetterReused
	ErrIndexCapacityInvalid = runtimeconfig.ErrIndexCapacityInvalid
	ErrStatsDampingInvalid  = runtimeconfig.ErrStatsDampingInvalid
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	SiteConfig        = runtimeconfig.SiteConfig
	SourceConfig      = runtimeconfig.SourceConfig
	OutputConfig      = runtimeconfig.OutputConfig
	IndexConfig       = runtimeconfig.IndexConfig
	IndexBucketConfig = runtimeconfig.IndexBucketConfig
	StatsConfig       = runtimeconfig.StatsConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the library defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
