package sitecmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	lexicon "github.com/goliatone/go-lexicon"
)

const (
	buildSiteMessageType = "lexicon.site.build"
	cleanSiteMessageType = "lexicon.site.clean"
)

// ResultCallback receives build summaries produced by site operations. The
// callback is optional and invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution.
type ResultEnvelope struct {
	Summary  *lexicon.BuildSummary
	Metadata map[string]any
}

// BuildSiteCommand runs one full site build.
type BuildSiteCommand struct {
	DryRun         bool           `json:"dry_run,omitempty"`
	Workers        int            `json:"workers,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the payload is well-formed.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if m.Workers < 0 {
		errs["workers"] = validation.NewError("lexicon.site.build.workers_invalid", "workers must be zero or positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand removes generated site output.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }
