// Package sitecmd exposes the site build pipeline as go-command messages so
// hosts can dispatch builds the same way they dispatch any other command.
package sitecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-lexicon/internal/commands"
	"github.com/goliatone/go-lexicon/internal/logging"
	"github.com/goliatone/go-lexicon/pkg/interfaces"

	lexicon "github.com/goliatone/go-lexicon"
)

// ErrBuilderRequired indicates no builder was wired into the handler.
var ErrBuilderRequired = errors.New("sitecmd: builder is required")

// Builder is the slice of the root pipeline the handlers need.
type Builder interface {
	Build(ctx context.Context, req lexicon.BuildRequest) (*lexicon.BuildSummary, error)
	Clean(ctx context.Context) error
}

// BuildSiteHandler runs site builds through the shared command foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided builder.
func NewBuildSiteHandler(builder Builder, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if builder == nil {
			return ErrBuilderRequired
		}
		summary, err := builder.Build(ctx, lexicon.BuildRequest{
			DryRun:  msg.DryRun,
			Workers: msg.Workers,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Summary: summary,
			Metadata: map[string]any{
				"operation": "build",
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Workers > 0 {
				fields["workers"] = msg.Workers
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler removes generated output.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that cleans the configured site
// output.
func NewCleanSiteHandler(builder Builder, logger interfaces.Logger, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if builder == nil {
			return ErrBuilderRequired
		}
		return builder.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("site.clean"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
