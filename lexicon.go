// Package lexicon builds a static encyclopedia site from a directory of
// player-written articles: it parses the citation dialect, resolves the
// citation graph, computes statistics, and renders the site.
package lexicon

import (
	"context"
	"io/fs"
	"os"

	"github.com/goliatone/go-lexicon/internal/corpus"
	"github.com/goliatone/go-lexicon/internal/generator"
	"github.com/goliatone/go-lexicon/internal/logging"
	"github.com/goliatone/go-lexicon/internal/logging/gologger"
	"github.com/goliatone/go-lexicon/internal/markdown"
	"github.com/goliatone/go-lexicon/internal/stats"
	"github.com/goliatone/go-lexicon/pkg/interfaces"
)

// BuildRequest narrows one build invocation.
type BuildRequest struct {
	DryRun bool
	// Workers overrides the configured parse concurrency when positive.
	Workers int
}

// BuildSummary bundles everything one build produced: the generator result,
// the corpus report, and the computed statistics.
type BuildSummary struct {
	Result *generator.BuildResult
	Report *corpus.Report
	Stats  *stats.Stats
}

// Builder runs the full pipeline: load, parse, resolve, compute, render.
type Builder struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	site     generator.Service
	sourceFS fs.FS
}

// Option customises Builder construction.
type Option func(*Builder)

// WithLoggerProvider replaces the default go-logger backed provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(b *Builder) { b.provider = provider }
}

// WithSourceFS reads articles from the given filesystem instead of the
// configured source directory. The loader walks it from its root.
func WithSourceFS(fsys fs.FS) Option {
	return func(b *Builder) { b.sourceFS = fsys }
}

// New validates the configuration and wires the pipeline.
func New(cfg Config, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{cfg: cfg}
	for _, opt := range opts {
		opt(b)
	}

	if b.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		b.provider = provider
	}
	b.logger = logging.ModuleLogger(b.provider, "")

	if b.sourceFS == nil {
		b.sourceFS = os.DirFS(cfg.Source.Dir)
	}

	renderer, err := generator.NewTemplateRenderer(cfg.Output.TemplateDir)
	if err != nil {
		return nil, err
	}
	b.site = generator.NewService(generator.Config{
		OutputDir:   cfg.Output.Dir,
		BaseURL:     cfg.Site.BaseURL,
		SiteTitle:   cfg.Site.Title,
		SessionHTML: cfg.Site.SessionHTML,
		TemplateDir: cfg.Output.TemplateDir,
		AssetDir:    cfg.Output.AssetDir,
		Workers:     cfg.Output.Workers,
		CopyAssets:  cfg.Output.CopyAssets,
	}, generator.Dependencies{
		Renderer: renderer,
		Logger:   logging.GeneratorLogger(b.provider),
	})

	return b, nil
}

// Build runs the whole pipeline once. Parse failures, title conflicts, and
// self-citations never abort the build; they come back in the summary's
// report. The returned error covers I/O and rendering failures only.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*BuildSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loader := markdown.NewLoader(b.sourceFS, markdown.LoaderConfig{
		Pattern:   b.cfg.Source.Pattern,
		Recursive: b.cfg.Source.Recursive,
	})
	sources, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, err
	}
	b.logger.Debug("sources loaded", "files", len(sources))

	workers := b.cfg.Source.Workers
	if req.Workers > 0 {
		workers = req.Workers
	}
	docs, parseErrs := markdown.ParseAll(ctx, sources, workers)
	if len(parseErrs) > 0 {
		mdLogger := logging.MarkdownLogger(b.provider)
		for _, perr := range parseErrs {
			mdLogger.Warn("article skipped", "path", perr.Path, "reason", perr.Reason)
		}
	}

	resolver := corpus.NewResolver(b.indexConfig(), logging.CorpusLogger(b.provider))
	graph, report := resolver.Resolve(docs, parseErrs)

	computed := stats.Compute(graph, b.statsConfig())
	logging.StatsLogger(b.provider).Debug("statistics computed",
		"articles", computed.Articles, "citations", computed.Citations)

	result, err := b.site.Build(ctx, generator.BuildInput{
		Graph:  graph,
		Stats:  computed,
		Report: report,
	}, generator.BuildOptions{DryRun: req.DryRun})

	summary := &BuildSummary{
		Result: result,
		Report: report,
		Stats:  computed,
	}
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// Clean removes generated site output.
func (b *Builder) Clean(ctx context.Context) error {
	return b.site.Clean(ctx)
}

func (b *Builder) indexConfig() corpus.IndexConfig {
	out := corpus.IndexConfig{CatchAllName: b.cfg.Index.CatchAll}
	for _, bucket := range b.cfg.Index.Buckets {
		out.Buckets = append(out.Buckets, corpus.BucketSpec{
			Name:     bucket.Name,
			Letters:  bucket.Letters,
			Capacity: bucket.Capacity,
		})
	}
	return out
}

func (b *Builder) statsConfig() stats.Config {
	return stats.Config{
		EnablePageRank: b.cfg.Stats.EnablePageRank,
		TopN:           b.cfg.Stats.TopN,
		PageRank: stats.PageRankOptions{
			DampingFactor: b.cfg.Stats.Damping,
			MaxIterations: b.cfg.Stats.MaxIterations,
			Convergence:   b.cfg.Stats.Convergence,
		},
	}
}
