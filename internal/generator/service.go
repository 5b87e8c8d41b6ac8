// Package generator renders a resolved corpus into the static site: article
// pages, index bucket pages, contents, statistics, session, and the bundled
// assets. Output depends only on the graph and configuration, so identical
// inputs produce byte-identical pages.
package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-lexicon/internal/corpus"
	"github.com/goliatone/go-lexicon/internal/logging"
	"github.com/goliatone/go-lexicon/internal/stats"
	"github.com/goliatone/go-lexicon/pkg/interfaces"
)

var (
	errRendererRequired = errors.New("generator: template renderer is required")
	errGraphRequired    = errors.New("generator: resolved graph is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, input BuildInput, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir   string
	BaseURL     string
	SiteTitle   string
	SessionHTML string
	TemplateDir string
	AssetDir    string
	Workers     int
	CopyAssets  bool
}

// BuildInput hands the generator the resolved corpus for one build. Report is
// optional; when present its diagnostics surface on the statistics page.
type BuildInput struct {
	Graph  *corpus.Graph
	Stats  *stats.Stats
	Report *corpus.Report
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID  uuid.UUID
	Pages    int
	Assets   int
	Duration time.Duration
	DryRun   bool
	Rendered []RenderedPage
	Errors   []error
}

// RenderedPage records one written page.
type RenderedPage struct {
	Route    string
	Path     string
	Size     int
	Checksum string
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Renderer interfaces.TemplateRenderer
	Logger   interfaces.Logger
}

// NewService wires a generator with the provided configuration and
// dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{cfg: cfg, deps: deps}
}

type service struct {
	cfg  Config
	deps Dependencies
}

type renderOutcome struct {
	html []byte
	err  error
}

func (s *service) Build(ctx context.Context, input BuildInput, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if input.Graph == nil {
		return nil, errGraphRequired
	}
	if input.Stats == nil {
		input.Stats = stats.Compute(input.Graph, stats.Config{})
	}

	start := time.Now()
	result := &BuildResult{BuildID: uuid.New(), DryRun: opts.DryRun}

	plan, err := s.buildPlan(input.Graph, input.Stats, input.Report)
	if err != nil {
		return nil, err
	}

	outcomes := make([]renderOutcome, len(plan))
	workers := s.effectiveWorkerCount(len(plan))
	if workers <= 1 {
		for i := range plan {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			outcomes[i] = s.renderPage(plan[i])
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					select {
					case <-ctx.Done():
						outcomes[i] = renderOutcome{err: ctx.Err()}
					default:
						outcomes[i] = s.renderPage(plan[i])
					}
				}
			}()
		}
	dispatch:
		for i := range plan {
			select {
			case <-ctx.Done():
				break dispatch
			case jobs <- i:
			}
		}
		close(jobs)
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	var errs []error
	for i, outcome := range outcomes {
		if outcome.err != nil {
			errs = append(errs, outcome.err)
			continue
		}
		result.Rendered = append(result.Rendered, RenderedPage{
			Route:    plan[i].Route,
			Path:     plan[i].Path,
			Size:     len(outcome.html),
			Checksum: checksum(outcome.html),
		})
	}
	if len(errs) > 0 {
		result.Errors = errs
		result.Duration = time.Since(start)
		return result, errors.Join(errs...)
	}

	writer := artifactWriter(noopWriter{})
	if !opts.DryRun {
		writer, err = newFSWriter(s.cfg.OutputDir)
		if err != nil {
			return result, err
		}
	}

	// Writes happen only after the whole plan rendered cleanly, so a failed
	// build never leaves a half-updated site behind.
	for i, outcome := range outcomes {
		if err := writer.WriteFile(ctx, plan[i].Path, outcome.html); err != nil {
			result.Errors = append(result.Errors, err)
			result.Duration = time.Since(start)
			return result, err
		}
		result.Pages++
	}

	if s.cfg.CopyAssets {
		assets, err := s.copyAssets(ctx, writer)
		result.Assets = assets
		if err != nil {
			result.Errors = append(result.Errors, err)
			result.Duration = time.Since(start)
			return result, err
		}
	}

	result.Duration = time.Since(start)
	s.deps.Logger.Info("site generated",
		"build_id", result.BuildID.String(),
		"pages", result.Pages,
		"assets", result.Assets,
		"dry_run", result.DryRun,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes generated output. Only paths the generator owns are touched,
// so a shared output directory keeps its unrelated files.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	root := strings.TrimSpace(s.cfg.OutputDir)
	if root == "" {
		return errors.New("generator: output directory is required")
	}
	owned := []string{"article", "index", "contents", "statistics", "session", "static", "index.html"}
	for _, rel := range owned {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(filepath.Join(root, rel)); err != nil {
			return fmt.Errorf("generator: clean %s: %w", rel, err)
		}
	}
	return nil
}

func (s *service) renderPage(page pageSpec) renderOutcome {
	var buf bytes.Buffer
	if err := s.deps.Renderer.Render(page.Template, page.Data, &buf); err != nil {
		return renderOutcome{err: fmt.Errorf("generator: render %s (%s): %w", page.Path, page.Template, err)}
	}
	return renderOutcome{html: buf.Bytes()}
}

func (s *service) effectiveWorkerCount(pages int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if pages > 0 && workers > pages {
		return pages
	}
	return workers
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
