package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	lexicon "github.com/goliatone/go-lexicon"
	sitecmd "github.com/goliatone/go-lexicon/internal/commands/site"
	"github.com/goliatone/go-lexicon/internal/logging/gologger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("lexicon: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("lexicon", flag.ExitOnError)
	sourceDir := fs.String("source", "articles", "Directory containing article source files")
	outputDir := fs.String("output", "site", "Directory the site is written to")
	title := fs.String("title", "Lexicon", "Site title shown on every page")
	baseURL := fs.String("base-url", "", "URL prefix for generated links (empty for root-relative)")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering article files")
	recursive := fs.Bool("recursive", false, "Traverse sub-directories of the source directory")
	sessionFile := fs.String("session-file", "", "HTML file rendered on the session page")
	templateDir := fs.String("template-dir", "", "Directory of template overrides")
	assetDir := fs.String("asset-dir", "", "Directory of static asset overrides")
	workers := fs.Int("workers", 0, "Worker count for parsing and rendering (0 means one per CPU)")
	pagerank := fs.Bool("pagerank", false, "Compute the PageRank leaderboard")
	dryRun := fs.Bool("dry-run", false, "Render without writing any files")
	clean := fs.Bool("clean", false, "Remove generated output instead of building")
	logLevel := fs.String("log-level", "info", "Logging level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", "console", "Logging format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := lexicon.DefaultConfig()
	cfg.Site.Title = *title
	cfg.Site.BaseURL = *baseURL
	cfg.Source.Dir = *sourceDir
	cfg.Source.Pattern = *pattern
	cfg.Source.Recursive = *recursive
	cfg.Source.Workers = *workers
	cfg.Output.Dir = *outputDir
	cfg.Output.TemplateDir = *templateDir
	cfg.Output.AssetDir = *assetDir
	cfg.Output.Workers = *workers
	cfg.Stats.EnablePageRank = *pagerank
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	if *sessionFile != "" {
		data, err := os.ReadFile(*sessionFile)
		if err != nil {
			return fmt.Errorf("read session file: %w", err)
		}
		cfg.Site.SessionHTML = string(data)
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	logger := provider.GetLogger("lexicon.cli")

	builder, err := lexicon.New(cfg)
	if err != nil {
		return fmt.Errorf("configure builder: %w", err)
	}

	ctx := context.Background()

	if *clean {
		handler := sitecmd.NewCleanSiteHandler(builder, logger)
		if err := handler.Execute(ctx, sitecmd.CleanSiteCommand{}); err != nil {
			return fmt.Errorf("execute clean command: %w", err)
		}
		fmt.Fprintln(out, "site output removed")
		return nil
	}

	var summary *lexicon.BuildSummary
	handler := sitecmd.NewBuildSiteHandler(builder, logger)
	cmd := sitecmd.BuildSiteCommand{
		DryRun:  *dryRun,
		Workers: *workers,
		ResultCallback: func(envelope sitecmd.ResultEnvelope) {
			summary = envelope.Summary
		},
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		printSummary(out, summary)
		return fmt.Errorf("execute build command: %w", err)
	}

	printSummary(out, summary)
	return nil
}

// printSummary formats the build report for the terminal. Diagnostics that
// need a moderator's attention (conflicts, parse failures) come last so they
// stay visible.
func printSummary(out io.Writer, summary *lexicon.BuildSummary) {
	if summary == nil {
		return
	}

	report := summary.Report
	fmt.Fprintf(out, "articles: %d, phantoms: %d, citations: %d\n",
		report.Articles, report.Phantoms, summary.Stats.Citations)
	if summary.Result != nil {
		fmt.Fprintf(out, "pages: %d, assets: %d, duration: %s",
			summary.Result.Pages, summary.Result.Assets, summary.Result.Duration)
		if summary.Result.DryRun {
			fmt.Fprint(out, " (dry run)")
		}
		fmt.Fprintln(out)
	}

	for _, bucket := range report.Buckets {
		if bucket.Capacity > 0 && bucket.Members > bucket.Capacity {
			fmt.Fprintf(out, "index %s over capacity: %d/%d\n", bucket.Name, bucket.Members, bucket.Capacity)
		}
	}
	for _, sc := range report.SelfCitations {
		fmt.Fprintf(out, "self-citation: %q by %s\n", sc.Title, sc.Player)
	}
	for _, bad := range report.BadCitations {
		fmt.Fprintf(out, "unusable citation target %q in %s\n", bad.RawTarget, bad.Path)
	}
	for _, pe := range report.ParseErrors {
		fmt.Fprintf(out, "skipped %s: %s\n", pe.Path, pe.Reason)
	}
	for _, conflict := range report.Conflicts {
		fmt.Fprintf(out, "TITLE CONFLICT %q: kept %s, rejected %s (by %s)\n",
			conflict.Title, conflict.WinnerPath, conflict.LoserPath, conflict.Player)
	}
	if n := len(report.Conflicts); n > 0 {
		fmt.Fprintf(out, "%d article(s) were rejected and need a moderator decision\n", n)
	}
}
