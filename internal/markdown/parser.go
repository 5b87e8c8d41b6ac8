package markdown

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-lexicon/internal/title"
)

// ParseError reports a source file that could not be reduced to a
// title+player+body triple. The file is excluded from the corpus; the build
// carries on with the remaining files.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("markdown: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("markdown: %s: %s", e.Path, e.Reason)
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// CitationRef records one citation occurrence within a document, in body
// order. RawTarget is the cited title exactly as written (whitespace
// trimmed); resolution happens in the corpus resolver.
type CitationRef struct {
	Label     string
	RawTarget string
}

// Document is one successfully parsed article source file. Root is the
// dialect AST over Source; both are immutable after parsing.
type Document struct {
	Path      string
	Title     title.Title
	Player    string
	Turn      int
	Source    []byte
	Root      gast.Node
	Citations []CitationRef
}

// engine is the shared parse-side goldmark instance. Goldmark parsers are
// stateless across calls, so one engine serves concurrent parses.
var engine = goldmark.New(goldmark.WithExtensions(Dialect()))

// Parse turns one raw article file into a Document. The same input always
// yields the same tree; malformed inline markup degrades to literal text
// rather than failing the document.
func Parse(path string, source []byte) (*Document, *ParseError) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid metadata header", Err: err}
	}
	if meta.Title == "" {
		return nil, &ParseError{Path: path, Reason: "missing title header"}
	}
	if meta.Player == "" {
		return nil, &ParseError{Path: path, Reason: "missing player header"}
	}
	if meta.Turn <= 0 {
		return nil, &ParseError{Path: path, Reason: "missing or invalid turn header"}
	}

	normalized, err := title.Normalize(meta.Title)
	if err != nil {
		if errors.Is(err, title.ErrEmpty) {
			return nil, &ParseError{Path: path, Reason: "title normalizes to empty string", Err: err}
		}
		return nil, &ParseError{Path: path, Reason: "invalid title", Err: err}
	}

	root := engine.Parser().Parse(text.NewReader(body))

	return &Document{
		Path:      path,
		Title:     normalized,
		Player:    meta.Player,
		Turn:      meta.Turn,
		Source:    body,
		Root:      root,
		Citations: collectCitations(root, body),
	}, nil
}

func collectCitations(root gast.Node, source []byte) []CitationRef {
	var refs []CitationRef
	_ = gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if cite, ok := n.(*Citation); ok {
			refs = append(refs, CitationRef{
				Label:     string(cite.Label),
				RawTarget: cite.Target,
			})
		}
		return gast.WalkContinue, nil
	})
	return refs
}

// ParseAll parses every supplied source file, fanning out across workers.
// Results come back sorted by path so downstream processing sees the same
// stable order regardless of scheduling. Parse failures are collected, not
// fatal.
func ParseAll(ctx context.Context, sources []*FileSource, workers int) ([]*Document, []*ParseError) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(sources) {
		workers = len(sources)
	}
	if len(sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		docs    []*Document
		errs    []*ParseError
		wg      sync.WaitGroup
		jobs    = make(chan *FileSource)
		collect = func(doc *Document, perr *ParseError) {
			mu.Lock()
			defer mu.Unlock()
			if doc != nil {
				docs = append(docs, doc)
			}
			if perr != nil {
				errs = append(errs, perr)
			}
		}
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				select {
				case <-ctx.Done():
					collect(nil, &ParseError{Path: src.Path, Reason: "parse cancelled", Err: ctx.Err()})
				default:
					collect(Parse(src.Path, src.Data))
				}
			}
		}()
	}

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)
	wg.Wait()

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	sort.Slice(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
	return docs, errs
}
