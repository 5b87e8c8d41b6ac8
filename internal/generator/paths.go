package generator

import (
	"fmt"
	"path"
	"strings"

	slug "github.com/goliatone/go-slug"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-lexicon/internal/corpus"
)

const siteGroup = "site"

const (
	routeArticle    = "article"
	routeIndex      = "index"
	routeContents   = "contents"
	routeStatistics = "statistics"
	routeSession    = "session"
)

// Links builds every inter-page URL through one shared route table, so page
// templates and the citation renderer agree on the site layout. Slugs are
// assigned once per build: when two distinct canonical titles normalise to
// the same slug, later ones get a numeric suffix in stable title order.
type Links struct {
	manager *urlkit.RouteManager
	base    string

	articleSlugs map[string]string
	bucketSlugs  map[string]string
}

// NewLinks constructs the link builder for one resolved graph.
func NewLinks(baseURL string, graph *corpus.Graph) (*Links, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    siteGroup,
				BaseURL: base,
				Paths: map[string]string{
					routeArticle:    "/article/:slug",
					routeIndex:      "/index/:bucket",
					routeContents:   "/contents",
					routeStatistics: "/statistics",
					routeSession:    "/session",
				},
			},
		},
	})

	l := &Links{
		manager:      manager,
		base:         base,
		articleSlugs: map[string]string{},
		bucketSlugs:  map[string]string{},
	}
	if graph != nil {
		l.assignSlugs(graph)
	}
	return l, nil
}

// assignSlugs walks nodes in stable order so suffix assignment never depends
// on map iteration.
func (l *Links) assignSlugs(graph *corpus.Graph) {
	taken := map[string]int{}
	for _, node := range graph.Ordered {
		candidate := node.Title.Slug
		taken[candidate]++
		if n := taken[candidate]; n > 1 {
			candidate = fmt.Sprintf("%s-%d", candidate, n)
		}
		l.articleSlugs[node.Title.Canonical] = candidate
	}
	for _, bucket := range graph.Buckets {
		l.bucketSlugs[bucket.Name] = slugify(bucket.Name)
	}
}

// EntrySlug returns the page slug assigned to a canonical title.
func (l *Links) EntrySlug(canonical string) string {
	return l.articleSlugs[canonical]
}

// BucketSlug returns the page slug for an index bucket name.
func (l *Links) BucketSlug(name string) string {
	if s, ok := l.bucketSlugs[name]; ok {
		return s
	}
	return slugify(name)
}

// Article returns the URL of a written entry's page.
func (l *Links) Article(canonical string) (string, error) {
	return l.build(routeArticle, map[string]any{"slug": l.EntrySlug(canonical)})
}

// Bucket returns the URL of an index bucket page.
func (l *Links) Bucket(name string) (string, error) {
	return l.build(routeIndex, map[string]any{"bucket": l.BucketSlug(name)})
}

// Phantom returns the URL of a phantom entry: its bucket page anchored at
// the entry's slug.
func (l *Links) Phantom(bucketName, canonical string) (string, error) {
	url, err := l.Bucket(bucketName)
	if err != nil {
		return "", err
	}
	return url + "#" + l.EntrySlug(canonical), nil
}

// Contents returns the URL of the table of contents page.
func (l *Links) Contents() (string, error) { return l.build(routeContents, nil) }

// Statistics returns the URL of the statistics page.
func (l *Links) Statistics() (string, error) { return l.build(routeStatistics, nil) }

// Session returns the URL of the session page.
func (l *Links) Session() (string, error) { return l.build(routeSession, nil) }

func (l *Links) build(route string, params map[string]any) (string, error) {
	group, err := l.siteRoutes()
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	return builder.Build()
}

func (l *Links) siteRoutes() (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route group %q not found", siteGroup)
		}
	}()
	group = l.manager.Group(siteGroup)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

// OutputPath maps a page URL to its file path under the output directory.
// Every page writes as <route>/index.html so links need no extension.
func (l *Links) OutputPath(url string) string {
	rel := url
	if l.base != "" {
		rel = strings.TrimPrefix(rel, l.base)
	}
	if i := strings.IndexAny(rel, "#?"); i >= 0 {
		rel = rel[:i]
	}
	clean := strings.Trim(strings.TrimSpace(rel), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func slugify(value string) string {
	s, err := slug.Normalize(value)
	if err != nil || strings.TrimSpace(s) == "" {
		var b strings.Builder
		for _, r := range strings.ToLower(value) {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				b.WriteRune(r)
			}
		}
		if b.Len() == 0 {
			return "misc"
		}
		return b.String()
	}
	return s
}
