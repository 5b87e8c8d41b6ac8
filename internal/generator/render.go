package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/goliatone/go-lexicon/internal/corpus"
	"github.com/goliatone/go-lexicon/internal/markdown"
	"github.com/goliatone/go-lexicon/internal/stats"
)

// pageSpec is one page of the render plan: which template, which URL, which
// output file, and the data handed to the template.
type pageSpec struct {
	Template string
	Route    string
	Path     string
	Data     any
}

// buildPlan assembles every page of the site from the resolved graph. The
// plan is ordered by output path, so rendering and writing are deterministic
// regardless of worker scheduling.
func (s *service) buildPlan(graph *corpus.Graph, st *stats.Stats, report *corpus.Report) ([]pageSpec, error) {
	links, err := NewLinks(s.cfg.BaseURL, graph)
	if err != nil {
		return nil, err
	}
	site, err := s.siteMetadata(links)
	if err != nil {
		return nil, err
	}

	bodyRenderer := markdown.NewRenderer(newCitationResolver(graph, links))

	var plan []pageSpec

	written := writtenInReadOrder(graph)
	for i, node := range written {
		route, err := links.Article(node.Title.Canonical)
		if err != nil {
			return nil, err
		}

		var body bytes.Buffer
		doc := node.Article.Doc
		if err := bodyRenderer.Render(&body, doc.Source, doc.Root); err != nil {
			return nil, fmt.Errorf("generator: render body of %q: %w", node.Title.Canonical, err)
		}

		data := ArticleContext{
			Site:    site,
			Title:   node.Title.Canonical,
			Player:  node.Article.Player,
			Turn:    node.Article.Turn,
			Body:    template.HTML(body.String()),
			Cites:   relatedEntries(node.Out, func(e *corpus.Edge) *corpus.Node { return e.To }, links),
			CitedBy: relatedEntries(node.In, func(e *corpus.Edge) *corpus.Node { return e.From }, links),
		}
		if i > 0 {
			prev, err := nodeLink(written[i-1], links)
			if err != nil {
				return nil, err
			}
			data.Prev = &prev
		}
		if i < len(written)-1 {
			next, err := nodeLink(written[i+1], links)
			if err != nil {
				return nil, err
			}
			data.Next = &next
		}

		plan = append(plan, pageSpec{
			Template: "article",
			Route:    route,
			Path:     links.OutputPath(route),
			Data:     data,
		})
	}

	for _, bucket := range graph.Buckets {
		route, err := links.Bucket(bucket.Name)
		if err != nil {
			return nil, err
		}
		data := IndexContext{Site: site, Bucket: bucket.Name}
		for _, node := range bucket.Members {
			entry := IndexEntry{
				Title:   node.Title.Canonical,
				Slug:    links.EntrySlug(node.Title.Canonical),
				Phantom: !node.Written(),
			}
			if node.Written() {
				url, err := links.Article(node.Title.Canonical)
				if err != nil {
					return nil, err
				}
				entry.URL = url
				entry.Player = node.Article.Player
				entry.Turn = node.Article.Turn
			}
			data.Entries = append(data.Entries, entry)
		}
		plan = append(plan, pageSpec{
			Template: "index",
			Route:    route,
			Path:     links.OutputPath(route),
			Data:     data,
		})
	}

	contents, err := s.contentsPage(graph, links, site)
	if err != nil {
		return nil, err
	}
	plan = append(plan, contents)

	statsRoute, err := links.Statistics()
	if err != nil {
		return nil, err
	}
	statsData := StatisticsContext{Site: site, Stats: st}
	if report != nil {
		// An article citing itself twice is still one row.
		seen := map[string]bool{}
		for _, sc := range report.SelfCitations {
			if seen[sc.Title] {
				continue
			}
			seen[sc.Title] = true
			url, err := links.Article(sc.Title)
			if err != nil {
				return nil, err
			}
			statsData.SelfCitations = append(statsData.SelfCitations, SelfCitationItem{
				Title:  sc.Title,
				Player: sc.Player,
				URL:    url,
			})
		}
	}
	plan = append(plan, pageSpec{
		Template: "statistics",
		Route:    statsRoute,
		Path:     links.OutputPath(statsRoute),
		Data:     statsData,
	})

	sessionRoute, err := links.Session()
	if err != nil {
		return nil, err
	}
	plan = append(plan, pageSpec{
		Template: "session",
		Route:    sessionRoute,
		Path:     links.OutputPath(sessionRoute),
		Data:     SessionContext{Site: site, Body: template.HTML(s.cfg.SessionHTML)},
	})

	contentsRoute, err := links.Contents()
	if err != nil {
		return nil, err
	}
	plan = append(plan, pageSpec{
		Template: "redirect",
		Route:    "/",
		Path:     "index.html",
		Data:     RedirectContext{Target: contentsRoute},
	})

	sort.Slice(plan, func(i, j int) bool { return plan[i].Path < plan[j].Path })
	return plan, nil
}

func (s *service) siteMetadata(links *Links) (SiteMetadata, error) {
	contents, err := links.Contents()
	if err != nil {
		return SiteMetadata{}, err
	}
	statistics, err := links.Statistics()
	if err != nil {
		return SiteMetadata{}, err
	}
	session, err := links.Session()
	if err != nil {
		return SiteMetadata{}, err
	}
	home := "/"
	if links.base != "" {
		home = links.base + "/"
	}
	return SiteMetadata{
		Title: s.cfg.SiteTitle,
		Nav: NavLinks{
			Home:       home,
			Contents:   contents,
			Statistics: statistics,
			Session:    session,
		},
	}, nil
}

func (s *service) contentsPage(graph *corpus.Graph, links *Links, site SiteMetadata) (pageSpec, error) {
	route, err := links.Contents()
	if err != nil {
		return pageSpec{}, err
	}

	data := ContentsContext{
		Site:     site,
		Articles: graph.ArticleCount(),
		Phantoms: graph.PhantomCount(),
	}

	for _, bucket := range graph.Buckets {
		url, err := links.Bucket(bucket.Name)
		if err != nil {
			return pageSpec{}, err
		}
		data.Buckets = append(data.Buckets, ContentsBucket{
			Name:     bucket.Name,
			URL:      url,
			Members:  len(bucket.Members),
			Capacity: bucket.Capacity,
		})
	}

	for _, node := range graph.Ordered {
		item, err := nodeLink(node, links)
		if err != nil {
			return pageSpec{}, err
		}
		data.ByTitle = append(data.ByTitle, item)
	}
	for _, node := range writtenInReadOrder(graph) {
		item, err := nodeLink(node, links)
		if err != nil {
			return pageSpec{}, err
		}
		data.ByTurn = append(data.ByTurn, item)
	}

	return pageSpec{
		Template: "contents",
		Route:    route,
		Path:     links.OutputPath(route),
		Data:     data,
	}, nil
}

func writtenInReadOrder(graph *corpus.Graph) []*corpus.Node {
	var out []*corpus.Node
	for _, node := range graph.ReadOrder {
		if node.Written() {
			out = append(out, node)
		}
	}
	return out
}
