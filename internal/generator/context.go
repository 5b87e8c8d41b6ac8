package generator

import (
	"html/template"
	"sort"

	"github.com/goliatone/go-lexicon/internal/corpus"
	"github.com/goliatone/go-lexicon/internal/stats"
)

// SiteMetadata is shared by every page template.
type SiteMetadata struct {
	Title string
	Nav   NavLinks
}

// NavLinks carries the fixed site navigation targets.
type NavLinks struct {
	Home       string
	Contents   string
	Statistics string
	Session    string
}

// LinkItem is one entry reference inside a page: citation lists, prev/next
// navigation, index rows.
type LinkItem struct {
	Title   string
	URL     string
	Phantom bool
}

// ArticleContext renders one written entry's page.
type ArticleContext struct {
	Site   SiteMetadata
	Title  string
	Player string
	Turn   int
	Body   template.HTML

	// Cites and CitedBy list distinct related entries in title sort order.
	Cites   []LinkItem
	CitedBy []LinkItem

	Prev *LinkItem
	Next *LinkItem
}

// IndexContext renders one index bucket page. Phantom entries have no page
// of their own, so they render in place with an anchor matching their slug.
type IndexContext struct {
	Site    SiteMetadata
	Bucket  string
	Entries []IndexEntry
}

// IndexEntry is one row of an index bucket page.
type IndexEntry struct {
	Title   string
	Slug    string
	URL     string
	Player  string
	Turn    int
	Phantom bool
}

// ContentsContext renders the table of contents with both orderings the
// original offers: alphabetical and by turn.
type ContentsContext struct {
	Site     SiteMetadata
	Articles int
	Phantoms int

	Buckets []ContentsBucket
	ByTitle []LinkItem
	ByTurn  []LinkItem
}

// ContentsBucket summarises one index bucket on the contents page.
type ContentsBucket struct {
	Name     string
	URL      string
	Members  int
	Capacity int
}

// StatisticsContext renders the statistics page.
type StatisticsContext struct {
	Site  SiteMetadata
	Stats *stats.Stats

	// SelfCitations attributes each flagged self-citation to its author so
	// the page shows who cited their own entry.
	SelfCitations []SelfCitationItem
}

// SelfCitationItem is one self-citation row on the statistics page.
type SelfCitationItem struct {
	Title  string
	Player string
	URL    string
}

// SessionContext renders the session page from configured prompt text.
type SessionContext struct {
	Site SiteMetadata
	Body template.HTML
}

// RedirectContext renders the root page, a plain meta refresh onto the
// contents page.
type RedirectContext struct {
	Target string
}

// relatedEntries collapses a node's edges on one side into distinct link
// items sorted by title.
func relatedEntries(edges []*corpus.Edge, pick func(*corpus.Edge) *corpus.Node, links *Links) []LinkItem {
	seen := map[string]*corpus.Node{}
	for _, edge := range edges {
		node := pick(edge)
		seen[node.Title.Canonical] = node
	}

	nodes := make([]*corpus.Node, 0, len(seen))
	for _, node := range seen {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Title.SortKey != b.Title.SortKey {
			return a.Title.SortKey < b.Title.SortKey
		}
		return a.Title.Raw < b.Title.Raw
	})

	items := make([]LinkItem, 0, len(nodes))
	for _, node := range nodes {
		item, err := nodeLink(node, links)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

func nodeLink(node *corpus.Node, links *Links) (LinkItem, error) {
	if node.Written() {
		url, err := links.Article(node.Title.Canonical)
		if err != nil {
			return LinkItem{}, err
		}
		return LinkItem{Title: node.Title.Canonical, URL: url}, nil
	}
	url, err := links.Phantom(node.Bucket, node.Title.Canonical)
	if err != nil {
		return LinkItem{}, err
	}
	return LinkItem{Title: node.Title.Canonical, URL: url, Phantom: true}, nil
}
