// Package corpus resolves parsed articles into the citation graph for one
// build: written entries, phantom entries, author-attributed citation edges,
// and the alphabetical index partition.
package corpus

import (
	"github.com/goliatone/go-lexicon/internal/markdown"
	"github.com/goliatone/go-lexicon/internal/title"
)

// Node is one entry in the lexicon, written or phantom. Exactly one Node
// exists per canonical title within a build. Article is nil while the entry
// is a phantom; phantom status is re-evaluated every build.
type Node struct {
	Title   title.Title
	Article *Article
	Bucket  string

	// In and Out hold citation edges in resolution order. Out is always
	// empty for phantoms.
	In  []*Edge
	Out []*Edge
}

// Written reports whether a matching article exists in the current build.
func (n *Node) Written() bool { return n.Article != nil }

// InDegree counts citations received, repeats included.
func (n *Node) InDegree() int { return len(n.In) }

// OutDegree counts citations made, repeats included.
func (n *Node) OutDegree() int { return len(n.Out) }

// Article is the written payload of a Node.
type Article struct {
	Doc        *markdown.Document
	Player     string
	Turn       int
	SelfCiting bool
}

// Edge is one citation occurrence, directed from the citing entry to the
// cited entry. Edges are not deduplicated: repeated citations to the same
// target remain distinct for statistics purposes.
type Edge struct {
	From  *Node
	To    *Node
	Label string
	// Self marks a citation whose target canonical title equals the citing
	// article's own. Informational: the game permits some characters to
	// self-cite, so this never blocks a build.
	Self bool
}

// Bucket is one alphabetical index group. Members are ordered by sort key,
// ties broken by raw title, so rendering is deterministic across builds.
type Bucket struct {
	Name     string
	Letters  string
	Capacity int
	CatchAll bool
	Members  []*Node
}

// Graph is the fully resolved citation graph for one build. It is
// constructed by Resolve and treated as immutable afterwards; the statistics
// engine and the renderer hold read-only views.
type Graph struct {
	// Nodes indexes every entry by canonical title.
	Nodes map[string]*Node
	// Ordered lists every node by (sort key, raw title).
	Ordered []*Node
	// ReadOrder lists every node by (turn, sort key); phantoms last. Used
	// for prev/next navigation between article pages.
	ReadOrder []*Node
	// Buckets lists the index partition in configured order, catch-all
	// last. Every configured bucket is present even when empty.
	Buckets []*Bucket
	// Edges lists every citation occurrence in resolution order.
	Edges []*Edge
}

// ArticleCount counts written entries.
func (g *Graph) ArticleCount() int {
	count := 0
	for _, n := range g.Ordered {
		if n.Written() {
			count++
		}
	}
	return count
}

// PhantomCount counts entries that are cited but unwritten this build.
func (g *Graph) PhantomCount() int {
	return len(g.Ordered) - g.ArticleCount()
}

// BucketSpec names one configured index group and the set of initial letters
// it collects. Capacity is informational; the resolver never enforces it.
type BucketSpec struct {
	Name     string
	Letters  string
	Capacity int
}

// IndexConfig is the alphabet partition the resolver buckets nodes with.
type IndexConfig struct {
	Buckets []BucketSpec
	// CatchAllName labels the bucket collecting titles whose first letter
	// belongs to no configured group (digits, symbols). Defaults to "&c".
	CatchAllName string
}

// DefaultIndexConfig mirrors the classic lexicon layout: ABC / DEF / ... plus
// a catch-all for everything else.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		Buckets: []BucketSpec{
			{Name: "ABC", Letters: "ABC"},
			{Name: "DEF", Letters: "DEF"},
			{Name: "GHI", Letters: "GHI"},
			{Name: "JKL", Letters: "JKL"},
			{Name: "MNO", Letters: "MNO"},
			{Name: "PQRS", Letters: "PQRS"},
			{Name: "TUV", Letters: "TUV"},
			{Name: "WXYZ", Letters: "WXYZ"},
		},
		CatchAllName: "&c",
	}
}
