package generator

import (
	"github.com/goliatone/go-lexicon/internal/corpus"
	"github.com/goliatone/go-lexicon/internal/markdown"
	"github.com/goliatone/go-lexicon/internal/title"
)

// citationResolver maps citation targets onto page URLs for the dialect
// renderer. Written entries link to their article page; phantoms link to
// their index bucket page anchored at the entry slug.
type citationResolver struct {
	graph *corpus.Graph
	links *Links
}

func newCitationResolver(graph *corpus.Graph, links *Links) *citationResolver {
	return &citationResolver{graph: graph, links: links}
}

func (r *citationResolver) ResolveCitation(rawTarget string) markdown.CitationLink {
	target, err := title.Normalize(rawTarget)
	if err != nil {
		return markdown.CitationLink{}
	}
	node := r.graph.Nodes[target.Canonical]
	if node == nil {
		return markdown.CitationLink{}
	}

	if node.Written() {
		href, err := r.links.Article(node.Title.Canonical)
		if err != nil {
			return markdown.CitationLink{}
		}
		return markdown.CitationLink{Href: href}
	}

	href, err := r.links.Phantom(node.Bucket, node.Title.Canonical)
	if err != nil {
		return markdown.CitationLink{}
	}
	return markdown.CitationLink{Href: href, Phantom: true}
}
