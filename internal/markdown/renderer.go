package markdown

import (
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// CitationLink describes where a resolved citation points. An empty Href
// renders the citation label as plain emphasised text, which keeps rendering
// total even when no resolver is wired (previews, tests).
type CitationLink struct {
	Href    string
	Phantom bool
}

// LinkResolver maps a raw citation target to its output location. The
// generator supplies an implementation backed by the resolved corpus graph.
type LinkResolver interface {
	ResolveCitation(rawTarget string) CitationLink
}

// NewRenderer builds an HTML renderer for dialect ASTs. Citation links are
// resolved through the supplied resolver at render time, so the same parsed
// document can be rendered against different corpus states.
func NewRenderer(resolver LinkResolver) renderer.Renderer {
	return renderer.NewRenderer(
		renderer.WithNodeRenderers(
			util.Prioritized(html.NewRenderer(), 1000),
			util.Prioritized(&dialectRenderer{resolver: resolver}, 500),
		),
	)
}

type dialectRenderer struct {
	resolver LinkResolver
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *dialectRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCitation, r.renderCitation)
	reg.Register(KindSignature, r.renderSignature)
}

func (r *dialectRenderer) renderCitation(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*Citation)

	var link CitationLink
	if r.resolver != nil {
		link = r.resolver.ResolveCitation(n.Target)
	}

	if link.Href == "" {
		_, _ = w.WriteString("<u>")
		_, _ = w.Write(util.EscapeHTML(n.Label))
		_, _ = w.WriteString("</u>")
		return gast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML([]byte(link.Href)))
	if link.Phantom {
		_, _ = w.WriteString(`" class="phantom`)
	}
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString("</a>")
	return gast.WalkSkipChildren, nil
}

func (r *dialectRenderer) renderSignature(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<hr><span class=\"signature\"><p>")
	} else {
		_, _ = w.WriteString("</p></span>\n")
	}
	return gast.WalkContinue, nil
}
