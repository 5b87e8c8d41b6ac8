package markdown

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Citation is an inline node carrying a citation to another lexicon entry.
// Target is the raw cited title as written by the author; resolution against
// the corpus happens downstream.
type Citation struct {
	gast.BaseInline
	Label  []byte
	Target string
}

// KindCitation identifies Citation nodes in the AST.
var KindCitation = gast.NewNodeKind("Citation")

// Kind implements ast.Node.
func (n *Citation) Kind() gast.NodeKind { return KindCitation }

// Dump implements ast.Node.
func (n *Citation) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Label":  string(n.Label),
		"Target": n.Target,
	}, nil)
}

// Signature is a block node holding an author sign-off paragraph, rendered
// right-aligned beneath a rule.
type Signature struct {
	gast.BaseBlock
}

// KindSignature identifies Signature nodes in the AST.
var KindSignature = gast.NewNodeKind("Signature")

// Kind implements ast.Node.
func (n *Signature) Kind() gast.NodeKind { return KindSignature }

// Dump implements ast.Node.
func (n *Signature) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// Dialect returns the goldmark extender that teaches the engine the lexicon
// inline and block constructs.
func Dialect() goldmark.Extender {
	return &dialect{}
}

type dialect struct{}

func (d *dialect) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			// Ahead of the native link parser so [[...]] wins over [...]().
			util.Prioritized(&citationParser{}, 100),
			util.Prioritized(&italicParser{}, 150),
		),
		parser.WithASTTransformers(
			util.Prioritized(&signatureTransformer{}, 500),
		),
	)
}

type citationParser struct{}

func (p *citationParser) Trigger() []byte { return []byte{'['} }

// citationPattern recognises [[Target]] and [[alias|Target]]. The character
// class excludes brackets and pipes but not newlines, so a citation may wrap
// onto the next line of its paragraph.
var citationPattern = regexp.MustCompile(`^\[\[([^|\[\]]+(?:\|[^|\[\]]+)?)\]\]`)

// Parse consumes one citation. Any malformed form (unterminated, nested
// brackets, empty alias or target) is left untouched so it degrades to
// literal text.
func (p *citationParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[1] != '[' {
		return nil
	}
	m := block.FindSubMatch(citationPattern)
	if m == nil {
		return nil
	}
	return newCitation(m[1])
}

func newCitation(inner []byte) *Citation {
	label, target := inner, inner
	if idx := bytes.IndexByte(inner, '|'); idx >= 0 {
		label, target = inner[:idx], inner[idx+1:]
	}
	return &Citation{
		Label:  append([]byte(nil), label...),
		Target: string(bytes.TrimSpace(target)),
	}
}

type italicParser struct{}

func (p *italicParser) Trigger() []byte { return []byte{'/'} }

// Parse recognises //text// as emphasis, re-scanning the enclosed span so a
// citation written inside emphasis still joins the graph. An unmatched
// opener falls through to literal text.
func (p *italicParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, seg := block.PeekLine()
	if len(line) < 5 || line[1] != '/' {
		return nil
	}

	inner := line[2:]
	end := bytes.Index(inner, []byte("//"))
	if end <= 0 {
		return nil
	}

	node := gast.NewEmphasis(1)
	appendSpan(node, inner[:end], seg.Start+2)
	block.Advance(2 + end + 2)
	return node
}

// appendSpan splits span into text and citation children. offset is the
// absolute source position of span's first byte.
func appendSpan(parent gast.Node, span []byte, offset int) {
	emitted, pos := 0, 0
	for pos < len(span) {
		idx := bytes.Index(span[pos:], []byte("[["))
		if idx < 0 {
			break
		}
		start := pos + idx
		m := citationPattern.FindSubmatchIndex(span[start:])
		if m == nil {
			pos = start + 1
			continue
		}
		if start > emitted {
			parent.AppendChild(parent, gast.NewTextSegment(text.NewSegment(offset+emitted, offset+start)))
		}
		parent.AppendChild(parent, newCitation(span[start+m[2]:start+m[3]]))
		emitted = start + m[1]
		pos = emitted
	}
	if emitted < len(span) {
		parent.AppendChild(parent, gast.NewTextSegment(text.NewSegment(offset+emitted, offset+len(span))))
	}
}

// signatureTransformer rewrites top-level paragraphs that begin with '~' into
// Signature blocks, dropping the marker character.
type signatureTransformer struct{}

func (t *signatureTransformer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		para, ok := child.(*gast.Paragraph)
		if !ok || para.Lines().Len() == 0 {
			continue
		}
		first := para.Lines().At(0)
		if first.Start >= len(source) || source[first.Start] != '~' {
			continue
		}

		if txt, ok := para.FirstChild().(*gast.Text); ok && txt.Segment.Start == first.Start {
			if txt.Segment.Start+1 <= txt.Segment.Stop {
				txt.Segment = text.NewSegment(txt.Segment.Start+1, txt.Segment.Stop)
			}
		}

		sig := &Signature{}
		for c := para.FirstChild(); c != nil; {
			next := c.NextSibling()
			sig.AppendChild(sig, c)
			c = next
		}
		doc.ReplaceChild(doc, para, sig)
		child = sig
	}
}
