package corpus

import (
	"sort"
	"strings"

	"github.com/goliatone/go-lexicon/internal/logging"
	"github.com/goliatone/go-lexicon/internal/markdown"
	"github.com/goliatone/go-lexicon/internal/title"
	"github.com/goliatone/go-lexicon/pkg/interfaces"
)

// Resolver builds the citation graph for one build. It must run as a single
// sequential pass: node creation and title claiming depend on the stable
// order of the input documents.
type Resolver struct {
	index  IndexConfig
	logger interfaces.Logger
}

// NewResolver constructs a resolver over the given index partition.
func NewResolver(index IndexConfig, logger interfaces.Logger) *Resolver {
	if len(index.Buckets) == 0 {
		index = DefaultIndexConfig()
	}
	if strings.TrimSpace(index.CatchAllName) == "" {
		index.CatchAllName = "&c"
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Resolver{index: index, logger: logger}
}

// Resolve builds the graph from parsed documents. Documents must already be
// in stable order (sorted by path); the first document claiming a canonical
// title wins, later claims are reported as conflicts and excluded. Parse
// failures from the parsing stage are folded into the report so callers get
// one consolidated summary.
func (r *Resolver) Resolve(docs []*markdown.Document, parseErrs []*markdown.ParseError) (*Graph, *Report) {
	graph := &Graph{Nodes: map[string]*Node{}}
	report := &Report{}

	for _, perr := range parseErrs {
		report.ParseErrors = append(report.ParseErrors, ParseFailure{
			Path:   perr.Path,
			Reason: perr.Reason,
		})
	}

	// First pass: register written entries so later citation targets find
	// them regardless of citation order within the file set.
	accepted := make([]*markdown.Document, 0, len(docs))
	for _, doc := range docs {
		key := doc.Title.Canonical
		existing := graph.Nodes[key]

		switch {
		case existing == nil:
			graph.Nodes[key] = &Node{
				Title:   doc.Title,
				Article: &Article{Doc: doc, Player: doc.Player, Turn: doc.Turn},
			}
			accepted = append(accepted, doc)
		case !existing.Written():
			// A phantom becomes filled the moment a matching article
			// exists in the current file set.
			existing.Article = &Article{Doc: doc, Player: doc.Player, Turn: doc.Turn}
			accepted = append(accepted, doc)
		default:
			report.Conflicts = append(report.Conflicts, TitleConflict{
				Title:      key,
				WinnerPath: existing.Article.Doc.Path,
				LoserPath:  doc.Path,
				Player:     doc.Player,
			})
			r.logger.Warn("title conflict, keeping first claim",
				"title", key,
				"winner", existing.Article.Doc.Path,
				"loser", doc.Path,
			)
		}
	}

	// Second pass: resolve citation targets, creating phantoms lazily.
	for _, doc := range accepted {
		from := graph.Nodes[doc.Title.Canonical]
		for _, ref := range doc.Citations {
			target, err := title.Normalize(ref.RawTarget)
			if err != nil {
				report.BadCitations = append(report.BadCitations, BadCitation{
					Path:      doc.Path,
					RawTarget: ref.RawTarget,
				})
				continue
			}

			to := graph.Nodes[target.Canonical]
			if to == nil {
				to = &Node{Title: target}
				graph.Nodes[target.Canonical] = to
			}

			edge := &Edge{
				From:  from,
				To:    to,
				Label: ref.Label,
				Self:  from.Title.Canonical == to.Title.Canonical,
			}
			from.Out = append(from.Out, edge)
			to.In = append(to.In, edge)
			graph.Edges = append(graph.Edges, edge)

			if edge.Self {
				from.Article.SelfCiting = true
				report.SelfCitations = append(report.SelfCitations, SelfCitation{
					Title:  from.Title.Canonical,
					Player: from.Article.Player,
					Label:  ref.Label,
				})
			}
		}
	}

	r.orderNodes(graph)
	r.assignBuckets(graph)

	report.Articles = graph.ArticleCount()
	report.Phantoms = graph.PhantomCount()
	for _, bucket := range graph.Buckets {
		report.Buckets = append(report.Buckets, BucketOccupancy{
			Name:     bucket.Name,
			Members:  len(bucket.Members),
			Capacity: bucket.Capacity,
		})
	}

	r.logger.Info("corpus resolved",
		"articles", report.Articles,
		"phantoms", report.Phantoms,
		"edges", len(graph.Edges),
		"conflicts", len(report.Conflicts),
	)

	return graph, report
}

func (r *Resolver) orderNodes(graph *Graph) {
	graph.Ordered = make([]*Node, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		graph.Ordered = append(graph.Ordered, node)
	}
	sort.Slice(graph.Ordered, func(i, j int) bool {
		a, b := graph.Ordered[i], graph.Ordered[j]
		if a.Title.SortKey != b.Title.SortKey {
			return a.Title.SortKey < b.Title.SortKey
		}
		return a.Title.Raw < b.Title.Raw
	})

	graph.ReadOrder = append([]*Node(nil), graph.Ordered...)
	sort.SliceStable(graph.ReadOrder, func(i, j int) bool {
		return readTurn(graph.ReadOrder[i]) < readTurn(graph.ReadOrder[j])
	})
}

// readTurn orders written entries by turn; phantoms sort after everything.
func readTurn(n *Node) int {
	if n.Written() {
		return n.Article.Turn
	}
	return int(^uint(0) >> 1)
}

func (r *Resolver) assignBuckets(graph *Graph) {
	byName := map[string]*Bucket{}
	for _, spec := range r.index.Buckets {
		bucket := &Bucket{
			Name:     spec.Name,
			Letters:  strings.ToUpper(spec.Letters),
			Capacity: spec.Capacity,
		}
		graph.Buckets = append(graph.Buckets, bucket)
		byName[bucket.Name] = bucket
	}
	catchAll := &Bucket{Name: r.index.CatchAllName, CatchAll: true}
	graph.Buckets = append(graph.Buckets, catchAll)

	// Ordered is already sorted, so bucket membership inherits the stable
	// title order.
	for _, node := range graph.Ordered {
		bucket := catchAll
		initial := title.IndexRune(node.Title.SortKey)
		for _, candidate := range graph.Buckets {
			if candidate.CatchAll {
				continue
			}
			if strings.ContainsRune(candidate.Letters, initial) {
				bucket = candidate
				break
			}
		}
		bucket.Members = append(bucket.Members, node)
		node.Bucket = bucket.Name
	}
}
