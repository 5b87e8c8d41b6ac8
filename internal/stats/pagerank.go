package stats

import (
	"math"

	"github.com/goliatone/go-lexicon/internal/corpus"
)

const (
	// DefaultDampingFactor is the standard PageRank damping factor.
	DefaultDampingFactor = 0.85
	// DefaultMaxIterations bounds the power iteration.
	DefaultMaxIterations = 100
	// DefaultConvergence is the L1 delta below which iteration stops.
	DefaultConvergence = 1e-6
)

// PageRankOptions tunes the power iteration. Zero values fall back to the
// defaults above.
type PageRankOptions struct {
	DampingFactor float64
	MaxIterations int
	Convergence   float64
}

func (o PageRankOptions) withDefaults() PageRankOptions {
	if o.DampingFactor <= 0 || o.DampingFactor >= 1 {
		o.DampingFactor = DefaultDampingFactor
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Convergence <= 0 {
		o.Convergence = DefaultConvergence
	}
	return o
}

// PageRank runs power iteration over the citation graph and returns a score
// per canonical title. Phantoms participate: they receive rank like any other
// entry and, having no outgoing citations, act as sinks whose mass is
// redistributed uniformly each step. Scores sum to 1.
func PageRank(graph *corpus.Graph, opts PageRankOptions) map[string]float64 {
	opts = opts.withDefaults()

	n := len(graph.Ordered)
	if n == 0 {
		return map[string]float64{}
	}

	ranks := make(map[string]float64, n)
	for _, node := range graph.Ordered {
		ranks[node.Title.Canonical] = 1.0 / float64(n)
	}

	base := (1.0 - opts.DampingFactor) / float64(n)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		next := make(map[string]float64, n)

		sinkMass := 0.0
		for _, node := range graph.Ordered {
			if node.OutDegree() == 0 {
				sinkMass += ranks[node.Title.Canonical]
			}
		}

		for _, node := range graph.Ordered {
			key := node.Title.Canonical
			next[key] = base + opts.DampingFactor*sinkMass/float64(n)
		}
		for _, node := range graph.Ordered {
			out := node.OutDegree()
			if out == 0 {
				continue
			}
			share := opts.DampingFactor * ranks[node.Title.Canonical] / float64(out)
			for _, edge := range node.Out {
				next[edge.To.Title.Canonical] += share
			}
		}

		delta := 0.0
		for key, value := range next {
			delta += math.Abs(value - ranks[key])
		}
		ranks = next
		if delta < opts.Convergence {
			break
		}
	}

	return ranks
}
