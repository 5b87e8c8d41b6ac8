// Package stats computes citation statistics over a resolved corpus graph:
// degree totals, grouped leaderboards, and optional PageRank.
package stats

import (
	"sort"

	"github.com/goliatone/go-lexicon/internal/corpus"
)

// DefaultTopN is how many leaderboard entries Compute keeps per ranking.
const DefaultTopN = 5

// Config controls which statistics get computed. PageRank stays off unless
// explicitly enabled; everything else always runs.
type Config struct {
	EnablePageRank bool
	PageRank       PageRankOptions
	// TopN caps each leaderboard. Tie groups are kept whole, so the emitted
	// list may exceed TopN when the cut lands inside a group.
	TopN int
}

// Stats is the computed summary for one build. Compute never fails: an empty
// graph yields zeroed totals and empty leaderboards.
type Stats struct {
	Articles  int
	Phantoms  int
	Citations int

	Buckets []BucketUsage

	// MostCited ranks written entries by in-degree, MostCitedPhantoms ranks
	// unwritten ones, MostCiting ranks articles by out-degree.
	MostCited         []RankGroup
	MostCitedPhantoms []RankGroup
	MostCiting        []RankGroup

	// PageRank is nil unless Config.EnablePageRank is set.
	PageRank []RankGroup

	// Undercited lists written entries cited by fewer than two distinct
	// articles, the prime targets for the next turn's writers.
	Undercited []UndercitedEntry

	Players []PlayerStats
}

// UndercitedEntry is one row of the undercited list. CitedBy counts distinct
// citing articles, not citation occurrences.
type UndercitedEntry struct {
	Title   string
	CitedBy int
}

// RankGroup is one rung of a leaderboard: every title sharing a score, in
// alphabetical order. Rank uses competition numbering, so two entries tied
// at rank 1 push the next group to rank 3.
type RankGroup struct {
	Rank   int
	Score  float64
	Titles []string
}

// BucketUsage pairs an index bucket with its member count and configured
// capacity. Capacity zero means uncapped.
type BucketUsage struct {
	Name     string
	Members  int
	Capacity int
}

// PlayerStats aggregates per-author activity across the corpus.
type PlayerStats struct {
	Player            string
	Articles          int
	CitationsMade     int
	CitationsReceived int
}

// Compute derives statistics from the resolved graph. The graph is read only;
// iteration follows the resolver's stable orderings so repeated runs over the
// same corpus produce identical output.
func Compute(graph *corpus.Graph, cfg Config) *Stats {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}

	s := &Stats{
		Articles:  graph.ArticleCount(),
		Phantoms:  graph.PhantomCount(),
		Citations: len(graph.Edges),
	}

	for _, bucket := range graph.Buckets {
		s.Buckets = append(s.Buckets, BucketUsage{
			Name:     bucket.Name,
			Members:  len(bucket.Members),
			Capacity: bucket.Capacity,
		})
	}

	var cited, phantoms, citing []scored
	for _, node := range graph.Ordered {
		switch {
		case node.Written():
			cited = append(cited, scored{node.Title.Canonical, float64(node.InDegree())})
			citing = append(citing, scored{node.Title.Canonical, float64(node.OutDegree())})
		default:
			phantoms = append(phantoms, scored{node.Title.Canonical, float64(node.InDegree())})
		}
	}
	s.MostCited = rank(cited, cfg.TopN)
	s.MostCitedPhantoms = rank(phantoms, cfg.TopN)
	s.MostCiting = rank(citing, cfg.TopN)

	if cfg.EnablePageRank {
		scores := PageRank(graph, cfg.PageRank)
		ranked := make([]scored, 0, len(scores))
		for _, node := range graph.Ordered {
			ranked = append(ranked, scored{node.Title.Canonical, scores[node.Title.Canonical]})
		}
		s.PageRank = rank(ranked, cfg.TopN)
	}

	s.Undercited = undercited(graph)
	s.Players = playerStats(graph)

	return s
}

// undercited collects written entries with fewer than two distinct citers,
// most-cited first and alphabetical within a count.
func undercited(graph *corpus.Graph) []UndercitedEntry {
	var out []UndercitedEntry
	for _, node := range graph.Ordered {
		if !node.Written() {
			continue
		}
		citers := map[string]struct{}{}
		for _, edge := range node.In {
			citers[edge.From.Title.Canonical] = struct{}{}
		}
		if len(citers) < 2 {
			out = append(out, UndercitedEntry{Title: node.Title.Canonical, CitedBy: len(citers)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CitedBy > out[j].CitedBy })
	return out
}

type scored struct {
	title string
	score float64
}

// rank groups equal scores into descending rungs with competition numbering.
// Input order feeds the alphabetical tie order: callers pass titles already
// sorted by the resolver's stable ordering.
func rank(entries []scored, topN int) []RankGroup {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	var groups []RankGroup
	emitted := 0
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].score == entries[i].score {
			j++
		}
		if emitted >= topN {
			break
		}
		group := RankGroup{Rank: emitted + 1, Score: entries[i].score}
		for _, e := range entries[i:j] {
			group.Titles = append(group.Titles, e.title)
		}
		groups = append(groups, group)
		emitted += j - i
		i = j
	}
	return groups
}

func playerStats(graph *corpus.Graph) []PlayerStats {
	byPlayer := map[string]*PlayerStats{}
	get := func(player string) *PlayerStats {
		ps := byPlayer[player]
		if ps == nil {
			ps = &PlayerStats{Player: player}
			byPlayer[player] = ps
		}
		return ps
	}

	for _, node := range graph.Ordered {
		if !node.Written() {
			continue
		}
		ps := get(node.Article.Player)
		ps.Articles++
		ps.CitationsMade += node.OutDegree()
		ps.CitationsReceived += node.InDegree()
	}

	out := make([]PlayerStats, 0, len(byPlayer))
	for _, ps := range byPlayer {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out
}
