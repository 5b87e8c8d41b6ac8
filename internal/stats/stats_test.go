package stats

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/goliatone/go-lexicon/internal/corpus"
	"github.com/goliatone/go-lexicon/internal/markdown"
)

func buildGraph(t *testing.T, articles map[string]string) *corpus.Graph {
	t.Helper()
	var docs []*markdown.Document
	i := 0
	for name, body := range articles {
		i++
		src := fmt.Sprintf("---\ntitle: %s\nplayer: p-%s\nturn: 1\n---\n%s\n", name, name, body)
		doc, perr := markdown.Parse(fmt.Sprintf("src/%02d.md", i), []byte(src))
		if perr != nil {
			t.Fatalf("parse %s: %v", name, perr)
		}
		docs = append(docs, doc)
	}
	graph, _ := corpus.NewResolver(corpus.DefaultIndexConfig(), nil).Resolve(docs, nil)
	return graph
}

func TestComputeDegreeTotals(t *testing.T) {
	graph := buildGraph(t, map[string]string{
		"Avocet":  "Cites [[Bustard]] and [[Curlew]].",
		"Bustard": "Cites [[Curlew]].",
		"Curlew":  "Cites nothing.",
	})

	s := Compute(graph, Config{})

	if s.Articles != 3 || s.Phantoms != 0 || s.Citations != 3 {
		t.Fatalf("totals = %d/%d/%d", s.Articles, s.Phantoms, s.Citations)
	}

	wantCited := []RankGroup{
		{Rank: 1, Score: 2, Titles: []string{"Curlew"}},
		{Rank: 2, Score: 1, Titles: []string{"Bustard"}},
		{Rank: 3, Score: 0, Titles: []string{"Avocet"}},
	}
	if !reflect.DeepEqual(s.MostCited, wantCited) {
		t.Errorf("MostCited = %+v", s.MostCited)
	}

	wantCiting := []RankGroup{
		{Rank: 1, Score: 2, Titles: []string{"Avocet"}},
		{Rank: 2, Score: 1, Titles: []string{"Bustard"}},
		{Rank: 3, Score: 0, Titles: []string{"Curlew"}},
	}
	if !reflect.DeepEqual(s.MostCiting, wantCiting) {
		t.Errorf("MostCiting = %+v", s.MostCiting)
	}
}

func TestComputeUndercited(t *testing.T) {
	graph := buildGraph(t, map[string]string{
		"Anchor": "Cites [[Beacon]] twice over: [[Beacon]].",
		"Beacon": "Cites [[Cairn]].",
		"Cairn":  "Cites [[Anchor]] and [[Beacon]].",
		"Drift":  "Cites nothing and is cited by nobody.",
	})

	s := Compute(graph, Config{})

	// Beacon is cited three times but by two distinct articles, so it is not
	// undercited. Everything else has at most one citer.
	want := []UndercitedEntry{
		{Title: "Anchor", CitedBy: 1},
		{Title: "Cairn", CitedBy: 1},
		{Title: "Drift", CitedBy: 0},
	}
	if !reflect.DeepEqual(s.Undercited, want) {
		t.Errorf("Undercited = %+v", s.Undercited)
	}
}

func TestComputeGroupsTiesAlphabetically(t *testing.T) {
	graph := buildGraph(t, map[string]string{
		"Hub":    "Cites [[Zebra]], [[Aardvark]] and [[Mole]].",
		"Spoke":  "Cites [[Zebra]], [[Aardvark]] and [[Mole]].",
		"Leaf":   "Cites [[Zebra]].",
		"Zebra":  "body",
		"Mole":   "body",
		"Wombat": "body",
	})

	s := Compute(graph, Config{TopN: 3})

	if len(s.MostCited) == 0 {
		t.Fatal("expected leaderboard groups")
	}
	top := s.MostCited[0]
	if top.Rank != 1 || top.Score != 3 || !reflect.DeepEqual(top.Titles, []string{"Zebra"}) {
		t.Fatalf("top group = %+v", top)
	}
	// Mole ties with the phantom Aardvark at 2, but phantoms rank in their
	// own leaderboard; within MostCited the next rung is Mole alone.
	second := s.MostCited[1]
	if second.Rank != 2 || second.Score != 2 || !reflect.DeepEqual(second.Titles, []string{"Mole"}) {
		t.Fatalf("second group = %+v", second)
	}

	if len(s.MostCitedPhantoms) == 0 || !reflect.DeepEqual(s.MostCitedPhantoms[0].Titles, []string{"Aardvark"}) {
		t.Fatalf("phantom leaderboard = %+v", s.MostCitedPhantoms)
	}
}

func TestComputeCompetitionRankNumbering(t *testing.T) {
	groups := rank([]scored{
		{"Alpha", 4},
		{"Beta", 4},
		{"Gamma", 1},
	}, 5)

	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Rank != 1 || len(groups[0].Titles) != 2 {
		t.Fatalf("first group = %+v", groups[0])
	}
	if groups[1].Rank != 3 {
		t.Fatalf("tied pair must push next rank to 3, got %d", groups[1].Rank)
	}
}

func TestComputeTopNKeepsTieGroupsWhole(t *testing.T) {
	groups := rank([]scored{
		{"A", 9},
		{"B", 5},
		{"C", 5},
		{"D", 5},
		{"E", 2},
	}, 2)

	// The cut lands inside the score-5 group; the group stays whole and E
	// is dropped.
	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	if len(groups[1].Titles) != 3 {
		t.Fatalf("tie group split: %+v", groups[1])
	}
}

func TestComputePageRankDisabledByDefault(t *testing.T) {
	graph := buildGraph(t, map[string]string{"Solo": "body"})

	if s := Compute(graph, Config{}); s.PageRank != nil {
		t.Fatalf("PageRank computed without the flag: %+v", s.PageRank)
	}
}

func TestPageRankScoresSumToOne(t *testing.T) {
	graph := buildGraph(t, map[string]string{
		"Avocet":  "Cites [[Bustard]] and [[Curlew]].",
		"Bustard": "Cites [[Curlew]].",
		"Curlew":  "Cites [[Avocet]].",
	})

	scores := PageRank(graph, PageRankOptions{})

	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("scores sum to %v", sum)
	}
	if scores["Curlew"] <= scores["Bustard"] {
		t.Fatalf("twice-cited entry should outrank once-cited: %v vs %v",
			scores["Curlew"], scores["Bustard"])
	}
}

func TestPageRankHandlesSinksAndPhantoms(t *testing.T) {
	graph := buildGraph(t, map[string]string{
		"Alpha": "Cites [[Ghost]].",
	})

	scores := PageRank(graph, PageRankOptions{})

	if len(scores) != 2 {
		t.Fatalf("expected scores for article and phantom, got %v", scores)
	}
	// The phantom is a pure sink; its mass must recirculate rather than
	// leak, keeping the distribution normalised.
	sum := scores["Alpha"] + scores["Ghost"]
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("scores sum to %v", sum)
	}
	if scores["Ghost"] <= scores["Alpha"] {
		t.Fatalf("cited phantom should outrank its lone citer: %v", scores)
	}
}

func TestPageRankEmptyGraph(t *testing.T) {
	graph, _ := corpus.NewResolver(corpus.DefaultIndexConfig(), nil).Resolve(nil, nil)
	if scores := PageRank(graph, PageRankOptions{}); len(scores) != 0 {
		t.Fatalf("expected empty scores, got %v", scores)
	}
}

func TestComputePlayerStats(t *testing.T) {
	graph := buildGraph(t, map[string]string{
		"Avocet":  "Cites [[Bustard]].",
		"Bustard": "body",
	})

	s := Compute(graph, Config{})

	if len(s.Players) != 2 {
		t.Fatalf("players = %+v", s.Players)
	}
	if s.Players[0].Player != "p-Avocet" || s.Players[0].CitationsMade != 1 {
		t.Errorf("player 0 = %+v", s.Players[0])
	}
	if s.Players[1].Player != "p-Bustard" || s.Players[1].CitationsReceived != 1 {
		t.Errorf("player 1 = %+v", s.Players[1])
	}
}

func TestComputeDeterministic(t *testing.T) {
	articles := map[string]string{
		"Avocet":  "Cites [[Bustard]] and [[Curlew]].",
		"Bustard": "Cites [[Curlew]].",
		"Curlew":  "Cites [[Avocet]].",
	}

	first := Compute(buildGraph(t, articles), Config{EnablePageRank: true})
	for i := 0; i < 3; i++ {
		again := Compute(buildGraph(t, articles), Config{EnablePageRank: true})
		if !reflect.DeepEqual(first, again) {
			t.Fatal("identical corpora produced different statistics")
		}
	}
}
