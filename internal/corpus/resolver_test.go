package corpus

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-lexicon/internal/markdown"
)

func mustParse(t *testing.T, path, titleLine, player string, turn int, body string) *markdown.Document {
	t.Helper()
	src := fmt.Sprintf("---\ntitle: %s\nplayer: %s\nturn: %d\n---\n%s\n", titleLine, player, turn, body)
	doc, perr := markdown.Parse(path, []byte(src))
	if perr != nil {
		t.Fatalf("parse %s: %v", path, perr)
	}
	return doc
}

func resolve(t *testing.T, docs ...*markdown.Document) (*Graph, *Report) {
	t.Helper()
	return NewResolver(DefaultIndexConfig(), nil).Resolve(docs, nil)
}

func TestResolvePhantomLifecycle(t *testing.T) {
	citing := mustParse(t, "src/a.md", "Alpha", "alice", 1, "See [[Foo]].")

	graph, report := resolve(t, citing)

	foo := graph.Nodes["Foo"]
	if foo == nil {
		t.Fatal("expected phantom node Foo")
	}
	if foo.Written() {
		t.Fatal("Foo should be phantom")
	}
	if report.Phantoms != 1 || report.Articles != 1 {
		t.Fatalf("counts = %d articles / %d phantoms", report.Articles, report.Phantoms)
	}

	// Next build the phantom gets written: same node identity, prior edges
	// point at the written article.
	written := mustParse(t, "src/foo.md", "Foo", "bob", 2, "Nothing to cite.")
	graph, report = resolve(t, citing, written)

	foo = graph.Nodes["Foo"]
	if foo == nil || !foo.Written() {
		t.Fatal("Foo should be written after the article appears")
	}
	if got := len(graph.Nodes); got != 2 {
		t.Fatalf("expected 2 nodes, got %d", got)
	}
	if foo.InDegree() != 1 || foo.In[0].From.Title.Canonical != "Alpha" {
		t.Fatalf("expected Alpha's edge to point at written Foo, got %+v", foo.In)
	}
	if report.Phantoms != 0 {
		t.Fatalf("expected no phantoms, got %d", report.Phantoms)
	}
}

func TestResolveCitationInsideEmphasis(t *testing.T) {
	citing := mustParse(t, "src/a.md", "Alpha", "alice", 1, "Rumours of //the [[Veiled Court]]// persist.")

	graph, report := resolve(t, citing)

	if report.Phantoms != 1 {
		t.Fatalf("expected the emphasised citation to create a phantom, got %d", report.Phantoms)
	}
	court := graph.Nodes["Veiled Court"]
	if court == nil || court.InDegree() != 1 {
		t.Fatalf("expected one edge into Veiled Court, got %+v", court)
	}
}

func TestResolveFillOrderIndependence(t *testing.T) {
	// The written article sorts before the citing one; registration happens
	// before edge creation, so no duplicate node appears either way.
	written := mustParse(t, "src/01-foo.md", "Foo", "bob", 1, "body")
	citing := mustParse(t, "src/02-a.md", "Alpha", "alice", 1, "See [[Foo]].")

	graph, _ := resolve(t, written, citing)
	if len(graph.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(graph.Nodes))
	}
	if !graph.Nodes["Foo"].Written() {
		t.Fatal("Foo must be written")
	}
}

func TestResolveSelfCitation(t *testing.T) {
	bar := mustParse(t, "src/bar.md", "Bar", "carol", 1, "On [[Bar]] and [[Baz]].")

	graph, report := resolve(t, bar)

	node := graph.Nodes["Bar"]
	if !node.Article.SelfCiting {
		t.Fatal("expected Bar flagged self-citing")
	}
	if len(report.SelfCitations) != 1 || report.SelfCitations[0].Player != "carol" {
		t.Fatalf("self-citation report = %+v", report.SelfCitations)
	}

	var selfEdges, otherEdges int
	for _, e := range graph.Edges {
		if e.Self {
			selfEdges++
		} else {
			otherEdges++
		}
	}
	if selfEdges != 1 || otherEdges != 1 {
		t.Fatalf("expected 1 self edge and 1 normal edge, got %d/%d", selfEdges, otherEdges)
	}
	if graph.Nodes["Baz"].Written() {
		t.Fatal("Baz must be phantom")
	}
}

func TestResolveDegreeAccounting(t *testing.T) {
	a := mustParse(t, "src/a.md", "Avocet", "p1", 1, "Cites [[Bustard]] and [[Curlew]].")
	b := mustParse(t, "src/b.md", "Bustard", "p2", 1, "Cites [[Curlew]].")
	c := mustParse(t, "src/c.md", "Curlew", "p3", 1, "Cites nothing.")

	graph, _ := resolve(t, a, b, c)

	checks := []struct {
		title string
		in    int
		out   int
	}{
		{"Avocet", 0, 2},
		{"Bustard", 1, 1},
		{"Curlew", 2, 0},
	}
	for _, tc := range checks {
		node := graph.Nodes[tc.title]
		if node.InDegree() != tc.in || node.OutDegree() != tc.out {
			t.Errorf("%s: degree in/out = %d/%d, want %d/%d",
				tc.title, node.InDegree(), node.OutDegree(), tc.in, tc.out)
		}
	}
}

func TestResolveRepeatedCitationsStayDistinct(t *testing.T) {
	a := mustParse(t, "src/a.md", "Alpha", "p1", 1, "[[Foo]] and [[Foo]] again.")

	graph, _ := resolve(t, a)

	if got := graph.Nodes["Foo"].InDegree(); got != 2 {
		t.Fatalf("expected 2 distinct edges, got %d", got)
	}
	if len(graph.Nodes) != 2 {
		t.Fatalf("repeated citations must not duplicate nodes, got %d", len(graph.Nodes))
	}
}

func TestResolveTitleConflictFirstWins(t *testing.T) {
	first := mustParse(t, "src/01.md", "Quux", "alice", 1, "First claim.")
	second := mustParse(t, "src/02.md", "Quux", "bob", 2, "Second claim citing [[Zarf]].")

	graph, report := resolve(t, first, second)

	node := graph.Nodes["Quux"]
	if node.Article.Player != "alice" {
		t.Fatalf("expected alice to win the title, got %q", node.Article.Player)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", report.Conflicts)
	}
	conflict := report.Conflicts[0]
	if conflict.WinnerPath != "src/01.md" || conflict.LoserPath != "src/02.md" || conflict.Player != "bob" {
		t.Fatalf("conflict = %+v", conflict)
	}
	// The losing file is excluded entirely: its citations create no nodes.
	if _, ok := graph.Nodes["Zarf"]; ok {
		t.Fatal("conflicting file's citations must not enter the graph")
	}
	// Exactly one index entry for the title.
	occurrences := 0
	for _, bucket := range graph.Buckets {
		for _, member := range bucket.Members {
			if member.Title.Canonical == "Quux" {
				occurrences++
			}
		}
	}
	if occurrences != 1 {
		t.Fatalf("expected 1 bucket entry for Quux, got %d", occurrences)
	}
}

func TestResolveEquivalentRawTitlesShareOneNode(t *testing.T) {
	a := mustParse(t, "src/a.md", "Alpha", "p1", 1, "See [[the  Jabberwock]].")
	b := mustParse(t, "src/b.md", "Beta", "p2", 1, "See [[The Jabberwock]].")

	graph, _ := resolve(t, a, b)

	jabber := graph.Nodes["The Jabberwock"]
	if jabber == nil {
		t.Fatalf("expected canonical node, have %v", nodeTitles(graph))
	}
	if jabber.InDegree() != 2 {
		t.Fatalf("expected both citations on one node, in-degree = %d", jabber.InDegree())
	}
}

func TestResolveBucketPartitionCoversEveryNode(t *testing.T) {
	docs := []*markdown.Document{
		mustParse(t, "src/a.md", "The Jabberwock", "p1", 1, "See [[Oubliette]] and [[1919 Exposition]]."),
		mustParse(t, "src/b.md", "A Study", "p2", 1, "See [[Whispering Gallery]]."),
	}

	graph, _ := resolve(t, docs...)

	total := 0
	seen := map[string]bool{}
	for _, bucket := range graph.Buckets {
		for _, member := range bucket.Members {
			total++
			if seen[member.Title.Canonical] {
				t.Fatalf("duplicate bucket membership for %q", member.Title.Canonical)
			}
			seen[member.Title.Canonical] = true
		}
	}
	if total != len(graph.Nodes) {
		t.Fatalf("bucket union %d != node count %d", total, len(graph.Nodes))
	}

	assertBucket := func(canonical, bucket string) {
		t.Helper()
		if got := graph.Nodes[canonical].Bucket; got != bucket {
			t.Errorf("%s in bucket %q, want %q", canonical, got, bucket)
		}
	}
	assertBucket("The Jabberwock", "JKL")
	assertBucket("A Study", "PQRS")
	assertBucket("Oubliette", "MNO")
	assertBucket("Whispering Gallery", "WXYZ")
	assertBucket("1919 Exposition", "&c")

	// Every configured bucket is present even when empty.
	if len(graph.Buckets) != 9 {
		t.Fatalf("expected 8 configured buckets + catch-all, got %d", len(graph.Buckets))
	}
}

func TestResolveDeterministicOrdering(t *testing.T) {
	docs := []*markdown.Document{
		mustParse(t, "src/a.md", "The Mirror", "p1", 2, "See [[Mire]]."),
		mustParse(t, "src/b.md", "Mire", "p2", 1, "See [[The Mirror]]."),
		mustParse(t, "src/c.md", "Moss", "p3", 3, "See [[Mire]]."),
	}

	first, _ := resolve(t, docs...)
	for i := 0; i < 3; i++ {
		again, _ := resolve(t, docs...)
		for idx := range first.Ordered {
			if first.Ordered[idx].Title.Canonical != again.Ordered[idx].Title.Canonical {
				t.Fatal("Ordered differs between identical resolves")
			}
		}
		for idx := range first.ReadOrder {
			if first.ReadOrder[idx].Title.Canonical != again.ReadOrder[idx].Title.Canonical {
				t.Fatal("ReadOrder differs between identical resolves")
			}
		}
	}

	// ReadOrder: written by turn, then title; phantoms never precede
	// written entries.
	want := []string{"Mire", "The Mirror", "Moss"}
	for idx, canonical := range want {
		if first.ReadOrder[idx].Title.Canonical != canonical {
			t.Fatalf("ReadOrder[%d] = %q, want %q", idx, first.ReadOrder[idx].Title.Canonical, canonical)
		}
	}
}

func nodeTitles(g *Graph) []string {
	var out []string
	for key := range g.Nodes {
		out = append(out, key)
	}
	return out
}
