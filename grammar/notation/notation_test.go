package notation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"S -> a",
	"S → a S b | ε",
	"S ::= A 'x' ; A -> %empty",
	"# comment only\nS -> a # trailing\n\n",
	`S -> "|" S | '"'`,
}

var TokenCounts = []int{3, 7, 8, 6, 6}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	for i, input := range inputStrings {
		tokens, err := tokenize(input)
		if err != nil {
			t.Errorf("input #%d: %v", i, err)
			continue
		}
		for _, tok := range tokens {
			t.Logf(" %4d | %15s | %d:%d", tok.kind, tok.lexeme, tok.line, tok.col)
		}
		if len(tokens) != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], len(tokens))
		}
	}
}

func TestTokenizeRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	if _, err := tokenize("S -> a + b"); err == nil {
		t.Errorf("expected bare '+' to be rejected")
	}
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	g, err := Parse("G", `
		S -> A B | 'c'
		A -> a A | ε
		B -> b |
	`)
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Start() != "S" {
		t.Errorf("expected start symbol S, is %s", g.Start())
	}
	if diff := cmp.Diff([]string{"A", "B", "S"}, g.NonTerminals()); diff != "" {
		t.Errorf("non-terminals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, g.Terminals()); diff != "" {
		t.Errorf("terminals mismatch (-want +got):\n%s", diff)
	}
	for _, p := range [][]string{{"S", "A", "B"}, {"S", "c"}, {"A", "a", "A"}, {"A"}, {"B", "b"}, {"B"}} {
		if !g.Has(p[0], p[1:]...) {
			t.Errorf("expected production %v to be present", p)
		}
	}
	if g.Size() != 6 {
		t.Errorf("expected 6 productions, have %d", g.Size())
	}
}

func TestParseCompact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	g, err := Parse("G", "S -> aSb | ab", Compact(true))
	if err != nil {
		t.Fatal(err)
	}
	if !g.Has("S", "a", "S", "b") || !g.Has("S", "a", "b") {
		t.Errorf("compact mode did not split symbols:\n%v", g)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	cases := []struct {
		input string
		kind  chomsky.ErrorKind
	}{
		{"", chomsky.EmptyGrammar},
		{"# nothing\n\n", chomsky.EmptyGrammar},
		{"S a", chomsky.MalformedGrammar},
		{"-> a", chomsky.MalformedGrammar},
		{"S -> a ε", chomsky.MalformedGrammar},
		{"S -> a A -> b", chomsky.MalformedGrammar},
		{"S -> 'A'\nA -> a", chomsky.MalformedGrammar}, // quoted A clashes with head A
		{"S -> ''", chomsky.MalformedGrammar},
	}
	for i, c := range cases {
		_, err := Parse("G", c.input)
		if chomsky.KindOf(err) != c.kind {
			t.Errorf("case #%d: expected %s, got %v", i, c.kind, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	g, err := Parse("G", `
		E -> E '+' T | T
		T -> '(' E ')' | id | E_
		E_ -> "'" | ε
		id -> E
	`)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := Format(&b, g); err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", b.String())
	h, err := Parse("G", b.String())
	if err != nil {
		t.Fatal(err)
	}
	if h.Fingerprint() != g.Fingerprint() {
		t.Errorf("grammar changed during round trip:\n%v\n---\n%v", g, h)
	}
}

func TestString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.notation")
	defer teardown()
	//
	g, err := ParseLines("G", "S -> a S | ε")
	if err != nil {
		t.Fatal(err)
	}
	if s := String(g); s != "S → a S | ε" {
		t.Errorf("unexpected notation: %q", s)
	}
}
