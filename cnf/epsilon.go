package cnf

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/chomsky/grammar"
)

// Nullable computes the set of non-terminals deriving the empty string.
//
// We use a worklist: a production is waiting on all the symbols of its body.
// Once the last of them turns out to be nullable, the head of the production
// is nullable, too. Productions containing terminals never wait successfully.
// Every non-terminal enters the worklist at most once, so this terminates
// after O(|G|) steps, even for cyclic grammars.
func Nullable(g *grammar.Grammar) map[string]bool {
	prods := g.Productions()
	pending := make([]int, len(prods)) // per production: body symbols not yet known nullable
	occurs := make(map[string][]int)   // non-terminal -> productions with an occurrence
	nullable := make(map[string]bool)
	worklist := arraystack.New()
	for i, p := range prods {
		hasTerminal := false
		for _, sym := range p.Body {
			if !g.IsNonTerminal(sym) {
				hasTerminal = true
				break
			}
		}
		if hasTerminal {
			continue
		}
		pending[i] = len(p.Body)
		for _, sym := range p.Body {
			occurs[sym] = append(occurs[sym], i) // once per occurrence
		}
		if pending[i] == 0 && !nullable[p.Head] {
			nullable[p.Head] = true
			worklist.Push(p.Head)
		}
	}
	for !worklist.Empty() {
		x, _ := worklist.Pop()
		for _, i := range occurs[x.(string)] {
			pending[i]--
			if head := prods[i].Head; pending[i] == 0 && !nullable[head] {
				nullable[head] = true
				worklist.Push(head)
			}
		}
	}
	tracer().P("stage", "DEL").Debugf("nullable = %v", sortedKeys(nullable))
	return nullable
}

// EliminateEpsilon returns a grammar without ε-productions, deriving the same
// language. If the start symbol is nullable, the grammar gets a production
// S → ε for the start symbol S; this is the only ε-production in the result.
//
// For every production, all variants with any subset of nullable occurrences
// removed are added. Variants with an empty body are not.
// The result is independent of the order of g's productions (modulo order).
func EliminateEpsilon(g *grammar.Grammar, limits Limits) (*grammar.Grammar, error) {
	nullable := Nullable(g)
	b := grammar.Derive(g)
	var err error
	g.EachProduction(func(_ int, p grammar.Production) {
		if err == nil {
			err = expandNullable(b, p, nullable, limits)
		}
	})
	if err != nil {
		return nil, err
	}
	if S := g.Start(); nullable[S] {
		tracer().P("stage", "DEL").Debugf("start symbol %s is nullable, keeping %s → ε", S, S)
		b.Add(grammar.Production{Head: S})
	}
	return b.Grammar()
}

// expandNullable adds all non-empty variants of p, with nullable occurrences
// removed in every possible combination.
//
// Variants are built back to front, one body position at a time. Equal
// partial bodies are merged as soon as they appear, so the work done is
// bounded by the number of distinct variants, which is checked against the
// production limit after every position. Variants are added in the order of
// a binary counter over the nullable occurrences, the first one counting fastest.
func expandNullable(b *grammar.Builder, p grammar.Production, nullable map[string]bool,
	limits Limits) error {
	//
	suffixes := [][]string{{}}
	for i := len(p.Body) - 1; i >= 0; i-- {
		sym := p.Body[i]
		next := make([][]string, 0, 2*len(suffixes))
		seen := make(map[string]bool, 2*len(suffixes))
		for _, suffix := range suffixes {
			keep := append(append(make([]string, 0, len(suffix)+1), sym), suffix...)
			if k := bodyKey(keep); !seen[k] {
				seen[k] = true
				next = append(next, keep)
			}
			if !nullable[sym] {
				continue
			}
			if k := bodyKey(suffix); !seen[k] {
				seen[k] = true
				next = append(next, suffix)
			}
		}
		if err := limits.checkSize("DEL", b.Size()+len(next)); err != nil {
			return err
		}
		suffixes = next
	}
	for _, body := range suffixes {
		if len(body) > 0 {
			b.Add(grammar.Production{Head: p.Head, Body: body})
		}
	}
	return limits.checkSize("DEL", b.Size())
}

// bodyKey identifies a body. Symbols never contain 0-bytes.
func bodyKey(body []string) string {
	return strings.Join(body, "\x00")
}
