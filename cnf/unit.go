package cnf

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/chomsky/grammar"
)

// isUnit is a predicate: is p of the form A → B, with B a non-terminal?
func isUnit(g *grammar.Grammar, p grammar.Production) bool {
	return len(p.Body) == 1 && g.IsNonTerminal(p.Body[0])
}

// UnitClosure computes, for every non-terminal A, the non-terminals reachable
// from A by zero or more unit productions. A is the first element of its own
// closure; the others follow in order of discovery.
//
// Closures are computed iteratively with a visited set, so cyclic unit chains
// (A → B → A) terminate. A closure never holds more than |N| symbols.
func UnitClosure(g *grammar.Grammar) map[string][]string {
	units := make(map[string][]string) // A -> B for all unit productions A → B
	g.EachProduction(func(_ int, p grammar.Production) {
		if isUnit(g, p) && p.Body[0] != p.Head {
			units[p.Head] = append(units[p.Head], p.Body[0])
		}
	})
	closure := make(map[string][]string)
	for _, A := range g.NonTerminals() {
		visited := map[string]bool{A: true}
		reach := []string{A}
		worklist := arraystack.New()
		worklist.Push(A)
		for !worklist.Empty() {
			x, _ := worklist.Pop()
			for _, B := range units[x.(string)] {
				if !visited[B] {
					visited[B] = true
					reach = append(reach, B)
					worklist.Push(B)
				}
			}
		}
		closure[A] = reach
	}
	return closure
}

// EliminateUnits returns a grammar without unit productions A → B, deriving
// the same language. For every non-terminal A and every non-unit production
// B → β with B in the unit closure of A, the result contains A → β.
//
// An ε-production is never copied to another head: after DEL, only the
// start symbol has one, and the start symbol is not on any right-hand side.
func EliminateUnits(g *grammar.Grammar, limits Limits) (*grammar.Grammar, error) {
	closure := UnitClosure(g)
	byHead := make(map[string][]grammar.Production)
	g.EachProduction(func(_ int, p grammar.Production) {
		if !isUnit(g, p) {
			byHead[p.Head] = append(byHead[p.Head], p)
		}
	})
	b := grammar.Derive(g)
	for _, A := range headsFirst(g) {
		for _, B := range closure[A] {
			for _, p := range byHead[B] {
				if p.IsEpsilon() && A != B {
					continue
				}
				b.Add(grammar.Production{Head: A, Body: p.Body})
			}
		}
		if err := limits.checkSize("UNIT", b.Size()); err != nil {
			return nil, err
		}
	}
	tracer().P("stage", "UNIT").Debugf("%d productions without unit productions", b.Size())
	return b.Grammar()
}

// headsFirst returns all non-terminals, heads of productions first (in the
// order of g.Heads), the rest sorted.
func headsFirst(g *grammar.Grammar) []string {
	heads := g.Heads()
	seen := make(map[string]bool, len(heads))
	for _, h := range heads {
		seen[h] = true
	}
	for _, nt := range g.NonTerminals() {
		if !seen[nt] {
			heads = append(heads, nt)
		}
	}
	return heads
}
