package cnf

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/chomsky/grammar"
)

// Generating computes the set of non-terminals which derive at least one
// string of terminals (possibly the empty string).
//
// This is the worklist of Nullable, with terminals counting as resolved:
// a production waits on the non-terminal occurrences of its body only.
func Generating(g *grammar.Grammar) map[string]bool {
	prods := g.Productions()
	pending := make([]int, len(prods))
	occurs := make(map[string][]int)
	generating := make(map[string]bool)
	worklist := arraystack.New()
	for i, p := range prods {
		for _, sym := range p.Body {
			if g.IsNonTerminal(sym) {
				pending[i]++
				occurs[sym] = append(occurs[sym], i)
			}
		}
		if pending[i] == 0 && !generating[p.Head] {
			generating[p.Head] = true
			worklist.Push(p.Head)
		}
	}
	for !worklist.Empty() {
		x, _ := worklist.Pop()
		for _, i := range occurs[x.(string)] {
			pending[i]--
			if head := prods[i].Head; pending[i] == 0 && !generating[head] {
				generating[head] = true
				worklist.Push(head)
			}
		}
	}
	tracer().P("stage", "PRUNE").Debugf("generating = %v", sortedKeys(generating))
	return generating
}

// Prune removes useless symbols: first all productions mentioning a
// non-generating non-terminal, then all productions unreachable from the
// start symbol. Symbols not used by any remaining production are dropped
// from the grammar's declarations, except for the start symbol.
//
// Pruning preserves the language and the CNF property.
func Prune(g *grammar.Grammar) (*grammar.Grammar, error) {
	generating := Generating(g)
	useful := make(map[string][]grammar.Production)
	g.EachProduction(func(_ int, p grammar.Production) {
		if !generating[p.Head] {
			return
		}
		for _, sym := range p.Body {
			if g.IsNonTerminal(sym) && !generating[sym] {
				return
			}
		}
		useful[p.Head] = append(useful[p.Head], p)
	})
	reachable := map[string]bool{g.Start(): true}
	worklist := arraystack.New()
	worklist.Push(g.Start())
	for !worklist.Empty() {
		x, _ := worklist.Pop()
		for _, p := range useful[x.(string)] {
			for _, sym := range p.Body {
				if g.IsNonTerminal(sym) && !reachable[sym] {
					reachable[sym] = true
					worklist.Push(sym)
				}
			}
		}
	}
	b := grammar.NewBuilder(g.Name())
	b.Start(g.Start())
	removed := 0
	g.EachProduction(func(_ int, p grammar.Production) {
		if !reachable[p.Head] || !contains(useful[p.Head], p) {
			removed++
			return
		}
		rb := b.LHS(p.Head)
		for _, sym := range p.Body {
			if g.IsTerminal(sym) {
				rb.T(sym)
			} else {
				rb.N(sym)
			}
		}
		rb.End()
	})
	tracer().P("stage", "PRUNE").Debugf("removed %d useless productions", removed)
	return b.Grammar()
}

func contains(prods []grammar.Production, p grammar.Production) bool {
	for _, q := range prods {
		if equalBodies(q.Body, p.Body) {
			return true
		}
	}
	return false
}

func equalBodies(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
