package cnf

import (
	"fmt"
	"sort"

	"github.com/npillmayer/chomsky/grammar"
)

// IsCNF checks whether g is in Chomsky Normal Form. It returns an error
// describing the first offending production, or nil:
//
//   - a body of length 1 must be a terminal
//   - a body of length 2 must consist of non-terminals other than the start symbol
//   - an empty body is allowed for the start symbol only
//   - longer bodies are not allowed
func IsCNF(g *grammar.Grammar) error {
	S := g.Start()
	var err error
	g.EachProduction(func(i int, p grammar.Production) {
		if err != nil {
			return
		}
		switch len(p.Body) {
		case 0:
			if p.Head != S {
				err = fmt.Errorf("production #%d %v: ε-production for non-start symbol", i, p)
			}
		case 1:
			if !g.IsTerminal(p.Body[0]) {
				err = fmt.Errorf("production #%d %v: single symbol is not a terminal", i, p)
			}
		case 2:
			for _, sym := range p.Body {
				if !g.IsNonTerminal(sym) {
					err = fmt.Errorf("production #%d %v: %s is not a non-terminal", i, p, sym)
				} else if sym == S {
					err = fmt.Errorf("production #%d %v: start symbol on right-hand side", i, p)
				}
			}
		default:
			err = fmt.Errorf("production #%d %v: body too long", i, p)
		}
	})
	return err
}

// DerivesEmpty is a predicate: does g derive the empty string?
func DerivesEmpty(g *grammar.Grammar) bool {
	return Nullable(g)[g.Start()]
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
