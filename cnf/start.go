package cnf

import (
	"github.com/npillmayer/chomsky/grammar"
)

// IsolateStart returns a grammar whose start symbol does not appear in the
// body of any production. If g already has this property, g is returned.
// Otherwise a fresh start symbol S0 with a single production S0 → S is
// introduced, where S is the original start symbol.
func IsolateStart(g *grammar.Grammar, names *NameGen) (*grammar.Grammar, error) {
	S := g.Start()
	if !g.OnRHS(S) {
		tracer().P("stage", "START").Debugf("start symbol %s is isolated already", S)
		return g, nil
	}
	names.ReserveAll(g)
	S0, err := names.Fresh(S + "0")
	if err != nil {
		return nil, err
	}
	b := grammar.Derive(g)
	b.Start(S0)
	b.Add(grammar.Production{Head: S0, Body: []string{S}})
	g.EachProduction(func(_ int, p grammar.Production) {
		b.Add(p)
	})
	tracer().P("stage", "START").Debugf("new start symbol %s → %s", S0, S)
	return b.Grammar()
}
