package cnf

import (
	"github.com/npillmayer/chomsky/grammar"
)

// ReplaceTerminals returns a grammar where terminals occur only in bodies of
// length 1. Every terminal t occurring in a longer body is replaced by a fresh
// non-terminal Tt, and a production Tt → t is added. There is exactly one Tt
// per terminal t, shared by all occurrences.
func ReplaceTerminals(g *grammar.Grammar, names *NameGen) (*grammar.Grammar, error) {
	names.ReserveAll(g)
	b := grammar.Derive(g)
	wrapper := make(map[string]string) // terminal -> non-terminal deriving it
	var wrappers []grammar.Production
	var err error
	g.EachProduction(func(_ int, p grammar.Production) {
		if err != nil {
			return
		}
		if len(p.Body) < 2 {
			b.Add(p)
			return
		}
		for i, sym := range p.Body {
			if !g.IsTerminal(sym) {
				continue
			}
			T, ok := wrapper[sym]
			if !ok {
				if T, err = names.forTerminal(sym); err != nil {
					return
				}
				wrapper[sym] = T
				b.NonTerminal(T)
				wrappers = append(wrappers, grammar.Production{Head: T, Body: []string{sym}})
			}
			p.Body[i] = T
		}
		b.Add(p)
	})
	if err != nil {
		return nil, err
	}
	for _, w := range wrappers {
		b.Add(w)
	}
	tracer().P("stage", "TERM").Debugf("introduced %d terminal wrappers", len(wrappers))
	return b.Grammar()
}

// Binarize returns a grammar without bodies longer than 2. A production
//
//    A → B1 B2 … Bk   (k > 2)
//
// is factored to the right into
//
//    A → B1 X1,  X1 → B2 X2,  …,  X(k-2) → B(k-1) Bk
//
// with fresh non-terminals Xi, named with the chain prefix and each used as a
// chain link exactly once. Binarize should run after ReplaceTerminals, so
// that all the Bi are non-terminals.
func Binarize(g *grammar.Grammar, names *NameGen) (*grammar.Grammar, error) {
	names.ReserveAll(g)
	b := grammar.Derive(g)
	var err error
	links := 0
	g.EachProduction(func(_ int, p grammar.Production) {
		if err != nil {
			return
		}
		head, body := p.Head, p.Body
		for len(body) > 2 {
			var link string
			if link, err = names.forChain(); err != nil {
				return
			}
			b.NonTerminal(link)
			b.Add(grammar.Production{Head: head, Body: []string{body[0], link}})
			head, body = link, body[1:]
			links++
		}
		b.Add(grammar.Production{Head: head, Body: body})
	})
	if err != nil {
		return nil, err
	}
	tracer().P("stage", "BIN").Debugf("introduced %d chain links", links)
	return b.Grammar()
}
