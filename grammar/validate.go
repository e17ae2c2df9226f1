package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/chomsky"
	"go.uber.org/multierr"
)

// Validate checks a grammar intended as input for a transformation:
// the grammar must have a start symbol and at least one production
// (chomsky.EmptyGrammar otherwise), and all structural invariants must hold
// (chomsky.MalformedGrammar otherwise):
//
//   - start is a non-terminal
//   - every head is a non-terminal
//   - every body symbol is a declared terminal or non-terminal
//   - no symbol is both a terminal and a non-terminal
//
// All violations are reported together.
func (g *Grammar) Validate() error {
	if g.start == "" {
		return chomsky.Errorf(chomsky.EmptyGrammar, "grammar %q has no start symbol", g.name)
	}
	if len(g.rules) == 0 {
		return chomsky.Errorf(chomsky.EmptyGrammar, "grammar %q has no productions", g.name)
	}
	return g.checkSymbols()
}

// checkSymbols checks the structural invariants, but not emptiness.
func (g *Grammar) checkSymbols() error {
	var errs error
	for _, amb := range g.symbols.Ambiguous() {
		errs = multierr.Append(errs, fmt.Errorf("symbol %q is both terminal and non-terminal", amb))
	}
	g.symbols.Each(func(name string, _ Kind) {
		if strings.ContainsRune(name, 0) {
			errs = multierr.Append(errs, fmt.Errorf("symbol %q contains a 0-byte", name))
		}
	})
	if g.start != "" && !g.IsNonTerminal(g.start) {
		errs = multierr.Append(errs, fmt.Errorf("start symbol %q is not a non-terminal", g.start))
	}
	for _, p := range g.rules {
		if !g.IsNonTerminal(p.Head) {
			errs = multierr.Append(errs, fmt.Errorf("head of %v is not a non-terminal", p))
		}
		for _, sym := range p.Body {
			if g.symbols.Resolve(sym) == Undeclared {
				errs = multierr.Append(errs, fmt.Errorf("symbol %q in %v is not declared", sym, p))
			}
		}
	}
	if errs != nil {
		return wrapMalformed(g.name, errs)
	}
	return nil
}

func wrapMalformed(name string, errs error) error {
	for _, err := range multierr.Errors(errs) {
		tracer().P("grammar", name).Infof("invalid: %v", err)
	}
	n := len(multierr.Errors(errs))
	return chomsky.Wrap(chomsky.MalformedGrammar, errs,
		fmt.Sprintf("grammar %q violates %d invariant(s)", name, n))
}
