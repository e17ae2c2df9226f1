package cnf

import (
	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/grammar"
)

// Limits bound the resources a conversion may use. Zero values mean "no limit".
//
// DEL may blow up a grammar exponentially in the number of nullable symbols
// per body, UNIT quadratically in the number of non-terminals. Hosting
// services should always set limits.
type Limits struct {
	MaxProductions int // maximum number of productions of any intermediate grammar
	MaxBodyLength  int // maximum body length of an input production
}

// DefaultLimits are used by converters unless configured otherwise.
var DefaultLimits = Limits{
	MaxProductions: 100000,
	MaxBodyLength:  256,
}

func (l Limits) checkInput(g *grammar.Grammar) error {
	if l.MaxProductions > 0 && g.Size() > l.MaxProductions {
		return chomsky.Errorf(chomsky.LimitExceeded,
			"grammar has %d productions, limit is %d", g.Size(), l.MaxProductions)
	}
	if l.MaxBodyLength <= 0 {
		return nil
	}
	var err error
	g.EachProduction(func(_ int, p grammar.Production) {
		if err == nil && len(p.Body) > l.MaxBodyLength {
			err = chomsky.Errorf(chomsky.LimitExceeded,
				"production %v has body of length %d, limit is %d", p, len(p.Body), l.MaxBodyLength)
		}
	})
	return err
}

// checkSize is called by stages while adding productions.
func (l Limits) checkSize(stage string, n int) error {
	if l.MaxProductions > 0 && n > l.MaxProductions {
		return chomsky.Errorf(chomsky.LimitExceeded,
			"%s produced more than %d productions", stage, l.MaxProductions)
	}
	return nil
}
