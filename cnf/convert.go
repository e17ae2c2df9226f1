package cnf

import (
	"fmt"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/grammar"
)

// Converter converts grammars to Chomsky Normal Form. Create one with
// NewConverter. A converter holds configuration only and may be shared
// between goroutines.
type Converter struct {
	limits         Limits
	terminalPrefix string
	chainPrefix    string
	prune          bool
}

// Option configures a converter.
type Option func(c *Converter)

// WithLimits sets resource limits. Default is DefaultLimits.
func WithLimits(l Limits) Option {
	return func(c *Converter) {
		c.limits = l
	}
}

// WithTerminalPrefix sets the prefix for non-terminals introduced by TERM.
func WithTerminalPrefix(prefix string) Option {
	return func(c *Converter) {
		c.terminalPrefix = prefix
	}
}

// WithChainPrefix sets the prefix for non-terminals introduced by BIN.
func WithChainPrefix(prefix string) Option {
	return func(c *Converter) {
		c.chainPrefix = prefix
	}
}

// WithPruning sets or clears removal of useless symbols after conversion.
// Default is off.
func WithPruning(b bool) Option {
	return func(c *Converter) {
		c.prune = b
	}
}

// NewConverter creates a converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		limits:         DefaultLimits,
		terminalPrefix: DefaultTerminalPrefix,
		chainPrefix:    DefaultChainPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert is a shortcut for NewConverter(opts...).Convert(g).
func Convert(g *grammar.Grammar, opts ...Option) (*grammar.Grammar, error) {
	return NewConverter(opts...).Convert(g)
}

// Step is the result of a single stage of a conversion run.
type Step struct {
	Name    string // START, DEL, UNIT, TERM, BIN or PRUNE
	Grammar *grammar.Grammar
}

// Convert transforms g into an equivalent grammar in Chomsky Normal Form.
//
// g is validated before any stage runs. Invalid input is reported as
// chomsky.MalformedGrammar or chomsky.EmptyGrammar; hitting a limit as
// chomsky.LimitExceeded. g itself is never modified.
func (c *Converter) Convert(g *grammar.Grammar) (*grammar.Grammar, error) {
	result, _, err := c.run(g, false)
	return result, err
}

// ConvertSteps works like Convert, but additionally returns the intermediate
// grammar after each stage.
func (c *Converter) ConvertSteps(g *grammar.Grammar) (*grammar.Grammar, []Step, error) {
	return c.run(g, true)
}

type stage struct {
	name string
	run  func(*grammar.Grammar) (*grammar.Grammar, error)
}

func (c *Converter) run(g *grammar.Grammar, record bool) (*grammar.Grammar, []Step, error) {
	if g == nil {
		return nil, nil, chomsky.Errorf(chomsky.EmptyGrammar, "no grammar to convert")
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	if err := c.limits.checkInput(g); err != nil {
		return nil, nil, err
	}
	names := NewNameGen(g).WithPrefixes(c.terminalPrefix, c.chainPrefix)
	stages := []stage{
		{"START", func(g *grammar.Grammar) (*grammar.Grammar, error) { return IsolateStart(g, names) }},
		{"DEL", func(g *grammar.Grammar) (*grammar.Grammar, error) { return EliminateEpsilon(g, c.limits) }},
		{"UNIT", func(g *grammar.Grammar) (*grammar.Grammar, error) { return EliminateUnits(g, c.limits) }},
		{"TERM", func(g *grammar.Grammar) (*grammar.Grammar, error) { return ReplaceTerminals(g, names) }},
		{"BIN", func(g *grammar.Grammar) (*grammar.Grammar, error) { return Binarize(g, names) }},
	}
	if c.prune {
		stages = append(stages, stage{"PRUNE", Prune})
	}
	var steps []Step
	tracer().P("grammar", g.Name()).Infof("converting grammar with %d productions", g.Size())
	for _, st := range stages {
		next, err := st.run(g)
		if err != nil {
			tracer().P("stage", st.name).Errorf("conversion failed: %v", err)
			return nil, nil, err
		}
		tracer().P("stage", st.name).Debugf("%d productions", next.Size())
		g = next
		if record {
			steps = append(steps, Step{Name: st.name, Grammar: g})
		}
	}
	if err := IsCNF(g); err != nil {
		tracer().Errorf("conversion result violates CNF: %v", err)
		return nil, nil, fmt.Errorf("internal error: %w", err)
	}
	tracer().P("grammar", g.Name()).Infof("CNF has %d productions", g.Size())
	return g, steps, nil
}
