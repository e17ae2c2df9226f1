package grammar

import (
	"fmt"

	"go.uber.org/multierr"
)

// Builder is a helper type to construct a grammar. Create one with
// NewBuilder or Derive. Builders are not safe for concurrent use.
type Builder struct {
	g    *Grammar
	errs error // collected construction errors
}

// NewBuilder gets a new grammar builder, given the name of the grammar to build.
func NewBuilder(name string) *Builder {
	return &Builder{g: emptyGrammar(name)}
}

// Derive gets a grammar builder pre-loaded with the name, the symbols and the
// start symbol of an existing grammar, but without any productions.
// Transformations use it to produce a new grammar from g.
func Derive(g *Grammar) *Builder {
	d := emptyGrammar(g.name)
	d.symbols = g.symbols.copy()
	d.start = g.start
	return &Builder{g: d}
}

// Start sets the start symbol, declaring it as a non-terminal.
func (b *Builder) Start(name string) *Builder {
	b.declare(name, NonTerminal)
	b.g.start = name
	return b
}

// NonTerminal declares a non-terminal without adding a production for it.
func (b *Builder) NonTerminal(name string) *Builder {
	b.declare(name, NonTerminal)
	return b
}

// Terminal declares a terminal.
func (b *Builder) Terminal(name string) *Builder {
	b.declare(name, Terminal)
	return b
}

// Declares is a predicate: has name been declared as a symbol (of any kind)?
func (b *Builder) Declares(name string) bool {
	return b.g.symbols.Resolve(name) != Undeclared
}

// Size returns the number of productions added so far.
func (b *Builder) Size() int {
	return len(b.g.rules)
}

func (b *Builder) declare(name string, kind Kind) {
	if name == "" {
		b.errs = multierr.Append(b.errs, fmt.Errorf("symbol names must not be empty"))
		return
	}
	if old := b.g.symbols.Define(name, kind); old != Undeclared && old != kind {
		b.errs = multierr.Append(b.errs,
			fmt.Errorf("symbol %q declared as %s and as %s", name, old, kind))
	}
}

// LHS starts a new rule for a grammar, given the head of the rule, which will
// be declared as a non-terminal. The first head ever given becomes the start
// symbol, if no start symbol has been set.
func (b *Builder) LHS(head string) *RuleBuilder {
	b.declare(head, NonTerminal)
	if b.g.start == "" {
		b.g.start = head
	}
	return &RuleBuilder{b: b, head: head}
}

// Add adds a production consisting of already declared symbols. Adding a
// production twice is a no-op. Returns false if p has already been present.
func (b *Builder) Add(p Production) bool {
	if !b.g.symbols.Resolve(p.Head).isNonTerminal() {
		b.errs = multierr.Append(b.errs,
			fmt.Errorf("head %q of production %v is not a declared non-terminal", p.Head, p))
	}
	for _, sym := range p.Body {
		if b.g.symbols.Resolve(sym) == Undeclared {
			b.errs = multierr.Append(b.errs,
				fmt.Errorf("symbol %q in production %v is not declared", sym, p))
		}
	}
	return b.g.add(p)
}

func (k Kind) isNonTerminal() bool {
	return k&NonTerminal != 0
}

// Grammar returns the grammar built so far, after checking its structural
// invariants. An empty production set is not an error here (transformations
// may legitimately end up with one), use Validate for input grammars.
//
// The builder may be used further; the grammar returned will not be affected.
func (b *Builder) Grammar() (*Grammar, error) {
	g := b.snapshot()
	if b.errs != nil {
		return nil, wrapMalformed(g.name, b.errs)
	}
	if err := g.checkSymbols(); err != nil {
		return nil, err
	}
	tracer().Debugf("built grammar %s with %d productions", g.name, len(g.rules))
	return g, nil
}

func (b *Builder) snapshot() *Grammar {
	g := emptyGrammar(b.g.name)
	g.symbols = b.g.symbols.copy()
	g.start = b.g.start
	for _, p := range b.g.rules {
		g.add(p)
	}
	return g
}

// --- Rules -----------------------------------------------------------------

// RuleBuilder is a builder type for a single rule, started with Builder.LHS.
type RuleBuilder struct {
	b    *Builder
	head string
	body []string
}

// N appends a non-terminal to the body of the rule.
func (r *RuleBuilder) N(name string) *RuleBuilder {
	r.b.declare(name, NonTerminal)
	r.body = append(r.body, name)
	return r
}

// T appends a terminal to the body of the rule.
func (r *RuleBuilder) T(name string) *RuleBuilder {
	r.b.declare(name, Terminal)
	r.body = append(r.body, name)
	return r
}

// Body appends already declared symbols to the body of the rule.
func (r *RuleBuilder) Body(symbols ...string) *RuleBuilder {
	r.body = append(r.body, symbols...)
	return r
}

// End closes the rule and adds it to the grammar.
func (r *RuleBuilder) End() Production {
	p := Production{Head: r.head, Body: r.body}
	r.b.Add(p)
	return p
}

// Epsilon sets the body of the rule to be empty and adds it to the grammar.
// Symbols appended before are discarded.
func (r *RuleBuilder) Epsilon() Production {
	r.body = nil
	return r.End()
}
