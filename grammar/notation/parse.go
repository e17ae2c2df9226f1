package notation

import (
	"fmt"
	"strings"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/grammar"
)

// Option configures the parser.
type Option func(p *parser)

// Compact sets or clears compact mode: identifiers in rule bodies are split
// into single-character symbols.
func Compact(b bool) Option {
	return func(p *parser) {
		p.compact = b
	}
}

// item is a symbol occurrence in a rule body, before classification.
type item struct {
	name   string
	quoted bool
}

type rule struct {
	head string
	alts [][]item
	line int
}

type parser struct {
	tokens  []token
	pos     int
	compact bool
	rules   []rule
}

// Parse reads a grammar in textual notation. Syntax errors and conflicting
// symbol usage are reported as chomsky.MalformedGrammar, input without any
// rule as chomsky.EmptyGrammar.
func Parse(name string, input string, opts ...Option) (*grammar.Grammar, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, chomsky.Wrap(chomsky.MalformedGrammar, err, "cannot read grammar "+name)
	}
	p := &parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.parseRules(); err != nil {
		return nil, chomsky.Wrap(chomsky.MalformedGrammar, err, "cannot read grammar "+name)
	}
	if len(p.rules) == 0 {
		return nil, chomsky.Errorf(chomsky.EmptyGrammar, "grammar %s contains no rules", name)
	}
	return p.build(name)
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind int) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("line %d: expected %s, found %v", t.line, tokenNames[kind], t)
	}
	return t, nil
}

// rules  ::= { EOL } [ rule { EOL { EOL } rule } ] { EOL }
func (p *parser) parseRules() error {
	for {
		for p.peek().kind == tokEOL {
			p.next()
		}
		if p.peek().kind == tokEOF {
			return nil
		}
		r, err := p.parseRule()
		if err != nil {
			return err
		}
		p.rules = append(p.rules, r)
		if t := p.next(); t.kind != tokEOL && t.kind != tokEOF {
			return fmt.Errorf("line %d: unexpected %v", t.line, t)
		}
	}
}

// rule ::= IDENT ARROW alt { '|' alt }
func (p *parser) parseRule() (rule, error) {
	head, err := p.expect(tokIdent)
	if err != nil {
		return rule{}, err
	}
	if _, err = p.expect(tokArrow); err != nil {
		return rule{}, err
	}
	r := rule{head: head.lexeme, line: head.line}
	for {
		alt, err := p.parseAlt()
		if err != nil {
			return rule{}, err
		}
		r.alts = append(r.alts, alt)
		if p.peek().kind != tokBar {
			return r, nil
		}
		p.next()
	}
}

// alt ::= ε | { IDENT | QUOTED }
func (p *parser) parseAlt() ([]item, error) {
	if p.peek().kind == tokEmpty {
		p.next()
		if k := p.peek().kind; k != tokBar && k != tokEOL && k != tokEOF {
			t := p.peek()
			return nil, fmt.Errorf("line %d: ε must stand alone, found %v", t.line, t)
		}
		return nil, nil
	}
	var alt []item
	for {
		t := p.peek()
		switch t.kind {
		case tokIdent:
			p.next()
			if p.compact {
				for _, r := range t.lexeme {
					alt = append(alt, item{name: string(r)})
				}
			} else {
				alt = append(alt, item{name: t.lexeme})
			}
		case tokQuoted:
			p.next()
			sym := t.lexeme[1 : len(t.lexeme)-1]
			if sym == "" {
				return nil, fmt.Errorf("line %d: empty quoted symbol", t.line)
			}
			alt = append(alt, item{name: sym, quoted: true})
		case tokArrow:
			return nil, fmt.Errorf("line %d: rule terminator missing before %v", t.line, t)
		default:
			return alt, nil
		}
	}
}

// build classifies symbols and constructs the grammar. Heads of rules are
// non-terminals, all other symbols are terminals.
func (p *parser) build(name string) (*grammar.Grammar, error) {
	heads := make(map[string]bool, len(p.rules))
	for _, r := range p.rules {
		heads[r.head] = true
	}
	b := grammar.NewBuilder(name)
	for _, r := range p.rules {
		for _, alt := range r.alts {
			rb := b.LHS(r.head)
			for _, it := range alt {
				if !it.quoted && heads[it.name] {
					rb.N(it.name)
				} else {
					rb.T(it.name)
				}
			}
			rb.End()
		}
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Infof("read grammar %s with %d productions, start symbol %s", name, g.Size(), g.Start())
	return g, nil
}

// ParseLines is a convenience function to read a grammar from rules given as
// separate strings.
func ParseLines(name string, lines ...string) (*grammar.Grammar, error) {
	return Parse(name, strings.Join(lines, "\n"))
}
