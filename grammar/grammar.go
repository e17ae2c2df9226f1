package grammar

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// --- Productions -----------------------------------------------------------

// Production is a grammar rule: a head non-terminal and an ordered body of
// symbols. An empty body denotes an epsilon-production.
type Production struct {
	Head string
	Body []string
}

// IsEpsilon is a predicate: does this production derive the empty string directly?
func (p Production) IsEpsilon() bool {
	return len(p.Body) == 0
}

// key identifies a production by head and body. Symbols never contain 0-bytes,
// which is checked during validation.
func (p Production) key() string {
	return p.Head + "\x00" + strings.Join(p.Body, "\x00")
}

func (p Production) clone() Production {
	return Production{Head: p.Head, Body: append(make([]string, 0, len(p.Body)), p.Body...)}
}

func (p Production) String() string {
	return fmt.Sprintf("%s → %s", p.Head, bodyString(p.Body))
}

func bodyString(body []string) string {
	if len(body) == 0 {
		return "ε"
	}
	return strings.Join(body, " ")
}

// --- Grammars --------------------------------------------------------------

// Grammar is an immutable context-free grammar. Create one with a Builder or
// from a Spec. All accessors return copies; a grammar never changes after it
// has been handed out.
type Grammar struct {
	name    string
	symbols *SymbolTable
	rules   []Production   // in insertion order, without duplicates
	index   map[string]int // production key -> position in rules
	start   string
}

func emptyGrammar(name string) *Grammar {
	return &Grammar{
		name:    name,
		symbols: NewSymbolTable(),
		index:   make(map[string]int),
	}
}

// add appends a production, ignoring duplicates. Returns false for a duplicate.
func (g *Grammar) add(p Production) bool {
	k := p.key()
	if _, dup := g.index[k]; dup {
		return false
	}
	g.index[k] = len(g.rules)
	g.rules = append(g.rules, p.clone())
	return true
}

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Start returns the start symbol.
func (g *Grammar) Start() string {
	return g.start
}

// NonTerminals returns the declared non-terminals, sorted.
func (g *Grammar) NonTerminals() []string {
	return g.symbols.NonTerminals()
}

// Terminals returns the declared terminals, sorted.
func (g *Grammar) Terminals() []string {
	return g.symbols.Terminals()
}

// Kind returns the declared kind of a symbol.
func (g *Grammar) Kind(name string) Kind {
	return g.symbols.Resolve(name)
}

// IsTerminal is a predicate for symbols declared as terminals.
func (g *Grammar) IsTerminal(name string) bool {
	return g.symbols.Resolve(name) == Terminal
}

// IsNonTerminal is a predicate for symbols declared as non-terminals.
func (g *Grammar) IsNonTerminal(name string) bool {
	return g.symbols.Resolve(name) == NonTerminal
}

// Declares is a predicate: is name a symbol of this grammar (of any kind)?
func (g *Grammar) Declares(name string) bool {
	return g.symbols.Resolve(name) != Undeclared
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Productions returns a copy of all productions, in insertion order.
func (g *Grammar) Productions() []Production {
	prods := make([]Production, len(g.rules))
	for i, p := range g.rules {
		prods[i] = p.clone()
	}
	return prods
}

// Production returns production no. i. Panics if i is out of range.
func (g *Grammar) Production(i int) Production {
	return g.rules[i].clone()
}

// ProductionsFor returns a copy of all productions with a given head.
func (g *Grammar) ProductionsFor(head string) []Production {
	var prods []Production
	for _, p := range g.rules {
		if p.Head == head {
			prods = append(prods, p.clone())
		}
	}
	return prods
}

// Has is a predicate: does the grammar contain the production head → body?
func (g *Grammar) Has(head string, body ...string) bool {
	_, ok := g.index[Production{Head: head, Body: body}.key()]
	return ok
}

// EachProduction calls f for every production, in insertion order.
// The production handed to f is a copy.
func (g *Grammar) EachProduction(f func(i int, p Production)) {
	for i, p := range g.rules {
		f(i, p.clone())
	}
}

// OnRHS is a predicate: does symbol appear in the body of any production?
func (g *Grammar) OnRHS(symbol string) bool {
	for _, p := range g.rules {
		for _, sym := range p.Body {
			if sym == symbol {
				return true
			}
		}
	}
	return false
}

// Heads returns all non-terminals that head at least one production, with the
// start symbol first and the others in order of their first appearance.
func (g *Grammar) Heads() []string {
	seen := map[string]bool{}
	var heads []string
	if g.start != "" {
		for _, p := range g.rules {
			if p.Head == g.start {
				heads = append(heads, g.start)
				seen[g.start] = true
				break
			}
		}
	}
	for _, p := range g.rules {
		if !seen[p.Head] {
			seen[p.Head] = true
			heads = append(heads, p.Head)
		}
	}
	return heads
}

// --- Fingerprints ----------------------------------------------------------

// Fingerprint returns a structural hash of the grammar. Two grammars have the
// same fingerprint iff they declare the same symbols, have the same start
// symbol and the same set of productions, regardless of production order and
// of the grammars' names.
func (g *Grammar) Fingerprint() string {
	prods := make([]string, len(g.rules))
	for i, p := range g.rules {
		prods[i] = p.key()
	}
	sort.Strings(prods)
	shape := struct {
		Start        string
		NonTerminals []string
		Terminals    []string
		Productions  []string
	}{g.start, g.NonTerminals(), g.Terminals(), prods}
	h, err := structhash.Hash(shape, 1)
	if err != nil { // cannot happen for this struct
		panic(fmt.Sprintf("grammar fingerprint: %v", err))
	}
	return h
}

// --- Output ----------------------------------------------------------------

// String renders the grammar one line per head, alternatives separated by '|':
//
//    S → a B | b
//    B → b
//
func (g *Grammar) String() string {
	var b bytes.Buffer
	for i, head := range g.Heads() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(head)
		b.WriteString(" →")
		first := true
		for _, p := range g.rules {
			if p.Head != head {
				continue
			}
			if !first {
				b.WriteString(" |")
			}
			first = false
			b.WriteByte(' ')
			b.WriteString(bodyString(p.Body))
		}
	}
	return b.String()
}

// Dump is a debugging helper, tracing all productions at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s, start = %s ---------", g.name, g.start)
	for i, p := range g.rules {
		tracer().Debugf("%3d: [%s] ::= %v", i, p.Head, p.Body)
	}
	tracer().Debugf("-------------------------")
}
