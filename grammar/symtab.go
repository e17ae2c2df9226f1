package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// Symbols of a grammar are plain names. Which namespace a name belongs to is
// recorded in a symbol table, owned by a grammar.

// Kind classifies a symbol. Kinds are bit flags: a name declared both as a
// terminal and as a non-terminal carries both bits, which is an invariant
// violation detected during validation.
type Kind int8

// Symbol kinds.
const (
	Undeclared  Kind = 0
	Terminal    Kind = 1 << 0
	NonTerminal Kind = 1 << 1
)

func (k Kind) String() string {
	switch k {
	case Undeclared:
		return "undeclared"
	case Terminal:
		return "terminal"
	case NonTerminal:
		return "non-terminal"
	}
	return "ambiguous"
}

// === Symbol Tables =========================================================

// SymbolTable stores the declared symbols of a grammar (map-like semantics),
// keeping terminals and non-terminals in sorted sets for deterministic iteration.
type SymbolTable struct {
	kinds        map[string]Kind
	terminals    *treeset.Set
	nonterminals *treeset.Set
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		kinds:        make(map[string]Kind),
		terminals:    treeset.NewWithStringComparator(),
		nonterminals: treeset.NewWithStringComparator(),
	}
}

// Resolve checks for a symbol in the table.
// Returns its kind, which is Undeclared for unknown names.
func (t *SymbolTable) Resolve(name string) Kind {
	return t.kinds[name]
}

// Define declares a symbol of a given kind. Re-declaring a symbol with the same
// kind is a no-op. Declaring a name with a different kind marks it as ambiguous.
// Returns the kind previously stored for this name.
func (t *SymbolTable) Define(name string, kind Kind) Kind {
	old := t.kinds[name]
	t.kinds[name] = old | kind
	if kind&Terminal != 0 {
		t.terminals.Add(name)
	}
	if kind&NonTerminal != 0 {
		t.nonterminals.Add(name)
	}
	return old
}

// Size counts the symbols in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.kinds)
}

// Terminals returns all terminals, sorted.
func (t *SymbolTable) Terminals() []string {
	return asStrings(t.terminals.Values())
}

// NonTerminals returns all non-terminals, sorted.
func (t *SymbolTable) NonTerminals() []string {
	return asStrings(t.nonterminals.Values())
}

// Ambiguous returns all symbols which have been declared as terminal and as
// non-terminal, sorted.
func (t *SymbolTable) Ambiguous() []string {
	var amb []string
	it := t.terminals.Iterator()
	for it.Next() {
		if t.nonterminals.Contains(it.Value()) {
			amb = append(amb, it.Value().(string))
		}
	}
	return amb
}

// Each iterates over each symbol in the table in sorted order, non-terminals
// first, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, Kind)) {
	for _, nt := range t.NonTerminals() {
		mapper(nt, t.kinds[nt])
	}
	for _, term := range t.Terminals() {
		if t.kinds[term] == Terminal { // ambiguous ones have been visited
			mapper(term, Terminal)
		}
	}
}

// copy creates an independent copy of a symbol table.
func (t *SymbolTable) copy() *SymbolTable {
	c := NewSymbolTable()
	for name, kind := range t.kinds {
		c.Define(name, kind)
	}
	return c
}

func asStrings(values []interface{}) []string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = v.(string)
	}
	return s
}
