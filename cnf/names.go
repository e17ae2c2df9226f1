package cnf

import (
	"strconv"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/grammar"
)

// MaxNameAttempts bounds the number of candidates a NameGen tries for a single
// fresh name before giving up with a chomsky.NameCollision error.
const MaxNameAttempts = 1 << 16

// Default prefixes for generated non-terminals.
const (
	DefaultTerminalPrefix = "T" // T → t, introduced by ReplaceTerminals
	DefaultChainPrefix    = "X" // chain links, introduced by Binarize
)

// NameGen generates fresh non-terminal names for a single conversion run.
// A generated name never collides with a symbol of any grammar reserved with
// the generator, nor with a name generated before.
//
// NameGen is not safe for concurrent use. Create a new one for every run.
type NameGen struct {
	taken          map[string]bool
	counters       map[string]int
	terminalPrefix string
	chainPrefix    string
}

// NewNameGen creates a name generator, reserving all symbols of g.
// g may be nil.
func NewNameGen(g *grammar.Grammar) *NameGen {
	ng := &NameGen{
		taken:          make(map[string]bool),
		counters:       make(map[string]int),
		terminalPrefix: DefaultTerminalPrefix,
		chainPrefix:    DefaultChainPrefix,
	}
	ng.ReserveAll(g)
	return ng
}

// WithPrefixes sets the prefixes for terminal wrappers and chain links.
// Empty prefixes leave the current setting untouched.
func (ng *NameGen) WithPrefixes(terminal, chain string) *NameGen {
	if terminal != "" {
		ng.terminalPrefix = terminal
	}
	if chain != "" {
		ng.chainPrefix = chain
	}
	return ng
}

// Reserve marks names as taken.
func (ng *NameGen) Reserve(names ...string) {
	for _, n := range names {
		ng.taken[n] = true
	}
}

// ReserveAll marks all symbols of g as taken. Stages call this on their input,
// so a generator may be shared by stages applied in any order.
func (ng *NameGen) ReserveAll(g *grammar.Grammar) {
	if g == nil {
		return
	}
	ng.Reserve(g.NonTerminals()...)
	ng.Reserve(g.Terminals()...)
}

// Taken is a predicate: has name been reserved or generated?
func (ng *NameGen) Taken(name string) bool {
	return ng.taken[name]
}

// Fresh returns base, if it is not taken, and base1, base2, … otherwise.
// The name returned is reserved.
func (ng *NameGen) Fresh(base string) (string, error) {
	if !ng.taken[base] {
		ng.taken[base] = true
		return base, nil
	}
	for i := 1; i <= MaxNameAttempts; i++ {
		candidate := base + strconv.Itoa(i)
		if !ng.taken[candidate] {
			ng.taken[candidate] = true
			return candidate, nil
		}
	}
	return "", chomsky.Errorf(chomsky.NameCollision,
		"no fresh name derived from %q within %d attempts", base, MaxNameAttempts)
}

// Next returns prefix1, prefix2, … with a counter per prefix, skipping names
// which are taken. The name returned is reserved.
func (ng *NameGen) Next(prefix string) (string, error) {
	for i := 0; i < MaxNameAttempts; i++ {
		ng.counters[prefix]++
		candidate := prefix + strconv.Itoa(ng.counters[prefix])
		if !ng.taken[candidate] {
			ng.taken[candidate] = true
			return candidate, nil
		}
	}
	return "", chomsky.Errorf(chomsky.NameCollision,
		"no fresh name with prefix %q within %d attempts", prefix, MaxNameAttempts)
}

// forTerminal returns a fresh name for a non-terminal deriving terminal t.
// Terminals with plain alphanumeric names lend them to the non-terminal (Ta for a),
// others get a numbered name.
func (ng *NameGen) forTerminal(t string) (string, error) {
	if isAlphanumeric(t) {
		return ng.Fresh(ng.terminalPrefix + t)
	}
	return ng.Next(ng.terminalPrefix)
}

// forChain returns a fresh name for a link in a chain of binary productions.
func (ng *NameGen) forChain() (string, error) {
	return ng.Next(ng.chainPrefix)
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}
