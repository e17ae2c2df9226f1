package notation

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/chomsky/grammar"
)

// Format writes g in textual notation, one line per head, start symbol first.
// Terminals which are not plain identifiers, or which would be mistaken for a
// non-terminal, are quoted.
//
// The notation cannot express non-terminals with names other than plain
// identifiers; Format returns an error for those.
func Format(w io.Writer, g *grammar.Grammar) error {
	heads := g.Heads()
	isHead := make(map[string]bool, len(heads))
	for _, h := range heads {
		isHead[h] = true
		if !isIdentifier(h) {
			return fmt.Errorf("non-terminal %q cannot be written in notation", h)
		}
	}
	for _, head := range heads {
		var alts []string
		for _, p := range g.ProductionsFor(head) {
			if p.IsEpsilon() {
				alts = append(alts, "ε")
				continue
			}
			syms := make([]string, len(p.Body))
			for i, sym := range p.Body {
				if g.IsTerminal(sym) && (isHead[sym] || !isIdentifier(sym)) {
					if strings.ContainsRune(sym, '\n') ||
						strings.ContainsRune(sym, '\'') && strings.ContainsRune(sym, '"') {
						return fmt.Errorf("terminal %q cannot be written in notation", sym)
					}
					sym = quote(sym)
				}
				syms[i] = sym
			}
			alts = append(alts, strings.Join(syms, " "))
		}
		if _, err := fmt.Fprintf(w, "%s → %s\n", head, strings.Join(alts, " | ")); err != nil {
			return err
		}
	}
	return nil
}

// String returns g in textual notation. Symbols which cannot be written in
// notation are written as they are.
func String(g *grammar.Grammar) string {
	var b strings.Builder
	if err := Format(&b, g); err != nil {
		return g.String()
	}
	return strings.TrimRight(b.String(), "\n")
}

func isIdentifier(s string) bool {
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

func quote(s string) string {
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}
