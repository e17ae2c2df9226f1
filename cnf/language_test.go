package cnf

import (
	"regexp"
	"strings"
	"testing"

	"github.com/npillmayer/chomsky/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// accepts is a CYK recognizer for grammars in CNF.
func accepts(g *grammar.Grammar, w []string) bool {
	n := len(w)
	if n == 0 {
		return g.Has(g.Start())
	}
	prods := g.Productions()
	// table[l-1][i] holds the non-terminals deriving w[i:i+l]
	table := make([][]map[string]bool, n)
	for l := 1; l <= n; l++ {
		table[l-1] = make([]map[string]bool, n-l+1)
		for i := range table[l-1] {
			table[l-1][i] = make(map[string]bool)
		}
	}
	for i, a := range w {
		for _, p := range prods {
			if len(p.Body) == 1 && p.Body[0] == a {
				table[0][i][p.Head] = true
			}
		}
	}
	for l := 2; l <= n; l++ {
		for i := 0; i+l <= n; i++ {
			for k := 1; k < l; k++ {
				left, right := table[k-1][i], table[l-k-1][i+k]
				for _, p := range prods {
					if len(p.Body) == 2 && left[p.Body[0]] && right[p.Body[1]] {
						table[l-1][i][p.Head] = true
					}
				}
			}
		}
	}
	return table[n-1][0][g.Start()]
}

// words enumerates all words over alphabet up to length max.
func words(alphabet []string, max int) [][]string {
	all := [][]string{{}}
	layer := [][]string{{}}
	for l := 1; l <= max; l++ {
		var next [][]string
		for _, w := range layer {
			for _, a := range alphabet {
				v := make([]string, len(w), len(w)+1)
				copy(v, w)
				next = append(next, append(v, a))
			}
		}
		all = append(all, next...)
		layer = next
	}
	return all
}

func matching(pattern string) func([]string) bool {
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	return func(w []string) bool {
		return re.MatchString(strings.Join(w, ""))
	}
}

func balanced(w []string) bool {
	depth := 0
	for _, a := range w {
		if a == "(" {
			depth++
		} else if depth--; depth < 0 {
			return false
		}
	}
	return depth == 0
}

func anbn(w []string) bool {
	n := len(w) / 2
	if len(w)%2 != 0 {
		return false
	}
	for i, a := range w {
		if (i < n && a != "a") || (i >= n && a != "b") {
			return false
		}
	}
	return true
}

func palindrome(w []string) bool {
	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		if w[i] != w[j] {
			return false
		}
	}
	return true
}

func TestConversionPreservesLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	tests := []struct {
		name     string
		src      string
		alphabet []string
		maxLen   int
		member   func([]string) bool
	}{
		{"balanced", "S -> '(' S ')' S | ε", []string{"(", ")"}, 8, balanced},
		{"anbn", "S -> a S b | ε", []string{"a", "b"}, 8, anbn},
		{"palindromes", "S -> a S a | b S b | a | b | ε", []string{"a", "b"}, 7, palindrome},
		{"unit-cycle", "S -> A\nA -> B | a A\nB -> A | b", []string{"a", "b"}, 6, matching("a*b")},
		{"optional", "S -> A B C\nA -> a | ε\nB -> b | ε\nC -> c | ε", []string{"a", "b", "c"}, 4, matching("a?b?c?")},
		{"nullable-inner", "S -> a X b\nX -> X X | c | ε", []string{"a", "b", "c"}, 5, matching("ac*b")},
		{"sums", "E -> E '+' T | T\nT -> x | '(' E ')'", []string{"x", "+"}, 7, matching(`x(\+x)*`)},
		{"epsilon-only", "S -> ε", []string{"a"}, 3, func(w []string) bool { return len(w) == 0 }},
		{"empty-language", "S -> a S", []string{"a"}, 4, func([]string) bool { return false }},
	}
	for _, test := range tests {
		g := mustParse(t, test.src)
		for _, prune := range []bool{false, true} {
			h, err := Convert(g, WithPruning(prune))
			if err != nil {
				t.Fatalf("%s: %v", test.name, err)
			}
			if err := IsCNF(h); err != nil {
				t.Errorf("%s: result not in CNF: %v", test.name, err)
			}
			for _, w := range words(test.alphabet, test.maxLen) {
				if got, want := accepts(h, w), test.member(w); got != want {
					t.Errorf("%s (pruned=%v): word %q accepted = %v, expected %v",
						test.name, prune, strings.Join(w, ""), got, want)
				}
			}
		}
	}
}
