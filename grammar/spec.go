package grammar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/npillmayer/chomsky"
	"gopkg.in/yaml.v3"
)

// Spec is the exchange format for grammars, suitable for JSON and YAML:
//
//    {
//      "nonterminals": ["S"],
//      "terminals":    ["a"],
//      "productions":  [ {"head": "S", "body": ["a", "S"]}, {"head": "S", "body": []} ],
//      "start":        "S"
//    }
//
type Spec struct {
	Name         string           `json:"name,omitempty" yaml:"name,omitempty"`
	NonTerminals []string         `json:"nonterminals" yaml:"nonterminals"`
	Terminals    []string         `json:"terminals" yaml:"terminals"`
	Productions  []ProductionSpec `json:"productions" yaml:"productions"`
	Start        string           `json:"start" yaml:"start"`
}

// ProductionSpec is the exchange format of a single production.
// An empty or missing body denotes an epsilon-production.
type ProductionSpec struct {
	Head string   `json:"head" yaml:"head"`
	Body []string `json:"body" yaml:"body,flow"`
}

// Spec returns the exchange representation of g. Symbol lists are sorted,
// productions keep their order. Bodies are never nil, so that epsilon
// productions encode as an empty JSON array.
func (g *Grammar) Spec() Spec {
	s := Spec{
		Name:         g.name,
		NonTerminals: g.NonTerminals(),
		Terminals:    g.Terminals(),
		Productions:  make([]ProductionSpec, len(g.rules)),
		Start:        g.start,
	}
	for i, p := range g.rules {
		s.Productions[i] = ProductionSpec{
			Head: p.Head,
			Body: append(make([]string, 0, len(p.Body)), p.Body...),
		}
	}
	return s
}

// FromSpec creates a grammar from its exchange representation. Conversion is
// strict: symbols are not declared implicitly, and the resulting grammar has to
// pass Validate. Duplicate productions are silently merged.
func FromSpec(s Spec) (*Grammar, error) {
	name := s.Name
	if name == "" {
		name = "G"
	}
	g := emptyGrammar(name)
	for _, nt := range s.NonTerminals {
		g.symbols.Define(nt, NonTerminal)
	}
	for _, t := range s.Terminals {
		g.symbols.Define(t, Terminal)
	}
	g.start = s.Start
	for _, p := range s.Productions {
		g.add(Production{Head: p.Head, Body: p.Body})
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// --- JSON and YAML ---------------------------------------------------------

// MarshalJSON encodes a grammar in its exchange representation.
func (g *Grammar) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Spec())
}

// ReadJSON decodes a grammar in exchange representation from r.
// Decoding failures are reported as chomsky.MalformedGrammar.
func ReadJSON(r io.Reader) (*Grammar, error) {
	var s Spec
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, chomsky.Wrap(chomsky.MalformedGrammar, err, "cannot decode JSON grammar")
	}
	return FromSpec(s)
}

// ReadYAML decodes a grammar in exchange representation from r.
// Decoding failures are reported as chomsky.MalformedGrammar.
func ReadYAML(r io.Reader) (*Grammar, error) {
	var s Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, chomsky.Wrap(chomsky.MalformedGrammar, err, "cannot decode YAML grammar")
	}
	return FromSpec(s)
}

// WriteYAML encodes g in exchange representation to w.
func WriteYAML(g *Grammar, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.Spec()); err != nil {
		return fmt.Errorf("cannot encode grammar %q: %w", g.name, err)
	}
	return enc.Close()
}
