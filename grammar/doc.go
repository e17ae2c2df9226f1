/*
Package grammar implements a model for context-free grammars.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions. The head of the first rule is the start
symbol, unless set explicitly.

Example:

    b := grammar.NewBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d").End()            // D  ->  d
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S] ::= [A a]
   1: [A] ::= [B D]
   2: [B] ::= [b]
   3: [B] ::= []
   4: [D] ::= [d]

Grammars are immutable values. Transformations derive a fresh builder from an
existing grammar (see Derive) and produce a new grammar, never touching their input.

Exchange Format

Grammars travel as a Spec, which carries explicit lists of non-terminals and
terminals, a list of productions and a start symbol. Specs are decorated for
JSON and YAML. Converting a Spec into a Grammar is strict: every symbol must be
declared, and the structural invariants are checked before a grammar is handed out.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.grammar")
}
