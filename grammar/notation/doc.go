/*
Package notation reads and writes grammars in a small textual notation.

Every rule is written on a line of its own (or terminated by ';'), alternatives
separated by '|':

    # a grammar for balanced parentheses
    S  -> '(' S ')' S | ε

Arrows may be written as '->', '→' or '::='. The empty string is denoted by
'ε', by '%empty' or by an empty alternative. Symbols are identifiers
(letters, digits and underscores) or quoted strings. A symbol is a
non-terminal iff it is the head of a rule; quoted symbols always are terminals.
The head of the first rule is the start symbol.

In compact mode (option Compact), identifiers in rule bodies are split into
single-character symbols, i.e. `S -> aSb` reads as `S -> a S b`.

Format writes a grammar in this notation.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package notation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.notation'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.notation")
}
