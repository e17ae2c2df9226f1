/*
Command cnfc converts context-free grammars to Chomsky Normal Form.

Usage:

    cnfc convert [--json|--yaml] [--steps] [--prune] file...
    cnfc serve [--addr :8080]
    cnfc repl

Grammar files are read according to their extension: .json and .yaml/.yml
files hold grammars in exchange format, any other file is read in textual
notation:

    # balanced parentheses
    S -> '(' S ')' S | ε

The REPL accepts grammars in textual notation, terminated by an empty line,
and prints their CNF. Commands start with a colon, see ":help".

Global flags --config and --trace select a configuration file and the
trace level.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cli'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cli")
}
