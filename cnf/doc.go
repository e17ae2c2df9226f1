/*
Package cnf converts context-free grammars into Chomsky Normal Form (CNF).

A grammar is in CNF if every production body is either a single terminal or
exactly two non-terminals. The only exception allowed is a production
S → ε for the start symbol S, which must then not appear on any right-hand
side.

Conversion Pipeline

Conversion is a fixed pipeline of stages, each a pure function from grammar
to grammar:

    START   IsolateStart      start symbol does not appear on any RHS
    DEL     EliminateEpsilon  no ε-productions, except S → ε
    UNIT    EliminateUnits    no productions A → B
    TERM    ReplaceTerminals  terminals appear only in bodies of length 1
    BIN     Binarize          no bodies longer than 2

Stages never modify their input. Each stage may be used by itself, which is
mainly useful for testing. New non-terminals are drawn from a NameGen, which
lives for exactly one conversion run.

Example:

    g, _ := notation.Parse("G", "S -> a S b | ε")
    cnfg, err := cnf.Convert(g)
    fmt.Println(cnfg)

    // Output:
    S0 → ε | Ta X1 | Ta Tb
    X1 → S Tb
    S → Ta X2 | Ta Tb
    X2 → S Tb
    Ta → a
    Tb → b

A Converter may be shared between goroutines; every call to Convert works on
its own state. Resource usage is bounded by Limits rather than by cancellation.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cnf'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cnf")
}
