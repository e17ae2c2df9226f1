/*
Package chomsky is a toolbox for transforming context-free grammars into
Chomsky Normal Form (CNF).

Package structure is as follows:

■ grammar: Package grammar implements an immutable grammar model, a grammar builder,
validation of structural invariants and a JSON/YAML exchange format.

■ grammar/notation: Package notation reads and writes grammars in a small textual
notation (`S -> a S | ε`).

■ cnf: Package cnf implements the conversion engine, a fixed pipeline of
transformation stages (START, DEL, UNIT, TERM, BIN).

■ server: Package server is a thin HTTP shell around the engine, offering a
`/convert` endpoint.

■ config: Package config loads configuration for the hosting shells.

The base package contains the error type which is used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chomsky
