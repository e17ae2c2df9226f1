/*
Package server hosts the CNF converter as an HTTP service.

Endpoints:

    POST /convert   body: grammar in exchange format, or {"grammar": …}
                    200 {"cnf": …}, with ?steps=true also {"steps": […]}
                    400 undecodable body, 413 body too large,
                    422 grammar rejected by the converter
    GET  /status    {"version": …, "conversions": n, "failures": m}
    GET  /metrics   Prometheus metrics

Errors are reported as

    {"error": {"kind": "MalformedGrammar", "message": "…"}}

Every request gets an ID, which is returned in header X-Request-ID and
attached to all tracing output for the request.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package server

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.server'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.server")
}
