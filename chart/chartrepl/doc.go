/*
Package chartrepl/main provides an interactive command line tool for
harmonic analysis with the chart parser. Users enter chord sequences like

    Dm7 G7 C

and may inspect the resulting chart cell by cell, look at derivations,
and dump charts to YAML files or load them back.

Commands start with a colon; lines without a colon are parsed as chord
sequences. Enter ":help" for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.chartrepl'
func tracer() tracing.Trace {
	return tracing.Select("cadenza.chartrepl")
}
