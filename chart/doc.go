/*
Package chart implements a CYK chart parser for combinatory categorial
grammars.

A chart for n input tokens has a cell for every span (start, end) with
0 ≤ start < end ≤ n. Cells hold signs and never hold two structurally
equal signs: inserting a duplicate merges its derivation trace into the
sign already present.

Parsing sweeps the chart bottom-up:

    for end = 1..n
        apply unary rules to (end-1, end)
        for start = end-2 downto 0
            for middle = start+1 .. end-1
                apply binary rules to (start, middle) × (middle, end)
            apply unary rules to (start, end)

Binary rules are applied to groups of signs sharing a category. The
syntactic half of a rule is tried once per group pair; only if it
succeeds are logical forms combined for every pair of signs. Signs
remember the rules tried on them, together with the partner sign, so that
repeated sweeps never combine the same pair twice.

A Parser drives the sweep, asking its tagger for further candidate signs
until enough complete parses are found, the tagger is exhausted or the
time budget runs out. A DirectedParser instead follows a derivation tree
given in advance and applies exactly the rules it prescribes.

Charts can be dumped to YAML and re-loaded for inspection.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chart

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.chart'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.chart")
}
