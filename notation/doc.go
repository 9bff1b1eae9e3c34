/*
Package notation reads signs, categories and logical forms from their
string notation. Strings produced by the String methods of package category
and package semantics read back into structurally equal values.

Categories:

    I^T           atomic category, equal edges
    I^T-V^D|S     atomic category, different edges; functions separated by '|'
    V^D/{c}I^T    complex category, forward slash with cadence modality
    #IV^S\I^T     complex category, backward slash
    *             dummy category

Logical forms:

    $x0                 variable (the index defaults to 0)
    \$x0,$y0.E          abstractions
    (F A B)             application, left-associative
    leftonto(E)         predicates; now@3(E) is a timed predicate
    <1,2>  <(1,2)/(0,-1)>@4
                        tonal space points, optionally timed
    [E, E]              paths
    E+E  E&E            concatenation and coordination
    foo                 literals

A sign is written as "category : logical form".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package notation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.notation'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.notation")
}
