/*
Package category implements the syntactic side of signs.

Categories are built from half-categories. A half-category describes one edge
of a span: the root of the chord, relative to the key, and the tonal functions
it may take (tonic, dominant, subdominant). An atomic category carries the
half-categories of both edges, a complex category maps an argument
half-category to a result half-category:

    I^T            tonic, both edges identical
    I^T-V^D        starting on the tonic, ending on the dominant
    V^D/I^T        dominant, looking for a tonic resolution to the right
    V^D/{c}I^T     the same, as a cadence (slash modality 'c')
    bII^D\IV^S     a backward slash

Complex categories never nest; higher-order categories are not
representable.

A Sign pairs a category with a logical form and keeps some book-keeping
for the chart: the rules already tried on it and its derivation trace.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package category

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.category'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.category")
}
