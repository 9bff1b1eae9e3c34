/*
Package lexicon stores the lexical signs of the grammar.

Signs are grouped into families. A family lists the chord types it is
responsible for ("", "7", "m7", …) and the signs a chord of one of these types
may carry. Categories and logical forms of lexical signs are given relative
to the root of the chord; package tagger makes them absolute.

Families are defined in scopes. The global scope holds the standard
lexicon, variants are child scopes overriding some of its families. Names
are resolved by searching a scope and then its ancestors.

Lexicons are read from YAML:

    families:
      - name: Tonic
        chords: ["", "M7", "6"]
        signs:
          - "I^T : [<0,0>]"
    variants:
      - name: plagal
        families:
          - …

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexicon

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.lexicon'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.lexicon")
}
