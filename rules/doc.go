/*
Package rules implements the combinatory rules of the grammar.

Binary rules combine two adjacent signs:

    >     application   X/Y  Y-Z  =>  X-Z
    <     application   W-Y  X\Y  =>  W-X
    >B    composition   X/Y  Y/Z  =>  X/Z
    <B    composition   Y\Z  X\Y  =>  X\Z
    >Bx   composition   X/Y  Y\Z  =>  X\Z
    <Bx   composition   Y/Z  X\Y  =>  X/Z
    <dev> development   W-X  Y-Z  =>  W-Z
    <&>   coordination  X/{c}Y  Z/{c}Y  =>  X/{c}Y

Unary rules expand the lexicon once before parsing starts:

    <rep>   tonic repetition    X^T  =>  X^T/X^T
    <crep>  cadence repetition  X^f/{c}Y  =>  X^f/X^f

A rule which does not apply returns no signs. This is the normal outcome
for most combinations and not an error. Errors are reserved for failures of
semantic rewriting.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rules

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.rules'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.rules")
}
