/*
Package semantics implements logical forms, i.e. the lambda-calculus
expressions attached to signs.

A logical form lives in an arena owned by a Semantics value. Nodes are addressed
by NodeID and every node knows the index of its parent. Rewriting operations
never hold on to a node across a replacement: replacing a node means updating
the child slot of its parent and the parent index of the replacement in one step.
Nodes which have been replaced stay in the arena as garbage until the next Copy.

Node kinds form a closed set:

    Variable      $x0
    Lambda        \$x0.E   (nested abstractions print as \$x0,$y0.E)
    Application   (F A)    (predicates print as leftonto(A))
    Literal       foo
    Predicate     leftonto, rightonto, now@3
    Coordinate    <1,2> or <(1,2)/(0,-1)>, optionally timed as <1,2>@4
    List          [A, B]
    ListCat       A+B
    Coordination  A&B

Predicates and coordinations define their own behaviour when applied to
a path (see type Applier).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package semantics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.semantics'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.semantics")
}
