/*
Package cadenza is a chart parser for harmonic analysis with a
combinatory categorial grammar.

Chord sequences are tagged with signs, i.e. pairs of a syntactic category and
a lambda-calculus logical form. The parser combines signs with a small set of
combinatory rules and returns the logical forms of derivations spanning the
whole input. Package structure is as follows:

■ semantics: Package semantics implements logical forms as an arena of nodes,
together with alpha-conversion, capture-avoiding beta-reduction and
alpha-equivalence.

■ category: Package category implements half-categories, atomic and complex
categories, signs and derivation traces.

■ rules: Package rules implements application, composition, development,
coordination and the lexical repetition rules.

■ chart: Package chart implements the CKY chart and its drivers. An
interactive shell lives in chart/chartrepl.

■ notation, lexicon, tagger: reading signs from strings, storing them in a
lexicon, and assigning them to input chords.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cadenza
