// Package ast defines the generic TAL syntax tree emitted by the hybrid
// assembler.
//
// A Node carries a closed Kind, a display text (first line of its span),
// an original-source line number, a typed attribute payload and its
// children. Every producer in the pipeline builds the same Node shapes, so a
// consumer can tell where a node came from only through Meta.
package ast
