/*
Package dremel implements the record shredding and assembly core of
the Dremel columnar storage model: compiling a nested, repeated record
schema into a tree of column descriptors, decomposing records into
per-leaf columns of (value, repetition level, definition level)
triples, and reconstructing records from a selected subset of those
columns.

Schema

ParseSchema compiles an ordered list of dotted field paths, with `[*]`
marking repeated segments, into a Schema tree.

Shredding

Shred walks a schema and a slice of Records, producing a Columns map
from leaf to triple stream.

Assembly

BuildFSM precomputes the column-to-column transition table for a
schema (and an optional leaf selection); Assemble drives that table to
reconstruct records from columnar triples.

This package performs no I/O, physical page encoding, or query
planning; see spec.md for the full specification this package
implements.
*/
package dremel
