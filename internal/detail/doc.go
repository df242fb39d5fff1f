// Package detail assembles the detail panel for one record.
//
// BuildDetailView runs four steps through a pipeline.Pipeline:
//
//  1. species:   fetch the record's species (egg groups, evolution chain URL)
//  2. abilities: fetch every ability name concurrently, kept in slot order
//  3. summary:   derive the display strings (number, name, types, measures)
//  4. evolution: fetch the evolution tree and flatten it for display
//
// By default a failing step aborts the build. With WithLenient the
// remaining steps still run and the fields of the failed step stay empty.
//
// FlattenEvolutionChain and ArtworkURL are pure helpers usable on their own.
package detail
