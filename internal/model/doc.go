// Package model defines the core data structures used throughout dexview.
//
// This package contains the following main types:
//   - CatalogEntry: one row of a catalog listing (name + detail URL)
//   - CreatureRecord: the full record behind a detail URL
//   - SpeciesInfo: egg groups and the evolution-chain reference
//   - EvolutionNode / EvolutionStep: the lineage tree and its flattened form
//   - DetailView: display-ready summary fields assembled for one record
//   - ListItem: what a single list row shows
//
// Models live in their own package because the fetcher, pager, search engine,
// detail assembler and renderers all exchange them; keeping them here avoids
// import cycles. All types are plain data and serialize to JSON.
package model
