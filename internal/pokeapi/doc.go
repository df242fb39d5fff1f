// Package pokeapi fetches catalog data from a PokeAPI v2 compatible service.
//
// The Client translates listing queries and resource URLs into the plain
// records of the model package. It never caches: each call is one GET.
//
// # Endpoints
//
//   - listing:   {base}/pokemon?offset=N&limit=M -> []model.CatalogEntry
//   - record:    absolute URL from a listing     -> *model.CreatureRecord
//   - species:   record.SpeciesURL               -> *model.SpeciesInfo
//   - ability:   one URL per ability             -> ability name
//   - evolution: species.EvolutionChainURL       -> *model.EvolutionNode tree
//
// # Errors
//
// Transport failures are returned wrapped. A non-2xx response yields a
// *StatusError (matching ErrUnexpectedStatus); a body that is not the
// expected JSON shape yields an error matching ErrMalformedResponse.
// Optional nested fields that are absent (for example an icon generation
// the service does not provide) degrade to empty strings.
package pokeapi
