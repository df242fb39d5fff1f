// Package database writes export archives to SQLite.
//
// An Archive is an output artifact of the export command: it stores the
// catalog entries, the fetched records and the assembled detail views of
// one export run. The viewer never reads it back, so it is not a cache.
//
// The driver is modernc.org/sqlite, a CGO-free SQLite implementation.
package database
