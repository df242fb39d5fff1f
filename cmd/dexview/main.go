// Package main provides the entry point for the dexview CLI.
//
// dexview browses the public creature catalog from a terminal: it pages
// through the catalog, searches it by name prefix, shows assembled detail
// views and exports the catalog to a local SQLite archive.
//
// Usage:
//
//	dexview list --pages 2
//	dexview search char
//	dexview show pikachu --markdown
//	dexview browse
//
// See --help for all available options.
package main

func main() {
	Execute()
}
