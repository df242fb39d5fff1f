// Package tor runs an embedded Tor daemon whose SOCKS5 port the catalog
// client can dial through.
//
// The daemon is managed by tornago. Starting it bootstraps a circuit into
// the Tor network, which usually takes one to three minutes; callers pass
// the resulting SocksAddr to the HTTP transport as a regular SOCKS5 proxy.
package tor
