// Package upstream contains the HTTP adapters for the third-party APIs this
// relay fronts. The base Client handles transport concerns (pooling,
// timeouts, typed error mapping); the lastfm and discord subpackages add
// endpoint methods and normalize each upstream's loosely-typed JSON into the
// relay's stable response contract.
package upstream
