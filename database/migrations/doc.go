// Package migrations holds the schema migrations for the application.
//
// Each migration registers itself with the pkg/migration registry in an
// init() func, so importing this package for side effects is enough to make
// the full set available to the CLI.
package migrations
