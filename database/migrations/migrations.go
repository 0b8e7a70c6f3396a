// Package migrations registers the storefront schema migrations. It is
// blank-imported by cmd/storefront so every migration is known at startup.
package migrations
