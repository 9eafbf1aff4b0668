// Package cli provides the interactive FitSupply command-line storefront.
//
// It wires configuration, the local session database, the REST API client,
// and the four state stores (auth, catalog, cart, orders) into a REPL.
// Typical flow: restore the previous session from disk, revalidate it
// against the server, and execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout with persisted sessions
//   - Browse, search, and filter the product catalog
//   - Cart management backed by the server-side cart
//   - Checkout with idempotent order submission
//   - Order history and profile editing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
