// Package app wires the stats server together and manages its lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, config.yaml and HOOPS_* variables
//  2. Initialize logging and OpenTelemetry
//  3. Load the regular and playoff datasets concurrently into a snapshot
//  4. Build the stats and health services over the snapshot
//  5. Set up middleware and routes
//  6. Start the HTTP server; shut down gracefully on SIGINT/SIGTERM
//
// Startup fails as a whole if either dataset cannot be loaded; the server
// never runs with a partial season.
//
// # Routes
//
//	GET /healthz, /readyz, /livez, /version
//	GET /metrics
//	GET /api/datasets/{kind}/...
package app
