// Package http implements the read-only JSON API over a loaded season.
// Handlers stay thin: they decode and validate query parameters, call the
// stats service, and wrap the result in the shared success envelope.
//
// # Routes
//
// DatasetHandler is mounted at /api/datasets and serves, for {kind} in
// regular or playoff:
//
//	GET /{kind}/table?n=20
//	GET /{kind}/summary
//	GET /{kind}/top?stat=PTS&n=10&order=desc&dedup=true
//	GET /{kind}/teams/averages?stat=PTS
//	GET /{kind}/teams/efficiency
//	GET /{kind}/histogram?stat=PTS&bins=20
//	GET /{kind}/impact?n=15
//	GET /{kind}/radar?n=5
//	GET /{kind}/shooting?n=20
//	GET /{kind}/league
//	GET /{kind}/players
//	GET /{kind}/players/{name}
//	GET /{kind}/players/{name}/shots?n=50
//
// HealthHandler serves /healthz, /readyz, /livez and /version, and
// MetricsHandler serves /metrics.
//
// # Responses
//
// Successful responses share one envelope:
//
//	{"status": "success", "data": ..., "count": 3}
//
// Shot charts are fabricated from shooting percentages and carry
// "synthetic": true inside data.
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/not-found",
//	    "title": "Not Found",
//	    "status": 404,
//	    "detail": "dataset not found",
//	    "instance": "/api/datasets/preseason/table",
//	    "error_code": "NOT_FOUND"
//	}
//
// An unknown dataset or player is 404. An unknown stat column or a bad
// query parameter is 400.
package http
