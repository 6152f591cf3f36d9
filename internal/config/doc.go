// Package config loads the application configuration.
//
// # Configuration Sources
//
// Configuration is assembled in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML file: $HOOPS_CONFIG, config.yaml or configs/config.yaml
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// Variables follow the pattern HOOPS_<SECTION>_<FIELD>:
//
//	HOOPS_SERVER_PORT=8080
//	HOOPS_DATA_REGULAR_SOURCE=https://example.org/regular.csv
//	HOOPS_DATA_PLAYOFF_SOURCE=data/playoff.csv
//	HOOPS_DATA_DELIMITER=;
//	HOOPS_LOGGING_LEVEL=debug
//	HOOPS_TELEMETRY_ENABLE_TRACING=true
//
// # File Format
//
//	server:
//	  port: 8080
//	data:
//	  regular_source: data/regular.csv
//	  playoff_source: data/playoff.csv
//	  table_size: 20
//	logging:
//	  level: info
//	  output: both
//
// Keys missing from the file keep their defaults.
package config
