// Package config loads portfolio-admin configuration from YAML files.
//
// Configuration files support ${VAR_NAME} environment variable expansion and
// Go duration strings for time-based settings. Fields left unset fall back to
// the stock deployment defaults (24h sessions, 5 attempts, 15m lockout).
package config
