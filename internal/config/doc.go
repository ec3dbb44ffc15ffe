// Package config holds the two kinds of configuration the service runs with.
//
// The discovery document (Config) lists probe targets and probing endpoints
// and is read once from a YAML file by Load. It is immutable afterwards and
// shared by every request.
//
// The document file must contain both the target and endpoint lists (either
// may be empty) in a single YAML document.
//
// Server settings (ServerConfig) are resolved by LoadServer from multiple
// sources with precedence: CLI flags > Environment variables > Defaults.
package config
