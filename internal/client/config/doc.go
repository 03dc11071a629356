// Package config loads runtime configuration for the todoapi CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or TOML file selected via -c or -config.
//  3. Environment variables prefixed with TODOCLI_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the todoapi gRPC endpoint
//	-t int      per-request timeout (seconds)
//
// File keys
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
package config
