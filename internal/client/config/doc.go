// Package config loads runtime configuration for the SecureChat REPL.
//
// Sources, later wins:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c / -config or SECURECHAT_CLIENT_CONFIG.
//     Comments are allowed; durations may be "10s" strings or nanoseconds:
//
//     {
//     // local dev server
//     "server_endpoint_addr": "127.0.0.1:50051",
//     "request_timeout": "10s"
//     }
//
//  3. Command-line flags -a (address) and -t (timeout in seconds).
package config
