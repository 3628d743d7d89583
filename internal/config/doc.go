// Package config handles loading the booktrack configuration file.
//
// The config lives at ~/.config/booktrack/config.toml and currently holds a
// single field:
//
//	api_url = "http://127.0.0.1:8000"
//
// A missing file is not an error; defaults point at a locally running
// backend. A present-but-unparseable file is an error, since silently
// ignoring an explicit configuration would be worse than failing at startup.
// Paths accept a leading ~ which expands to the user's home directory.
package config
