// Package config loads, normalizes, and validates md5tap configuration.
//
// Configuration lives in a single TOML file. Load applies defaults first,
// then file contents, then normalization (tilde expansion, absolute
// paths), then validation, so callers always receive a usable Config or a
// descriptive error.
package config
