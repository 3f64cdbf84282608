// Package config defines the relay configuration, its YAML loader, and
// validation.
//
// Configuration is resolved in three layers: defaults, then the YAML file,
// then IRCHOOK_* environment variables. Validation compiles every configured
// regular expression and parses every URL, so a config that loads cleanly
// cannot produce a pattern or destination error at runtime.
package config
