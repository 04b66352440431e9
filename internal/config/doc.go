// Package config loads, normalizes, and validates photorganiser configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the PHOTORGANISER_EXIV2 environment fallback. The
// Config type centralizes every knob the CLI and pipeline need so the run
// receives sanitized paths and clear validation errors in one pass.
package config
