// Package config loads and validates bridge configuration from JSON or YAML
// files.
//
// Configuration is layered: defaults first, then the file, then validation.
// Durations are written as strings in the file ("100ms", "2s") and parsed into
// time.Duration during load.
package config
