// Package config manages quati configuration.
//
// Values are layered, later sources winning:
//   - Built-in defaults
//   - The repository's .quati.yaml
//   - The QUATI_PREFIX environment variable
//   - Command-line flags
package config
