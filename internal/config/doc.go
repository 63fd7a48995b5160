// Package config loads guardscan configuration from local and global YAML
// files. The CLI applies precedence (flags, then local, then global) and maps
// the result into engine configuration.
package config
