// Package config defines the rudis-cli configuration structure.
//
// Configuration is loaded with Koanf from multiple sources with
// priority: Flag > Env > File > Default. Flags are applied by the
// command layer; this package merges defaults, the YAML config file
// (~/.rudis/cli.yaml by default) and RUDIS_* environment variables.
package config
