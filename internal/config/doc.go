// Package config provides YAML configuration loading, layered-override
// merging, and effective-configuration resolution for the server (spec.md
// §6.4), in the same pointer-field Config + Builder + defaults pattern the
// teacher project uses for its own configuration.
package config
