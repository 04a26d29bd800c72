// Package config loads and merges facet configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (FACET_PROVIDER, FACET_MODEL, FACET_REVIEW_TYPE, etc.)
//  3. Config file ($XDG_CONFIG_HOME/facet/config.json)
//  4. Built-in defaults
//
// Merging is handled by viper; use [Load] to obtain the effective [Config],
// [Save] to persist one, and [SetField] to update a single key for the
// config CLI command.
package config
