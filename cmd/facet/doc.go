// Facet is a CLI for reviewing whole codebases with LLM providers.
//
// It estimates the token footprint of a project, splits reviews that exceed
// the model's context window into multiple coordinated passes, carries
// findings forward between passes, and consolidates everything into a single
// graded report.
//
// Usage:
//
//	facet review                      # review the current directory
//	facet review ./service --type security
//	facet estimate                    # preview tokens, passes, and cost
//	facet models list                 # list known models and pricing
//	facet models doctor               # validate provider credentials
//	facet config init                 # write a default config file
//	facet cache show                  # inspect the result cache
//
// See https://github.com/dshills/facet for full documentation.
package main
