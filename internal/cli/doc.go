// Package cli defines the facet command tree.
//
// Commands:
//
//	facet review [path]    run a (possibly multi-pass) codebase review
//	facet estimate [path]  preview tokens, chunking, and cost without API calls
//	facet models           list models, validate credentials
//	facet config           init/set/show configuration
//	facet cache            clear/show the result cache
//	facet version          print the version
//
// Handlers set a package-level exit code rather than calling os.Exit so
// deferred cleanup runs; main exits with the returned code.
package cli
