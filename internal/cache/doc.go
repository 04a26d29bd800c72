// Package cache provides a file-based cache for review results.
//
// Cache entries are keyed by a SHA-256 hash of the provider name, model,
// review type, and a digest of the reviewed file contents. Each entry stores
// the serialized result along with a creation timestamp and a TTL (in
// seconds). Expired entries are skipped on read and removed during
// cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/facet (or the OS-appropriate
// equivalent). All payloads stored in the cache have already been through
// secret redaction.
package cache
