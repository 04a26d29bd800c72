// Package redact masks secret-shaped text in discovered files before any
// content is sent to an LLM provider.
//
// Two layers apply. A path Policy withholds whole files (".env" files,
// anything matching "*secrets*", and so on) using the same glob semantics as
// file discovery. Everything else is scanned against per-category patterns:
// provider API keys, cloud credentials, JWTs, bearer tokens, private key
// blocks, credential-bearing URLs, and assignment literals. Assignment-style
// matches keep the identifier and mask only the value, so a review finding
// can still name the variable that holds the secret.
package redact
