// Package models holds the static model registry: context window sizes,
// output limits, and per-million-token pricing for each supported provider.
package models
