// Package output renders review results as text, JSON, or Markdown.
package output
