// Package tokens estimates token footprints and plans multi-pass chunking.
//
// The Estimator wraps a tiktoken codec; when the codec is unavailable it
// falls back to the len/4 heuristic. The Analyzer turns per-file counts into
// an estimated total (review-type prompt overhead times one plus the context
// maintenance factor), compares it against the model's context window, and
// when the estimate exceeds the window plans chunks so that every chunk's
// raw token load fits. Files too large to fit any window get a chunk of
// their own, marked Oversized.
package tokens
