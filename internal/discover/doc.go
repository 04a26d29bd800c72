// Package discover walks a codebase and collects the reviewable files,
// applying include/exclude globs and skipping binaries, oversized files,
// and dependency directories.
package discover
