package redact

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// Policy controls what leaves the machine. Files whose relative path matches
// any pattern in Paths are withheld wholesale instead of being scanned.
type Policy struct {
	Paths []string
}

// rule pairs a category with its detection pattern. An empty repl masks the
// whole match; otherwise repl is an expansion template that keeps the
// non-secret parts of the match in place.
type rule struct {
	category string
	re       *regexp.Regexp
	repl     string
}

// Ordered most-specific first: provider key shapes before the generic
// assignment patterns that would otherwise swallow them.
var rules = []rule{
	{category: "anthropic-key", re: regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{category: "openai-key", re: regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`)},
	{category: "google-key", re: regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{category: "github-token", re: regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{category: "slack-token", re: regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{category: "aws-access-key", re: regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{category: "aws-secret-key", re: regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key[ \t]*[:=][ \t]*["']?[A-Za-z0-9/+=]{40}["']?`)},
	{category: "jwt", re: regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{category: "bearer-token", re: regexp.MustCompile(`(?i)Bearer[ \t]+[A-Za-z0-9._-]{20,}`)},
	{category: "private-key", re: regexp.MustCompile(`-----BEGIN\s+(?:[A-Z]+\s+)?PRIVATE KEY-----`)},
	{
		category: "url-credentials",
		re:       regexp.MustCompile(`([a-z][a-z0-9+.-]*://[^/\s:@]+:)[^@\s]+@`),
		repl:     "${1}" + placeholder + "@",
	},
	{
		category: "assignment",
		re:       regexp.MustCompile(`(?i)(api[_-]?key|apikey|secret|token|password|passwd|credential)([ \t]*[:=][ \t]*)["']([^"']{8,})["']`),
		repl:     `${1}${2}"` + placeholder + `"`,
	},
	{
		category: "hex-assignment",
		re:       regexp.MustCompile(`(?i)(key|secret|token)([ \t]*[:=][ \t]*)["']?[0-9a-f]{32,}["']?`),
		repl:     `${1}${2}"` + placeholder + `"`,
	},
}

// Mask replaces secret-shaped text in content and reports how many
// replacements were made. Assignment-style matches keep the identifier and
// mask only the value, so a review can still name the variable involved.
// No pattern spans a newline, so masked content keeps its line numbering.
func Mask(content string) (string, int) {
	total := 0
	for _, r := range rules {
		n := len(r.re.FindAllStringIndex(content, -1))
		if n == 0 {
			continue
		}
		total += n
		if r.repl == "" {
			content = r.re.ReplaceAllString(content, placeholder)
		} else {
			content = r.re.ReplaceAllString(content, r.repl)
		}
	}
	return content, total
}

// Matches reports whether rel matches any policy pattern. Glob semantics are
// the same as file discovery: a pattern without a slash also matches the
// basename, a leading "**/" matches any directory depth, and a trailing
// "/**" matches a whole subtree.
func (p Policy) Matches(rel string) bool {
	for _, pattern := range p.Paths {
		if matchPolicy(pattern, rel) {
			return true
		}
	}
	return false
}

func matchPolicy(pattern, rel string) bool {
	if ok, _ := filepath.Match(pattern, rel); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		for {
			if matchPolicy(rest, rel) {
				return true
			}
			i := strings.IndexByte(rel, '/')
			if i < 0 {
				break
			}
			rel = rel[i+1:]
		}
	}
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}

// File prepares one discovered file for prompting. Policy-matched files are
// withheld entirely; everything else is masked in place. The count reports
// replacements made, with a withheld file counting as one.
func File(content, relPath string, policy Policy) (string, int) {
	if policy.Matches(relPath) {
		return fmt.Sprintf("%s content of %s withheld by privacy path policy\n", placeholder, relPath), 1
	}
	return Mask(content)
}
