// Package redact applies an ordered list of pattern-and-replacement rules
// to file content.
package redact

import (
	"regexp"
	"strings"
)

// windowsHomePattern matches a Windows user-home prefix like
// `C:\Users\alice\`; the segment is one or more characters excluding
// backslash.
var windowsHomePattern = regexp.MustCompile(`C:\\Users\\[^\\]+\\`)

const homePlaceholder = "/USER_HOME/"

// Rule rewrites content by a literal substring match or a compiled regexp.
// Rules are total: applying one never fails.
type Rule struct {
	Name        string
	literal     string
	pattern     *regexp.Regexp
	replacement string
}

// Literal builds a rule replacing every occurrence of match.
func Literal(name, match, replacement string) Rule {
	return Rule{Name: name, literal: match, replacement: replacement}
}

// Pattern builds a rule replacing every match of a compiled regexp.
func Pattern(name string, pattern *regexp.Regexp, replacement string) Rule {
	return Rule{Name: name, pattern: pattern, replacement: replacement}
}

func (r Rule) Apply(content string) string {
	if r.pattern != nil {
		return r.pattern.ReplaceAllString(content, r.replacement)
	}
	if r.literal == "" {
		return content
	}
	return strings.ReplaceAll(content, r.literal, r.replacement)
}

// Apply runs the rules over content in order.
func Apply(rules []Rule, content string) string {
	for _, rule := range rules {
		content = rule.Apply(content)
	}
	return content
}

// Default returns the standard rule set: the configured username token
// first, then Windows user-home path normalization.
func Default(usernameToken, usernameReplacement string) []Rule {
	return []Rule{
		Literal("username", usernameToken, usernameReplacement),
		Pattern("windows-home", windowsHomePattern, homePlaceholder),
	}
}
