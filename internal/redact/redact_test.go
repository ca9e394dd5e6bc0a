package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	rules := Default("USER", "USER")

	t.Run("WindowsHomePath", func(t *testing.T) {
		got := Apply(rules, "Config at C:\\Users\\alice\\settings.ini")
		assert.Equal(t, "Config at /USER_HOME/settings.ini", got)
	})

	t.Run("TrailingPathOnly", func(t *testing.T) {
		got := Apply(rules, "C:\\Users\\bob\\")
		assert.Equal(t, "/USER_HOME/", got)
	})

	t.Run("MultipleOccurrences", func(t *testing.T) {
		got := Apply(rules, "C:\\Users\\a\\x and C:\\Users\\b\\y")
		assert.Equal(t, "/USER_HOME/x and /USER_HOME/y", got)
	})

	t.Run("NoMatchUnchanged", func(t *testing.T) {
		content := "nothing identifying here\n"
		assert.Equal(t, content, Apply(rules, content))
	})

	t.Run("BareDriveRootNotMatched", func(t *testing.T) {
		// No trailing backslash after the segment, so no match.
		content := "C:\\Users\\alice"
		assert.Equal(t, content, Apply(rules, content))
	})

	t.Run("Idempotent", func(t *testing.T) {
		content := "path C:\\Users\\carol\\work\\notes.txt by USER"
		once := Apply(rules, content)
		twice := Apply(rules, once)
		assert.Equal(t, once, twice)
	})
}

func TestUsernameRule(t *testing.T) {
	t.Run("ReplacesConfiguredToken", func(t *testing.T) {
		rules := Default("jdoe", "REDACTED_USER")
		got := Apply(rules, "owned by jdoe on host")
		assert.Equal(t, "owned by REDACTED_USER on host", got)
	})

	t.Run("RunsBeforePathRule", func(t *testing.T) {
		rules := Default("alice", "someone")
		got := Apply(rules, "C:\\Users\\alice\\file")
		// Username rewrite happens first, then the path rule collapses
		// the whole prefix.
		assert.Equal(t, "/USER_HOME/file", got)
	})

	t.Run("EmptyTokenIsNoop", func(t *testing.T) {
		rule := Literal("username", "", "x")
		assert.Equal(t, "abc", rule.Apply("abc"))
	})
}
