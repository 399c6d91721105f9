package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	for _, toolName := range []string{"safefr", "hexfind", ""} {
		result := String(toolName)

		if result != toolName+" "+Short() {
			t.Errorf("String(%q) should be the tool name followed by Short(), got: %s", toolName, result)
		}
	}
}

func TestShortFormat(t *testing.T) {
	result := Short()

	if !strings.HasPrefix(result, Version+" (") {
		t.Errorf("Short() should start with the version, got: %s", result)
	}

	if !strings.HasSuffix(result, "("+GitHash+", "+GitDirty+")") {
		t.Errorf("Short() should end with hash and dirty state, got: %s", result)
	}
}

func TestGitDirtyValidValues(t *testing.T) {
	switch GitDirty {
	case "dirty", "clean", "unknown":
	default:
		t.Errorf("GitDirty should be 'dirty', 'clean', or 'unknown', got: %s", GitDirty)
	}
}
