package logging

import (
	"path/filepath"
	"testing"
)

func TestNewLoggerIsSingletonPerComponent(t *testing.T) {
	a := NewLogger("test-component")
	b := NewLogger("test-component")
	if a != b {
		t.Error("NewLogger should return the same entry for the same component")
	}

	c := NewLogger("other-component")
	if a == c {
		t.Error("NewLogger should return distinct entries for distinct components")
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("/var/log/repl.log"); got != "/var/log/repl.log" {
		t.Errorf("expandPath should leave absolute paths alone, got %q", got)
	}

	expanded := expandPath("~/logs/repl.log")
	if expanded == "~/logs/repl.log" {
		t.Error("expandPath should expand the tilde")
	}
	if filepath.Base(expanded) != "repl.log" {
		t.Errorf("expandPath mangled the path: %q", expanded)
	}
}
