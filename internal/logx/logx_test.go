package logx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "ermine.log")

	l, err := New(logFile, true, "never")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var console bytes.Buffer
	l.console = &console

	l.Info("starting run")
	l.Warn("low support threshold")

	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(console.String(), "starting run") {
		t.Errorf("console output missing info line: %q", console.String())
	}
	if !strings.Contains(console.String(), "warning: low support threshold") {
		t.Errorf("console output missing warning line: %q", console.String())
	}
}

func TestColorNeverDisablesStyling(t *testing.T) {
	l, err := New("", false, "never")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var console bytes.Buffer
	l.console = &console
	l.Warn("plain text expected")

	if strings.Contains(console.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes with color=never, got %q", console.String())
	}
}
