package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"github.com/arnegrue/ermine/internal/miner"
)

func TestWriteConsoleSortsBySupportDescending(t *testing.T) {
	path := writeDB(t, "1 -1 2 -1 3 -1 -2", "1 -1 2 -1 -2", "1 -1 3 -1 -2")
	e, err := miner.Mine(path, miner.Options{MinSup: 0.01, MinConf: 0.01, Prune: true})
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(e.Rules) == 0 {
		t.Fatal("no rules mined to render")
	}

	var buf bytes.Buffer
	WriteConsole(&buf, e.Rules, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected a header plus at least one rule line, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "rule(s)") {
		t.Errorf("header = %q, want a rule count header", lines[0])
	}
	prev := -1
	for _, line := range lines[1:] {
		_, after, ok := strings.Cut(line, "support=")
		if !ok {
			t.Fatalf("rule line %q has no support field", line)
		}
		var support int
		if _, err := fmt.Sscanf(after, "%d", &support); err != nil {
			t.Fatalf("parsing support in %q: %v", line, err)
		}
		if prev >= 0 && support > prev {
			t.Errorf("rule %q (support=%d) listed after a rule with support=%d, want descending support", line, support, prev)
		}
		prev = support
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := writeDB(t, "1 -1 2 -1 -2", "1 -1 2 -1 -2")
	e, err := miner.Mine(path, miner.Options{MinSup: 0.01, MinConf: 0.01, Prune: true})
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}

	outPath := filepath.Join(filepath.Dir(path), "out.txt")
	if err := WriteFile(outPath, e.Rules); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "rule(s)") {
		t.Errorf("output file missing header:\n%s", data)
	}
}

func TestWriteFileRejectsWhenLocked(t *testing.T) {
	path := writeDB(t, "1 -1 2 -1 -2")
	e, err := miner.Mine(path, miner.Options{MinSup: 0.01, MinConf: 0.01})
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	outPath := filepath.Join(filepath.Dir(path), "out.txt")

	lock := flock.New(outPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: locked=%v err=%v", locked, err)
	}
	defer lock.Unlock()

	err = WriteFile(outPath, e.Rules)
	if !errors.Is(err, miner.ErrOutputUnavailable) {
		t.Fatalf("WriteFile error = %v, want wrapping ErrOutputUnavailable", err)
	}
}

func writeDB(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "db.txt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}
