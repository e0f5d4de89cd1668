package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "db.txt")
	content := "1 2 -1 3 -1 -2\n1 -1 2 3 -1 -2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// TestMineCommandWritesOutput drives the mine command the same way the
// teacher drives its cobra commands in tests: construct args, redirect
// output, call Execute. It goes through a fresh root from newTestRoot,
// since cobra always executes from a command's root and would ignore
// args set on the shared mineCmd, which is a child of rootCmd.
func TestMineCommandWritesOutput(t *testing.T) {
	path := writeTestDB(t)
	outPath := filepath.Join(filepath.Dir(path), "rules.txt")

	cmd, _ := newTestRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"mine",
		path,
		"--minsup=0.5",
		"--minconf=0.5",
		"--write",
		"--output=" + outPath,
		"--color=never",
		"--log-file=" + filepath.Join(filepath.Dir(path), "ermine.log"),
	})
	defer cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", outPath, err)
	}
	if !strings.Contains(string(data), "=>") {
		t.Errorf("output file %q does not look like a rule listing:\n%s", outPath, data)
	}
}

// runMineCapturingStdout drives a fresh mine command (via newTestRoot)
// against testdata/sample.txt with the given extra flags and returns
// its stdout. runMine prints the rule listing straight to os.Stdout
// (it runs as a one-shot CLI invocation, not a library call), so the
// capture swaps os.Stdout for a pipe, the same technique the teacher
// uses for its own command-output tests.
func runMineCapturingStdout(t *testing.T, extraArgs ...string) string {
	t.Helper()
	cmd, _ := newTestRoot()
	args := append([]string{
		"mine",
		"testdata/sample.txt",
		"--color=never",
		"--log-file=" + filepath.Join(t.TempDir(), "ermine.log"),
	}, extraArgs...)
	cmd.SetArgs(args)
	defer cmd.SetArgs(nil)

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	execErr := cmd.Execute()
	w.Close()
	os.Stdout = oldStdout

	var out bytes.Buffer
	out.ReadFrom(r)
	if execErr != nil {
		t.Fatalf("Execute: %v", execErr)
	}
	return out.String()
}

// TestMineCommandSampleFixtureAllRules mirrors test_ERMiner.py's
// test_find_all_rules: at minsup=0.01/minconf=0.01 the checked-in
// sample database must yield exactly 3 rules, {1}=>{2}, {2}=>{1} and
// {1}=>{3}.
func TestMineCommandSampleFixtureAllRules(t *testing.T) {
	out := runMineCapturingStdout(t, "--minsup=0.01", "--minconf=0.01")
	if !strings.Contains(out, "3 rule(s)") {
		t.Errorf("expected a 3 rule(s) header, got:\n%s", out)
	}
	for _, want := range []string{"{1} => {2}", "{2} => {1}", "{1} => {3}"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected rule %q in output, got:\n%s", want, out)
		}
	}
}

// TestMineCommandSampleFixtureFrequentRules mirrors test_ERMiner.py's
// test_find_frequent_rules: at minsup=0.4/minconf=0.3 the {1}=>{3}
// rule drops out (only 1 of 5 sequences supports it) and exactly 2
// rules survive, {1}=>{2} and {2}=>{1}.
func TestMineCommandSampleFixtureFrequentRules(t *testing.T) {
	out := runMineCapturingStdout(t, "--minsup=0.4", "--minconf=0.3")
	if !strings.Contains(out, "2 rule(s)") {
		t.Errorf("expected a 2 rule(s) header, got:\n%s", out)
	}
	for _, want := range []string{"{1} => {2}", "{2} => {1}"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected rule %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "{1} => {3}") {
		t.Errorf("expected {1}=>{3} pruned by minsup=0.4, got:\n%s", out)
	}
}

func TestMineCommandMissingFile(t *testing.T) {
	cmd, _ := newTestRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	dir := t.TempDir()
	cmd.SetArgs([]string{
		"mine",
		filepath.Join(dir, "missing.txt"),
		"--log-file=" + filepath.Join(dir, "ermine.log"),
	})
	defer cmd.SetArgs(nil)

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing database file")
	}
}
