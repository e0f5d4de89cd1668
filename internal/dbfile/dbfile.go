// Package dbfile reads the line-oriented sequence database format
// fixed by the specification: one sequence per line, items separated
// by single spaces, "-1" separating itemsets, each line terminated by
// " -1 -2".
package dbfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Separator is the token that delimits itemsets within a sequence line.
const Separator = "-1"

// Reader scopes access to the database file; Close releases the
// underlying handle on every exit path.
type Reader struct {
	file *os.File
}

// Open opens path for reading. The caller must defer Close.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dbfile: open %s: %w", path, err)
	}
	return &Reader{file: f}, nil
}

// Close releases the file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Each calls fn once per retained (non-empty, non-comment) sequence,
// in file order, passing it the parsed itemsets and its zero-based
// sid. A line beginning with '-' is a comment/metadata line and is
// skipped without counting toward sid assignment. A malformed line
// (non-integer token) aborts with an error wrapping the token.
func (r *Reader) Each(fn func(sequence [][]int, sid int) error) error {
	scanner := bufio.NewScanner(r.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sid := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		sequence, err := parseLine(line)
		if err != nil {
			return err
		}
		if len(sequence) == 0 {
			continue
		}
		if err := fn(sequence, sid); err != nil {
			return err
		}
		sid++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dbfile: read: %w", err)
	}
	return nil
}

// Parse parses a single already-read line (exported for tests that
// want to check the example in the specification directly).
func Parse(line string) ([][]int, error) {
	return parseLine(strings.TrimRight(line, "\n"))
}

// parseLine parses "3 1 -1 2 -1 -2" into [][]int{{3, 1}, {2}}.
func parseLine(line string) ([][]int, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(line), "-2")
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, Separator)
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return nil, nil
	}

	chunks := strings.Split(trimmed, Separator)
	sequence := make([][]int, 0, len(chunks))
	for _, chunk := range chunks {
		fields := strings.Fields(chunk)
		if len(fields) == 0 {
			continue
		}
		itemset := make([]int, 0, len(fields))
		for _, f := range fields {
			item, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, f, err)
			}
			itemset = append(itemset, item)
		}
		sequence = append(sequence, itemset)
	}
	return sequence, nil
}

// ErrMalformed wraps a non-integer token encountered while parsing a
// sequence line (not a comment line, which is tolerated and skipped).
var ErrMalformed = fmt.Errorf("dbfile: malformed token")
