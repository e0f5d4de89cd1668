// Package report renders mined rules to the terminal and, on
// request, to a file. Console rendering uses lipgloss the way the
// teacher formats status output; file writes are guarded by an
// exclusive gofrs/flock lock the same way the teacher guards its
// sync lock file, since a watch-mode run can overwrite the same
// output path repeatedly.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gofrs/flock"

	"github.com/arnegrue/ermine/internal/miner"
)

var (
	ruleStyle   = lipgloss.NewStyle().Bold(true)
	statStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Underline(true)
)

// WriteConsole prints rules to w, sorted for stable display order.
// Styling is applied only when color is true; callers resolve that
// from the --color setting.
func WriteConsole(w io.Writer, rules []*miner.Rule, color bool) {
	sorted := sortedRules(rules)
	header := fmt.Sprintf("%d rule(s)", len(sorted))
	if color {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(w, header)
	for _, r := range sorted {
		line := r.String()
		if color {
			line = ruleStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

// WriteFile writes rules to path under an exclusive lock on
// path+".lock", so two ermine runs writing the same path never
// interleave: the lock is not waited for, and a second writer fails
// with ErrOutputUnavailable instead. Readers that do not take the lock
// are not excluded. It truncates and replaces the file's contents on
// each call.
func WriteFile(path string, rules []*miner.Rule) error {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("%w: acquiring output lock: %v", miner.ErrOutputUnavailable, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s is locked by another ermine run", miner.ErrOutputUnavailable, path)
	}
	defer lock.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", miner.ErrOutputUnavailable, path, err)
	}
	defer f.Close()

	WriteConsole(f, rules, false)
	return nil
}

// sortedRules orders rules for reproducible output (spec.md §5):
// primarily by descending support, then by the rule's textual
// rendering to break ties deterministically.
func sortedRules(rules []*miner.Rule) []*miner.Rule {
	sorted := make([]*miner.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SupportCount != sorted[j].SupportCount {
			return sorted[i].SupportCount > sorted[j].SupportCount
		}
		return sorted[i].String() < sorted[j].String()
	})
	return sorted
}

// Summary renders a faint one-line run summary below the rule list:
// the thresholds a run mined under, how many rules it found, and how
// long the mine took (spec.md §6: "elapsed seconds, rule count").
func Summary(w io.Writer, n, minSupCount, ruleCount int, minSup, minConf float64, elapsed time.Duration, color bool) {
	line := fmt.Sprintf("N=%d minSupCount=%d minsup=%.3f minconf=%.3f rules=%d elapsed=%.3fs",
		n, minSupCount, minSup, minConf, ruleCount, elapsed.Seconds())
	if color {
		line = statStyle.Render(line)
	}
	fmt.Fprintln(w, line)
}
