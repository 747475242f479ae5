// Package testutil holds fixture helpers for the token package's golden
// tests: dedenting multi-line fixtures, colorized diffs for test failures,
// and golden-snapshot recording.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/pkg/diff"
)

// Dedent trims a multi-line string literal: it strips all leading
// whitespace (including the first line's indentation) and trailing spaces,
// carriage returns and newlines, collapses runs of three newlines to two,
// empties whitespace-only lines, and then removes the indentation common to
// every line. Because the first line has no indentation left by then, an
// indented fixture keeps the indentation of its second and later lines, and
// a final whitespace-only line leaves a trailing newline.
func Dedent(input string) string {
	return dedent.Dedent(
		strings.ReplaceAll(
			strings.TrimLeft(
				strings.TrimRight(input, " \n\r"),
				" \t\r\n"),
			"\n\n\n", "\n\n"),
	)
}

// ANSIDiff renders a cmp.Diff between x and y with removed lines in red
// and added lines in green, for readable terminal test output.
func ANSIDiff(x, y interface{}, opts ...cmp.Option) string {
	escapeCode := func(code int) string {
		return fmt.Sprintf("\x1b[%dm", code)
	}
	d := cmp.Diff(x, y, opts...)
	if d == "" {
		return ""
	}
	lines := strings.Split(d, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "-"):
			lines[i] = escapeCode(31) + s + escapeCode(0)
		case strings.HasPrefix(s, "+"):
			lines[i] = escapeCode(32) + s + escapeCode(0)
		}
	}
	return strings.Join(lines, "\n")
}

// UnifiedDiff renders a line-based unified diff between two token-stream
// dumps (e.g. two DumpJSON outputs), for golden-test failures too large
// for ANSIDiff's structural cmp output to stay readable.
func UnifiedDiff(aName, bName, a, b string) string {
	var buf strings.Builder
	if err := diff.Text(aName, bName, a, b, &buf); err != nil {
		return fmt.Sprintf("testutil: UnifiedDiff: %v", err)
	}
	return buf.String()
}

var redactions = []string{"#", "<", ">", ")", "(", ":", " ", "'", "\"", "@", "`", "+"}

// RedactTestName strips characters a snapshot filename can't carry.
func RedactTestName(testCaseName string) string {
	name := testCaseName
	for _, c := range redactions {
		name = strings.ReplaceAll(name, c, "_")
	}
	return name
}

// SnapshotOptions configures MakeSnapshot. Output is always the rendered
// token stream this module produces — there is only one output kind, so
// unlike a multi-language compiler's test harness this carries no
// Kind/OutputKind discriminant.
type SnapshotOptions struct {
	Testing      *testing.T
	TestCaseName string
	Input        string
	Output       string
	FolderName   string
}

// MakeSnapshot records a golden snapshot pairing a fixture's input markup
// with its tokenized output.
func MakeSnapshot(options *SnapshotOptions) {
	t := options.Testing
	folderName := "__snapshots__"
	if options.FolderName != "" {
		folderName = options.FolderName
	}
	snapshotName := RedactTestName(options.TestCaseName)

	s := snaps.WithConfig(
		snaps.Filename(snapshotName),
		snaps.Dir(folderName),
	)

	var snapshot strings.Builder
	snapshot.WriteString("## Input\n\n```\n")
	snapshot.WriteString(Dedent(options.Input))
	snapshot.WriteString("\n```\n\n## Output\n\n```json\n")
	snapshot.WriteString(Dedent(options.Output))
	snapshot.WriteString("\n```")

	s.MatchSnapshot(t, snapshot.String())
}
