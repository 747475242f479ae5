package token

import (
	"testing"

	"github.com/go-html/htmltok/internal/testutil"
)

// goldenFixtures are multi-line HTML fixtures written indented to match the
// surrounding Go source; each is passed through testutil.Dedent (which
// leaves the indentation of lines after the first in place), tokenized, and
// the dumped result snapshotted.
var goldenFixtures = []struct {
	name   string
	source string
}{
	{
		"simple element",
		`
			<p>hi</p>
		`,
	},
	{
		"attributes and self-closing void tag",
		`
			<div id="main" class=card>
				<img src="a.png"/>
			</div>
		`,
	},
	{
		"comment and doctype",
		`
			<!DOCTYPE html>
			<!-- top of document -->
			<p>text</p>
		`,
	},
	{
		"malformed markup",
		`
			<x<y>
			<!--a--!>
		`,
	},
}

func TestGoldenTokenStreams(t *testing.T) {
	for _, tt := range goldenFixtures {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(testutil.Dedent(tt.source))
			toks := runAll(src, true)
			dump, err := DumpJSON(toks, src)
			if err != nil {
				t.Fatalf("DumpJSON: %v", err)
			}
			testutil.MakeSnapshot(&testutil.SnapshotOptions{
				Testing:      t,
				TestCaseName: tt.name,
				Input:        string(src),
				Output:       string(dump),
				FolderName:   "__snapshots__",
			})
		})
	}
}

// TestGoldenTokenStreamsAreDeterministic re-tokenizes every fixture and
// diffs the two dumps, exercising UnifiedDiff/ANSIDiff the way a failing
// regression test would render a mismatch instead of a raw byte dump.
func TestGoldenTokenStreamsAreDeterministic(t *testing.T) {
	for _, tt := range goldenFixtures {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(testutil.Dedent(tt.source))

			first, err := DumpJSON(runAll(append([]byte(nil), src...), true), src)
			if err != nil {
				t.Fatalf("DumpJSON: %v", err)
			}
			second, err := DumpJSON(runAll(append([]byte(nil), src...), true), src)
			if err != nil {
				t.Fatalf("DumpJSON: %v", err)
			}

			if string(first) != string(second) {
				t.Errorf("non-deterministic token stream:\n%s", testutil.UnifiedDiff("first", "second", string(first), string(second)))
			}
			if diff := testutil.ANSIDiff(string(first), string(second)); diff != "" {
				t.Errorf("cmp diff between runs:\n%s", diff)
			}
		})
	}
}
