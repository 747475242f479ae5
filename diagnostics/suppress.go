package diagnostics

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// suppressor holds the compiled patterns installed via Collector.Suppress.
// Patterns are regexp2 rather than the standard library's regexp so a
// suppression rule can use lookaround — e.g. "^eof_in_(?!tag$)" to
// suppress every EOF kind except eof_in_tag — which RE2 cannot express.
type suppressor struct {
	rules []*regexp2.Regexp
}

func (s *suppressor) add(pattern string) error {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return fmt.Errorf("diagnostics: bad suppression pattern %q: %w", pattern, err)
	}
	s.rules = append(s.rules, re)
	return nil
}

// matches reports whether d is covered by any installed pattern, tried
// against both the rendered message and the kind's wire name so a rule
// can target either "unexpected null character" or
// "unexpected_null_character".
func (s *suppressor) matchesDiagnostic(d Diagnostic) bool {
	wire := d.Kind.String()
	for _, re := range s.rules {
		if matches(re, d.Message) || matches(re, wire) {
			return true
		}
	}
	return false
}

func matches(re *regexp2.Regexp, text string) bool {
	ok, err := re.MatchString(text)
	return err == nil && ok
}
