package matcher

import (
	"errors"
	"regexp"
	"strings"
)

// Matcher reports whether a basename follows the screenshot naming pattern:
// a literal prefix, a YYYY-MM-DD date stamp, arbitrary trailing characters,
// and a fixed extension. Matching is case-sensitive and anchored at both
// ends of the basename.
type Matcher struct {
	prefix    string
	extension string
	pattern   *regexp.Regexp
}

// New compiles a matcher for the given prefix literal and extension.
// The extension must include its leading dot.
func New(prefix, extension string) (*Matcher, error) {
	if prefix == "" {
		return nil, errors.New("matcher: prefix required")
	}
	if !strings.HasPrefix(extension, ".") {
		return nil, errors.New("matcher: extension must start with a dot")
	}
	pattern, err := regexp.Compile(
		"^" + regexp.QuoteMeta(prefix) + `\d{4}-\d{2}-\d{2}.*` + regexp.QuoteMeta(extension) + "$",
	)
	if err != nil {
		return nil, err
	}
	return &Matcher{prefix: prefix, extension: extension, pattern: pattern}, nil
}

// Match reports whether basename is a screenshot candidate. Pure: no
// filesystem access, safe for concurrent use.
func (m *Matcher) Match(basename string) bool {
	return m.pattern.MatchString(basename)
}

// Extension returns the extension the matcher accepts, dot included.
func (m *Matcher) Extension() string {
	return m.extension
}
