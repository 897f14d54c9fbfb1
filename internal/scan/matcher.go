package scan

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"

	"wiper/internal/config"
	"wiper/internal/errors"
)

// Matcher decides whether a directory entry is reported.
type Matcher interface {
	Match(path, name string) bool
	String() string
}

// NewMatcher compiles pattern for the given mode. With matchPath the regex
// and glob modes test the full path instead of the entry name. A pattern
// that does not compile yields an InvalidPattern configuration error.
func NewMatcher(mode, pattern string, matchPath bool) (Matcher, error) {
	switch mode {
	case config.MatchName:
		return nameMatcher{name: pattern, matchPath: matchPath}, nil
	case config.MatchRegex, "":
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError("invalid filter", pattern, errors.InvalidPattern, err)
		}
		return regexMatcher{re: re, matchPath: matchPath}, nil
	case config.MatchGlob:
		var g glob.Glob
		var err error
		if matchPath {
			g, err = glob.Compile(pattern, '/')
		} else {
			g, err = glob.Compile(pattern)
		}
		if err != nil {
			return nil, errors.NewConfigError("invalid filter", pattern, errors.InvalidPattern, err)
		}
		return globMatcher{g: g, pattern: pattern, matchPath: matchPath}, nil
	}
	return nil, errors.NewConfigError("invalid match mode", mode, errors.InvalidConfig, nil)
}

func target(path, name string, matchPath bool) string {
	if matchPath {
		return path
	}
	return name
}

type nameMatcher struct {
	name      string
	matchPath bool
}

func (m nameMatcher) Match(path, name string) bool {
	return target(path, name, m.matchPath) == m.name
}

func (m nameMatcher) String() string {
	return fmt.Sprintf("name %q", m.name)
}

type regexMatcher struct {
	re        *regexp.Regexp
	matchPath bool
}

func (m regexMatcher) Match(path, name string) bool {
	return m.re.MatchString(target(path, name, m.matchPath))
}

func (m regexMatcher) String() string {
	return fmt.Sprintf("regex %q", m.re.String())
}

type globMatcher struct {
	g         glob.Glob
	pattern   string
	matchPath bool
}

func (m globMatcher) Match(path, name string) bool {
	return m.g.Match(target(path, name, m.matchPath))
}

func (m globMatcher) String() string {
	return fmt.Sprintf("glob %q", m.pattern)
}
