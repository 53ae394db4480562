package organize

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// ExcludePolicy removes files from candidacy before planning. Excluded files
// are not recorded as skips; they were never candidates.
type ExcludePolicy struct {
	Files    []string
	Patterns []string
	Globs    []string
	SizeMin  string
	SizeMax  string
}

// excludeMatcher is the compiled form of ExcludePolicy.
type excludeMatcher struct {
	files    []string
	patterns []*regexp.Regexp
	globs    []glob.Glob
	sizeMin  int64
	sizeMax  int64
}

func compileExcludePolicy(p ExcludePolicy) (*excludeMatcher, error) {
	m := &excludeMatcher{
		files:   p.Files,
		sizeMin: -1,
		sizeMax: -1,
	}

	for _, pat := range p.Patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		m.patterns = append(m.patterns, re)
	}

	for _, g := range p.Globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			return nil, fmt.Errorf("exclude glob %q: %w", g, err)
		}
		m.globs = append(m.globs, compiled)
	}

	if p.SizeMin != "" {
		n, err := units.FromHumanSize(p.SizeMin)
		if err != nil {
			return nil, fmt.Errorf("exclude size min %q: %w", p.SizeMin, err)
		}
		m.sizeMin = n
	}
	if p.SizeMax != "" {
		n, err := units.FromHumanSize(p.SizeMax)
		if err != nil {
			return nil, fmt.Errorf("exclude size max %q: %w", p.SizeMax, err)
		}
		m.sizeMax = n
	}

	return m, nil
}

// matches reports whether a candidate with the given base name and size is
// excluded by policy.
func (m *excludeMatcher) matches(name string, size int64) bool {
	if lo.Contains(m.files, name) {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	if m.sizeMin >= 0 && size <= m.sizeMin {
		return true
	}
	if m.sizeMax >= 0 && m.sizeMax <= size {
		return true
	}
	return false
}

// statSize returns the file size, or 0 when it cannot be determined.
func statSize(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		slog.Debug("size lookup failed", "path", path, "error", err)
		return 0
	}
	return info.Size()
}
