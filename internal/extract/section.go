package extract

import (
	"regexp"
	"strings"

	"github.com/olusolaa/config-baseline-auditor/internal/errors"
)

// Section describes one security-relevant stanza of a configuration.
//
// A match starts where Start matches at the beginning of a line, after any
// indentation (Comware indents global commands by one space). Sections with
// Block unset end at the end of that line. Block sections have a lazy body that
// ends before the first subsequent line starting with a lowercase ASCII letter
// or with one of Terminators, or at the end of input when no such line exists.
// The newline in front of the boundary line is never part of the match.
type Section struct {
	Name        string
	Start       *regexp.Regexp
	Block       bool
	Terminators []string
}

// directive builds a section for a literal command keyword. Its body is the
// indented continuation lines of the command, e.g. the servers and keys of a
// Comware "hwtacacs scheme", ending at the next top-level line or at the
// platform's comment marker.
func directive(keyword, commentMarker string) Section {
	return block(keyword, commentMarker)
}

// block builds a multi-line section for a literal keyword.
func block(keyword string, terminators ...string) Section {
	return Section{
		Name:        keyword,
		Start:       keywordRegexp(keyword),
		Block:       true,
		Terminators: terminators,
	}
}

func keywordRegexp(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*(` + regexp.QuoteMeta(keyword) + `)`)
}

// NewSection compiles a user-defined section. start is a regular expression
// (RE2 syntax) anchored to the beginning of a line, after optional indentation.
func NewSection(name, start string, isBlock bool, terminators ...string) (Section, error) {
	if strings.TrimSpace(start) == "" {
		return Section{}, errors.Newf(errors.CodePatternError, "section %q has an empty start pattern", name)
	}
	if _, err := regexp.Compile(start); err != nil {
		return Section{}, errors.Wrap(err, errors.CodePatternError, "invalid start pattern for section "+name)
	}
	re, err := regexp.Compile(`(?m)^[ \t]*(` + start + `)`)
	if err != nil {
		return Section{}, errors.Wrap(err, errors.CodePatternError, "invalid start pattern for section "+name)
	}
	if name == "" {
		name = start
	}
	return Section{
		Name:        name,
		Start:       re,
		Block:       isBlock,
		Terminators: terminators,
	}, nil
}

// FindAll returns every non-overlapping match of s in config, left to right.
// Each match is a substring of config.
func (s Section) FindAll(config string) []string {
	var matches []string
	prevEnd := 0
	for _, loc := range s.Start.FindAllStringSubmatchIndex(config, -1) {
		start, keywordEnd := loc[2], loc[3]
		if start < prevEnd {
			continue
		}
		end := s.end(config, keywordEnd)
		matches = append(matches, config[start:end])
		prevEnd = end
		if prevEnd == start {
			// zero-width start pattern at a boundary; step past it
			prevEnd++
		}
	}
	return matches
}

// end returns the exclusive end offset of a match whose start keyword ends at from.
func (s Section) end(config string, from int) int {
	for i := from; i < len(config); {
		nl := strings.IndexByte(config[i:], '\n')
		if nl < 0 {
			break
		}
		i += nl
		if !s.Block || s.boundary(config[i+1:]) {
			return i
		}
		i++
	}
	return len(config)
}

func (s Section) boundary(next string) bool {
	if next != "" && next[0] >= 'a' && next[0] <= 'z' {
		return true
	}
	for _, t := range s.Terminators {
		if strings.HasPrefix(next, t) {
			return true
		}
	}
	return false
}
