// Package propath parses dotted property paths and walks them over live
// object graphs.
package propath

import (
	"fmt"
	"strings"
)

// Path is an ordered sequence of property names. The empty path denotes the
// root object itself.
type Path []string

// Parse parses a dotted path such as "Customer.Address.City". The empty
// string parses to the empty path.
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, nil
	}

	var segments Path

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		if !isValidIdent(part) {
			return nil, fmt.Errorf("invalid path %q: invalid identifier %q", path, part)
		}

		segments = append(segments, part)
	}

	return segments, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(path string) Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}

	return p
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}

	return p[:len(p)-1]
}

// isValidIdent checks if a string is a valid Go identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, or underscore
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
