package regex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedClass is returned for character classes which cannot be expanded.
var ErrMalformedClass = errors.New("malformed character class")

// special characters of the pure regex syntax
const specials = `|*+?()\[]`

// ExpandClasses replaces character classes like "[a-c_]" by an explicit
// alternation "(a|b|c|_)". Ranges must have single-character endpoints in
// ascending order. Within a class, a backslash makes the following character
// a literal member. Escapes outside of classes are copied unchanged.
func ExpandClasses(pattern string) (string, error) {
	in := []rune(pattern)
	var b strings.Builder
	for i := 0; i < len(in); i++ {
		c := in[i]
		if c == '\\' && i+1 < len(in) {
			b.WriteRune(c)
			b.WriteRune(in[i+1])
			i++
			continue
		}
		if c != '[' {
			b.WriteRune(c)
			continue
		}
		members, next, err := classMembers(in, i+1)
		if err != nil {
			return "", fmt.Errorf("%w in %q at %d: %v", ErrMalformedClass, pattern, i, err)
		}
		b.WriteByte('(')
		for k, m := range members {
			if k > 0 {
				b.WriteByte('|')
			}
			if strings.ContainsRune(specials, m) {
				b.WriteByte('\\')
			}
			b.WriteRune(m)
		}
		b.WriteByte(')')
		i = next
	}
	return b.String(), nil
}

// classMembers collects the members of a class starting at in[start] (just
// behind the '['). It returns the members and the index of the closing ']'.
func classMembers(in []rune, start int) ([]rune, int, error) {
	var members []rune
	seen := make(map[rune]bool)
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			members = append(members, r)
		}
	}
	i := start
	for ; i < len(in) && in[i] != ']'; i++ {
		c := in[i]
		if c == '\\' {
			if i+1 >= len(in) {
				return nil, i, errors.New("dangling escape")
			}
			i++
			c = in[i]
		}
		if i+2 < len(in) && in[i+1] == '-' && in[i+2] != ']' {
			to := in[i+2]
			if to == '\\' {
				return nil, i, errors.New("escaped range endpoint")
			}
			if i+3 < len(in) && in[i+3] == '-' {
				return nil, i, errors.New("multi-character range")
			}
			if to < c {
				return nil, i, fmt.Errorf("descending range %c-%c", c, to)
			}
			for r := c; r <= to; r++ {
				add(r)
			}
			i += 2
			continue
		}
		add(c)
	}
	if i >= len(in) {
		return nil, i, errors.New("missing ']'")
	}
	if len(members) == 0 {
		return nil, i, errors.New("empty class")
	}
	return members, i, nil
}
