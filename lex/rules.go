package lex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Rule is a token rule. Lower priority values win.
type Rule struct {
	Name     string
	Pattern  string
	Priority int
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: %s", r.Name, r.Pattern)
}

// ErrMalformedRule is returned for rule lines not of the form "name: pattern".
var ErrMalformedRule = errors.New("malformed rule")

// ParseRule parses a line "name: pattern". The name ends at the first colon;
// leading spaces of the pattern are skipped, everything else belongs to it.
func ParseRule(line string) (Rule, error) {
	name, pattern, found := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	pattern = strings.TrimLeft(pattern, " \t")
	if !found || name == "" || pattern == "" {
		return Rule{}, fmt.Errorf("%w: %q", ErrMalformedRule, line)
	}
	return Rule{Name: name, Pattern: pattern}, nil
}

// ReadRules reads rules, one per line, skipping blank lines. Rules receive
// priorities in declaration order.
func ReadRules(r io.Reader) ([]Rule, error) {
	var rules []Rule
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rule, err := ParseRule(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		rule.Priority = len(rules)
		rules = append(rules, rule)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
