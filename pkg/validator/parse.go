package validator

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules maps a field path to its rule list. A value is either a pipe
// delimited string ("required|string|min:3") or a []string of tokens
// ({"required", "regex:^a|b$"}). Paths use dots for nesting and "*" for every
// element of a collection.
type Rules map[string]any

// RuleCall is one parsed rule token.
type RuleCall struct {
	Name   string
	Params []string
}

func (c RuleCall) String() string {
	if len(c.Params) == 0 {
		return c.Name
	}
	return c.Name + ":" + strings.Join(c.Params, ",")
}

// ParseRules parses a rule list given as a string or a sequence of tokens.
func ParseRules(list any) ([]RuleCall, error) {
	var tokens []string
	switch s := list.(type) {
	case string:
		tokens = strings.Split(s, "|")
	case []string:
		tokens = s
	case []any:
		for _, t := range s {
			str, ok := t.(string)
			if !ok {
				return nil, fmt.Errorf("%w: rule token %v is %T, want string", ErrInvalidRuleDefinition, t, t)
			}
			tokens = append(tokens, str)
		}
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: rule list is %T, want string or []string", ErrInvalidRuleDefinition, list)
	}

	calls := make([]RuleCall, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		calls = append(calls, parseToken(tok))
	}
	return calls, nil
}

func parseToken(tok string) RuleCall {
	name, rest, hasParams := strings.Cut(tok, ":")
	call := RuleCall{Name: strings.TrimSpace(name)}
	if hasParams {
		call.Params = strings.Split(rest, ",")
	}
	return call
}

// LoadRules reads a YAML mapping of field path to rule list.
//
//	name: required|string|min:3
//	users.*.email:
//	  - required
//	  - email
func LoadRules(r io.Reader) (Rules, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Rules{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleDefinition, err)
	}

	rules := make(Rules, len(raw))
	for field, list := range raw {
		if _, err := ParseRules(list); err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		rules[field] = list
	}
	return rules, nil
}
