package lender

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when an operation names a lender that is not in
// the rule set.
var ErrNotFound = errors.New("lender not found")

// RuleSet is an insertion-ordered mapping from lender name to Rule. It is
// mutated only through Upsert, Delete, and AddDefault; iteration (matching,
// alerts, serialization) always follows insertion order.
//
// The zero value is not usable; construct with NewRuleSet, DefaultRuleSet,
// or by unmarshalling YAML.
type RuleSet struct {
	names []string
	rules map[string]Rule
}

// Entry pairs a lender name with its rule for ordered listings.
type Entry struct {
	Name string `json:"name"`
	Rule `yaml:",inline"`
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]Rule)}
}

// Len returns the number of lenders in the set.
func (rs *RuleSet) Len() int {
	return len(rs.names)
}

// Names returns the lender names in insertion order.
func (rs *RuleSet) Names() []string {
	return append([]string(nil), rs.names...)
}

// Get returns the rule for a lender and whether it exists.
func (rs *RuleSet) Get(name string) (Rule, bool) {
	rule, ok := rs.rules[name]
	return rule, ok
}

// Entries returns the full rule set in insertion order.
func (rs *RuleSet) Entries() []Entry {
	entries := make([]Entry, 0, len(rs.names))
	for _, name := range rs.names {
		entries = append(entries, Entry{Name: name, Rule: rs.rules[name]})
	}
	return entries
}

// Upsert inserts or replaces the rule for a lender. Name collisions are
// last-write-wins; the original position in the iteration order is kept when
// an existing lender is replaced.
func (rs *RuleSet) Upsert(name string, rule Rule) {
	if rs.rules == nil {
		rs.rules = make(map[string]Rule)
	}
	if _, exists := rs.rules[name]; !exists {
		rs.names = append(rs.names, name)
	}
	rs.rules[name] = rule
}

// Delete removes a lender from the set. It returns ErrNotFound when the
// lender is absent.
func (rs *RuleSet) Delete(name string) error {
	if _, exists := rs.rules[name]; !exists {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	delete(rs.rules, name)
	for i, n := range rs.names {
		if n == name {
			rs.names = append(rs.names[:i], rs.names[i+1:]...)
			break
		}
	}
	return nil
}

// AddDefault inserts a lender with the baseline rule values. Like Upsert,
// an existing lender of the same name is overwritten.
func (rs *RuleSet) AddDefault(name string) {
	rs.Upsert(name, DefaultRule())
}

// Checklist returns a copy of the ordered funding document list for a
// lender, or ErrNotFound when the lender is absent.
func (rs *RuleSet) Checklist(name string) ([]string, error) {
	rule, ok := rs.rules[name]
	if !ok {
		return nil, fmt.Errorf("checklist for %q: %w", name, ErrNotFound)
	}
	return append([]string(nil), rule.Checklist...), nil
}

// MarshalYAML encodes the rule set as a YAML mapping keyed by lender name,
// preserving insertion order via explicit node construction.
func (rs *RuleSet) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, name := range rs.names {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: name,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(rs.rules[name]); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// UnmarshalYAML decodes a YAML mapping keyed by lender name, preserving the
// document order as the insertion order.
func (rs *RuleSet) UnmarshalYAML(value *yaml.Node) error {
	rs.names = nil
	rs.rules = make(map[string]Rule)

	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("rule set must be a mapping of lender name to rule, got %s", value.Tag)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var rule Rule
		if err := valueNode.Decode(&rule); err != nil {
			return fmt.Errorf("failed to parse rule for %q: %w", keyNode.Value, err)
		}
		if rule.Checklist == nil {
			rule.Checklist = []string{}
		}
		rs.Upsert(keyNode.Value, rule)
	}

	return nil
}
