package style

import (
	"maps"
	"slices"
)

// RuleSet is the enabled/disabled state of every rule. Rules without an
// explicit state inherit the baseline, which is true only when the style file
// contains an `all` directive.
//
// A RuleSet is immutable once returned by the loader.
type RuleSet struct {
	baseline bool
	states   map[string]bool
}

// AllEnabled reports whether the `all` baseline was set.
func (r RuleSet) AllEnabled() bool {
	return r.baseline
}

// Enabled reports whether the rule is enabled.
func (r RuleSet) Enabled(id string) bool {
	if state, ok := r.states[id]; ok {
		return state
	}
	return r.baseline
}

// Explicit returns the state recorded for id by a tag or exclusion directive.
func (r RuleSet) Explicit(id string) (enabled, ok bool) {
	enabled, ok = r.states[id]
	return enabled, ok
}

// Included returns rules explicitly enabled (by tag), sorted.
func (r RuleSet) Included() []string {
	return r.collect(true)
}

// Excluded returns rules explicitly disabled, sorted.
func (r RuleSet) Excluded() []string {
	return r.collect(false)
}

// Filter returns the subset of ids that are enabled, preserving order.
func (r RuleSet) Filter(ids []string) []string {
	var out []string
	for _, id := range ids {
		if r.Enabled(id) {
			out = append(out, id)
		}
	}
	return out
}

// States returns a copy of the explicit per-rule states.
func (r RuleSet) States() map[string]bool {
	return maps.Clone(r.states)
}

// Equal reports whether two rule sets are identical.
func (r RuleSet) Equal(other RuleSet) bool {
	return r.baseline == other.baseline && maps.Equal(r.states, other.states)
}

func (r RuleSet) collect(want bool) []string {
	var out []string
	for id, state := range r.states {
		if state == want {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// RuleParameters maps rule identifiers to their option overrides.
// Accessors return copies; the loader is the only writer.
type RuleParameters struct {
	byRule map[string]map[string]any
}

// Rules returns the rule identifiers that carry parameters, sorted.
func (p RuleParameters) Rules() []string {
	return slices.Sorted(maps.Keys(p.byRule))
}

// Len returns the number of rules that carry parameters.
func (p RuleParameters) Len() int {
	return len(p.byRule)
}

// Has reports whether the rule has any parameter overrides.
func (p RuleParameters) Has(id string) bool {
	_, ok := p.byRule[id]
	return ok
}

// For returns a copy of the options for id, or nil if there are none.
func (p RuleParameters) For(id string) map[string]any {
	options, ok := p.byRule[id]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(options))
	for name, value := range options {
		out[name] = cloneValue(value)
	}
	return out
}

// Value returns a single option value.
func (p RuleParameters) Value(id, name string) (any, bool) {
	value, ok := p.byRule[id][name]
	if !ok {
		return nil, false
	}
	return cloneValue(value), true
}

// Int returns an integer option value.
func (p RuleParameters) Int(id, name string) (int, bool) {
	value, ok := p.byRule[id][name].(int)
	return value, ok
}

// Text returns a string or symbol option value as a string.
func (p RuleParameters) Text(id, name string) (string, bool) {
	switch value := p.byRule[id][name].(type) {
	case string:
		return value, true
	case Symbol:
		return string(value), true
	default:
		return "", false
	}
}

// Bool returns a boolean option value.
func (p RuleParameters) Bool(id, name string) (bool, bool) {
	value, ok := p.byRule[id][name].(bool)
	return value, ok
}

func (p *RuleParameters) set(id, name string, value any) {
	if p.byRule == nil {
		p.byRule = make(map[string]map[string]any)
	}
	options, ok := p.byRule[id]
	if !ok {
		options = make(map[string]any)
		p.byRule[id] = options
	}
	options[name] = cloneValue(value)
}
