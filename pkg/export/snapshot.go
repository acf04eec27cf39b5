// Package export renders loaded style profiles for other tools: a resolved
// snapshot in JSON, YAML or TOML, and linter configuration files for
// markdownlint and gomdlint.
package export

import (
	"maps"
	"slices"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// RuleState is the resolved state of one rule.
type RuleState struct {
	ID      string         `json:"id" yaml:"id" toml:"id"`
	Alias   string         `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`
	Enabled bool           `json:"enabled" yaml:"enabled" toml:"enabled"`
	Known   bool           `json:"known" yaml:"known" toml:"known"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
}

// Snapshot is a serializable view of a profile.
type Snapshot struct {
	Source   string      `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	All      bool        `json:"all" yaml:"all" toml:"all"`
	Rules    []RuleState `json:"rules" yaml:"rules" toml:"rules"`
	Warnings []string    `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
}

// SnapshotOptions controls snapshot construction.
type SnapshotOptions struct {
	// WithDefaults fills in catalog defaults under profile parameters.
	WithDefaults bool

	// OnlyEnabled drops disabled rules.
	OnlyEnabled bool
}

// NewSnapshot resolves a profile against a catalog. Rules referenced by the
// profile but missing from the catalog are included with Known=false.
func NewSnapshot(profile *style.Profile, registry *catalog.Registry, opts SnapshotOptions) *Snapshot {
	snap := &Snapshot{
		Source: profile.Path,
		All:    profile.Rules.AllEnabled(),
		Rules:  []RuleState{},
	}

	for _, id := range ruleIDs(profile, registry) {
		state := RuleState{
			ID:      id,
			Enabled: profile.Rules.Enabled(id),
		}
		if rule, ok := registry.Get(id); ok && rule.ID == id {
			state.Known = true
			state.Alias = rule.Alias
		}
		if opts.OnlyEnabled && !state.Enabled {
			continue
		}
		state.Params = mergeParams(registry, profile, id, opts.WithDefaults)
		snap.Rules = append(snap.Rules, state)
	}

	for _, warning := range profile.Warnings {
		snap.Warnings = append(snap.Warnings, warning.String())
	}
	return snap
}

// ruleIDs returns catalog IDs plus any extra IDs the profile mentions.
func ruleIDs(profile *style.Profile, registry *catalog.Registry) []string {
	seen := make(map[string]struct{})
	for _, id := range registry.IDs() {
		seen[id] = struct{}{}
	}
	for id := range profile.Rules.States() {
		seen[id] = struct{}{}
	}
	for _, id := range profile.Parameters.Rules() {
		seen[id] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

func mergeParams(registry *catalog.Registry, profile *style.Profile, id string, withDefaults bool) map[string]any {
	params := make(map[string]any)
	if withDefaults {
		for name, value := range registry.Defaults(id) {
			params[name] = style.Plain(value)
		}
	}
	for name, value := range profile.Parameters.For(id) {
		params[name] = style.Plain(value)
	}
	if len(params) == 0 {
		return nil
	}
	return params
}
