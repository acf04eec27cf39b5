package export_test

import (
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/export"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

const docsStyle = `all
rule 'MD013', line_length: 120, headers: false
rule 'MD003', style: :atx
rule 'MD033', allowed_elements: 'br'
exclude_rule 'MD033'
exclude_rule 'MD041'
`

func loadProfile(t *testing.T, src string) *style.Profile {
	t.Helper()

	profile, err := style.Parse("docs/.mdl_style.rb", []byte(src),
		style.WithCatalog(catalog.Default), style.WithUnknownRules(style.UnknownRulesDefer))
	require.NoError(t, err)
	return profile
}

func findRule(t *testing.T, snap *export.Snapshot, id string) export.RuleState {
	t.Helper()

	for _, rule := range snap.Rules {
		if rule.ID == id {
			return rule
		}
	}
	t.Fatalf("rule %s not in snapshot", id)
	return export.RuleState{}
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	profile := loadProfile(t, docsStyle+"exclude_rule 'X1'\n")
	snap := export.NewSnapshot(profile, catalog.Default, export.SnapshotOptions{})

	assert.Equal(t, "docs/.mdl_style.rb", snap.Source)
	assert.True(t, snap.All)
	assert.Len(t, snap.Rules, len(catalog.Default.IDs())+1)

	md013 := findRule(t, snap, "MD013")
	assert.True(t, md013.Enabled)
	assert.True(t, md013.Known)
	assert.Equal(t, "line-length", md013.Alias)
	assert.Equal(t, map[string]any{"line_length": 120, "headers": false}, md013.Params)

	md003 := findRule(t, snap, "MD003")
	assert.Equal(t, map[string]any{"style": "atx"}, md003.Params)

	md033 := findRule(t, snap, "MD033")
	assert.False(t, md033.Enabled)
	assert.Equal(t, map[string]any{"allowed_elements": "br"}, md033.Params)

	unknown := findRule(t, snap, "X1")
	assert.False(t, unknown.Known)
	assert.False(t, unknown.Enabled)

	assert.Nil(t, findRule(t, snap, "MD001").Params)
	require.Len(t, snap.Warnings, 1)
	assert.Contains(t, snap.Warnings[0], "line 4: parameters for MD033 have no effect")
}

func TestNewSnapshot_Options(t *testing.T) {
	t.Parallel()

	profile := loadProfile(t, docsStyle)

	snap := export.NewSnapshot(profile, catalog.Default, export.SnapshotOptions{WithDefaults: true, OnlyEnabled: true})

	for _, rule := range snap.Rules {
		assert.True(t, rule.Enabled, rule.ID)
	}
	md013 := findRule(t, snap, "MD013")
	assert.Equal(t, map[string]any{
		"line_length":        120,
		"ignore_code_blocks": false,
		"code_blocks":        true,
		"tables":             true,
		"headers":            false,
	}, md013.Params)
	assert.Equal(t, map[string]any{"style": "fenced"}, findRule(t, snap, "MD046").Params)
}

func TestSnapshot_Marshal(t *testing.T) {
	t.Parallel()

	profile := loadProfile(t, "exclude_rule 'MD001'\nrule 'MD009', br_spaces: nil\n")
	snap := export.NewSnapshot(profile, catalog.Default, export.SnapshotOptions{})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := snap.Marshal(export.FormatJSON)
		require.NoError(t, err)

		var decoded export.Snapshot
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.False(t, decoded.All)
		assert.Len(t, decoded.Rules, len(snap.Rules))
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		data, err := snap.Marshal(export.FormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "source: docs/.mdl_style.rb")

		var decoded export.Snapshot
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, "MD001", decoded.Rules[0].ID)
	})

	t.Run("toml drops nil values", func(t *testing.T) {
		t.Parallel()

		data, err := snap.Marshal(export.FormatTOML)
		require.NoError(t, err)

		var decoded export.Snapshot
		require.NoError(t, toml.Unmarshal(data, &decoded))
		assert.Len(t, decoded.Rules, len(snap.Rules))

		// The original snapshot keeps its nil parameter.
		assert.Contains(t, findRule(t, snap, "MD009").Params, "br_spaces")
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := snap.Marshal("xml")
		require.Error(t, err)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]export.Format{
		"json": export.FormatJSON, "YAML": export.FormatYAML, " yml ": export.FormatYAML, "toml": export.FormatTOML,
	} {
		got, err := export.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := export.ParseFormat("ini")
	assert.ErrorContains(t, err, `unknown format "ini"`)
}
