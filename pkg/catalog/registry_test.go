package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestRegistry_Basics(t *testing.T) {
	t.Parallel()

	registry := catalog.NewRegistry()
	registry.Register(catalog.Rule{ID: "R2", Alias: "second", Tags: []string{"b"}})
	registry.Register(catalog.Rule{ID: "R1", Alias: "first", Tags: []string{"a", "b"}})
	registry.RegisterAlias("uno", "R1")
	registry.RegisterAlias("dangling", "R9")

	assert.Equal(t, []string{"R1", "R2"}, registry.IDs())
	assert.True(t, registry.Has("R1"))
	assert.False(t, registry.Has("first"), "Has only matches canonical IDs")
	assert.False(t, registry.Has("r1"))

	id, ok := registry.Resolve("uno")
	assert.True(t, ok)
	assert.Equal(t, "R1", id)

	_, ok = registry.Resolve("dangling")
	assert.False(t, ok)

	rule, ok := registry.Get("second")
	require.True(t, ok)
	assert.Equal(t, "R2", rule.ID)

	assert.Equal(t, []string{"first", "uno"}, registry.Aliases("R1"))
	assert.Equal(t, []string{"a", "b"}, registry.Tags())
	assert.Equal(t, []string{"R1", "R2"}, registry.RulesForTag("b"))
	assert.Empty(t, registry.RulesForTag("missing"))

	rules := registry.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "R1", rules[0].ID)
}

func TestRegistry_Defaults(t *testing.T) {
	t.Parallel()

	registry := catalog.NewMDL()

	assert.Equal(t, map[string]any{
		"line_length":        80,
		"ignore_code_blocks": false,
		"code_blocks":        true,
		"tables":             true,
		"headers":            true,
	}, registry.Defaults("MD013"))
	assert.Equal(t, registry.Defaults("MD013"), registry.Defaults("line-length"))
	assert.Nil(t, registry.Defaults("MD001"))
	assert.Nil(t, registry.Defaults("MD999"))
}

func TestRegistry_CheckParam(t *testing.T) {
	t.Parallel()

	registry := catalog.NewMDL()

	tests := []struct {
		name    string
		rule    string
		param   string
		value   any
		wantErr string
	}{
		{name: "valid int", rule: "MD013", param: "line_length", value: 120},
		{name: "valid symbol choice", rule: "MD003", param: "style", value: style.Symbol("atx")},
		{name: "valid string choice", rule: "MD004", param: "style", value: "dash"},
		{name: "free style", rule: "MD035", param: "style", value: "---"},
		{name: "unknown rule is not checked", rule: "MD999", param: "anything", value: 1},
		{
			name: "wrong type", rule: "MD013", param: "line_length", value: "wide",
			wantErr: "MD013 parameter line_length expects an integer, got 'wide'",
		},
		{
			name: "bad choice", rule: "MD003", param: "style", value: style.Symbol("fancy"),
			wantErr: `MD003 parameter style: "fancy" is not one of atx, atx_closed, setext, setext_with_atx, consistent`,
		},
		{
			name: "unknown parameter", rule: "MD007", param: "indnet", value: 2,
			wantErr: `MD007 has no parameter "indnet" (known: indent)`,
		},
		{
			name: "rule without parameters", rule: "MD001", param: "level", value: 1,
			wantErr: `MD001 takes no parameters, got "level"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := registry.CheckParam(tt.rule, tt.param, tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestNewMDL(t *testing.T) {
	t.Parallel()

	registry := catalog.NewMDL()
	ids := registry.IDs()

	assert.Len(t, ids, 39)
	assert.Contains(t, ids, "MD047")
	assert.NotContains(t, ids, "MD008")

	for _, alias := range []string{"line-length", "header-style", "heading-style", "no-inline-html"} {
		_, ok := registry.Resolve(alias)
		assert.True(t, ok, alias)
	}

	for _, rule := range registry.Rules() {
		assert.NotEmpty(t, rule.Description, rule.ID)
		assert.NotEmpty(t, rule.Tags, rule.ID)
		for _, param := range rule.Params {
			assert.NoError(t, registry.CheckParam(rule.ID, param.Name, param.Default), "%s default for %s", rule.ID, param.Name)
		}
	}

	rule, ok := registry.Get("MD024")
	require.True(t, ok)
	param, ok := rule.Param("allow_different_nesting")
	require.True(t, ok)
	assert.Equal(t, "siblings_only", param.ExportName())
}

func TestDefault_WithLoader(t *testing.T) {
	t.Parallel()

	profile, err := style.Parse("style.rb",
		[]byte("tag :whitespace\nrule 'line-length', line_length: 'wide'\nexclude_rule :MD009\n"),
		style.WithCatalog(catalog.Default), style.WithUnknownRules(style.UnknownRulesFail))
	require.NoError(t, err)

	assert.True(t, profile.Rules.Enabled("MD010"))
	assert.False(t, profile.Rules.Enabled("MD009"))
	assert.False(t, profile.Rules.Enabled("MD001"))
	assert.True(t, profile.Parameters.Has("MD013"))

	require.Len(t, profile.Warnings, 2)
	assert.Equal(t, "MD013 parameter line_length expects an integer, got 'wide'", profile.Warnings[0].Message)
	assert.Contains(t, profile.Warnings[1].Message, "not enabled by `all` or a tag")
}
