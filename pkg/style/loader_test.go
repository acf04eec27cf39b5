package style_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

// fakeCatalog implements every optional catalog capability.
type fakeCatalog struct {
	tags    map[string][]string // rule ID -> tags
	aliases map[string]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tags: map[string][]string{
			"LEN":   {"line_length"},
			"OTHER": {"headers"},
			"MD001": {"headers"},
			"MD013": {"line_length"},
			"MD033": {"html"},
		},
		aliases: map[string]string{"line-length": "MD013"},
	}
}

func (c *fakeCatalog) Has(id string) bool {
	_, ok := c.tags[id]
	return ok
}

func (c *fakeCatalog) Resolve(key string) (string, bool) {
	if c.Has(key) {
		return key, true
	}
	id, ok := c.aliases[key]
	return id, ok
}

func (c *fakeCatalog) RulesForTag(tag string) []string {
	var ids []string
	for id, tags := range c.tags {
		if slices.Contains(tags, tag) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (c *fakeCatalog) CheckParam(id, name string, _ any) error {
	if name == "bogus" {
		return fmt.Errorf("%s has no parameter %q", id, name)
	}
	return nil
}

// idSet implements only the required RuleCatalog capability.
type idSet map[string]bool

func (s idSet) Has(id string) bool { return s[id] }

func mustParse(t *testing.T, src string, opts ...style.Option) *style.Profile {
	t.Helper()

	profile, err := style.Parse("style.rb", []byte(src), opts...)
	require.NoError(t, err)
	require.NotNil(t, profile)
	return profile
}

func warningMessages(profile *style.Profile) []string {
	messages := make([]string, 0, len(profile.Warnings))
	for _, warning := range profile.Warnings {
		messages = append(messages, warning.Message)
	}
	return messages
}

func TestParse_EmptyFileEnablesNothing(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "\n\n", "# only a comment\n"} {
		profile := mustParse(t, src)

		assert.False(t, profile.Rules.AllEnabled())
		assert.False(t, profile.Rules.Enabled("MD001"))
		assert.Empty(t, profile.Rules.States())
		assert.Zero(t, profile.Parameters.Len())
		assert.Empty(t, profile.Warnings)
	}
}

func TestParse_AllOnly(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\n")

	assert.True(t, profile.Rules.AllEnabled())
	for _, id := range []string{"MD001", "MD013", "LEN", "anything"} {
		assert.True(t, profile.Rules.Enabled(id), id)
	}
	assert.Zero(t, profile.Parameters.Len())
	assert.Empty(t, profile.Rules.Excluded())
}

func TestParse_ExclusionWinsOverParameters(t *testing.T) {
	t.Parallel()

	orders := map[string]string{
		"rule first":      "all\nrule 'LEN', max: 120\nexclude_rule 'LEN'\n",
		"exclusion first": "all\nexclude_rule 'LEN'\nrule 'LEN', max: 120\n",
		"all last":        "exclude_rule 'LEN'\nrule 'LEN', max: 120\nall\n",
	}

	for name, src := range orders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			profile := mustParse(t, src)

			assert.False(t, profile.Rules.Enabled("LEN"))
			assert.True(t, profile.Rules.Enabled("OTHER"))

			// Parameters are retained for the disabled rule.
			maxLen, ok := profile.Parameters.Int("LEN", "max")
			assert.True(t, ok)
			assert.Equal(t, 120, maxLen)
		})
	}
}

func TestParse_ExcludedRuleWithParameters(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\nrule 'LEN', max: 120\nexclude_rule 'LEN'\n")

	assert.True(t, profile.Rules.AllEnabled())
	assert.False(t, profile.Rules.Enabled("LEN"))
	assert.True(t, profile.Rules.Enabled("OTHER"))
	assert.Equal(t, map[string]any{"max": 120}, profile.Parameters.For("LEN"))

	require.Len(t, profile.Warnings, 1)
	assert.Equal(t, 2, profile.Warnings[0].Line)
	assert.Equal(t, "LEN", profile.Warnings[0].RuleID)
	assert.Equal(t, "parameters for LEN have no effect: rule is excluded on line 3", profile.Warnings[0].Message)
}

func TestParse_ExclusionIsIdempotent(t *testing.T) {
	t.Parallel()

	once := mustParse(t, "all\nexclude_rule 'MD033'\n")
	twice := mustParse(t, "all\nexclude_rule 'MD033'\nexclude_rule 'MD033'\n")

	assert.True(t, once.Rules.Equal(twice.Rules))
	assert.Equal(t, []string{"MD033"}, twice.Rules.Excluded())
}

func TestParse_Deterministic(t *testing.T) {
	t.Parallel()

	first := mustParse(t, sampleStyle, style.WithCatalog(newFakeCatalog()))
	for range 5 {
		again := mustParse(t, sampleStyle, style.WithCatalog(newFakeCatalog()))
		assert.True(t, first.Rules.Equal(again.Rules))
		assert.Equal(t, first.Parameters, again.Parameters)
		assert.Equal(t, first.Warnings, again.Warnings)
	}
}

func TestParse_LaterParametersOverrideEarlier(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\nrule 'MD013', line_length: 80, tables: false\nrule 'MD013', line_length: 120\n")

	assert.Equal(t, map[string]any{"line_length": 120, "tables": false}, profile.Parameters.For("MD013"))
}

func TestParse_RuleDirectiveDoesNotEnable(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "rule 'MD013', line_length: 100\n")

	assert.False(t, profile.Rules.Enabled("MD013"))
	assert.True(t, profile.Parameters.Has("MD013"))
	require.Len(t, profile.Warnings, 1)
	assert.Contains(t, profile.Warnings[0].Message, "not enabled by `all` or a tag")

	// A rule directive without parameters is accepted silently.
	profile = mustParse(t, "rule 'MD013'\n")
	assert.Empty(t, profile.Warnings)
	assert.False(t, profile.Parameters.Has("MD013"))
}

func TestParse_SampleStyle(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, sampleStyle)

	assert.True(t, profile.Rules.AllEnabled())
	assert.Equal(t, []string{"MD033", "MD041", "MD047"}, profile.Rules.Excluded())
	assert.Equal(t, []string{"MD003", "MD004", "MD007", "MD013", "MD030", "MD035"}, profile.Parameters.Rules())

	lineLength, ok := profile.Parameters.Int("MD013", "line_length")
	assert.True(t, ok)
	assert.Equal(t, 120, lineLength)

	headingStyle, ok := profile.Parameters.Text("MD003", "style")
	assert.True(t, ok)
	assert.Equal(t, "atx", headingStyle)

	hr, ok := profile.Parameters.Text("MD035", "style")
	assert.True(t, ok)
	assert.Equal(t, "---", hr)

	tables, ok := profile.Parameters.Bool("MD013", "tables")
	assert.True(t, ok)
	assert.False(t, tables)

	assert.Equal(t, []string{"MD001", "MD013"}, profile.Rules.Filter([]string{"MD001", "MD013", "MD033"}))
	assert.Empty(t, profile.Warnings)
}

func TestParse_MalformedReturnsNoProfile(t *testing.T) {
	t.Parallel()

	profile, err := style.Parse("style.rb", []byte("all\nrule 'MD013, line_length: 80\n"))

	require.Error(t, err)
	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, style.ErrMalformedConfig))
	assert.Contains(t, err.Error(), "style.rb:2:6")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".mdl_style.rb")
	require.NoError(t, os.WriteFile(path, []byte(sampleStyle), 0o644))

	profile, err := style.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, profile.Path)
	assert.Len(t, profile.Directives, 10)
	assert.False(t, profile.Rules.Enabled("MD033"))
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.rb")
	profile, err := style.Load(path)

	require.Error(t, err)
	assert.Nil(t, profile)
	assert.ErrorIs(t, err, style.ErrNotFound)
	assert.Contains(t, err.Error(), path)
}

func TestParse_UnknownRulePolicies(t *testing.T) {
	t.Parallel()

	const src = "all\nexclude_rule 'MD999'\n"
	catalog := idSet{"MD001": true}

	t.Run("defer is the default", func(t *testing.T) {
		t.Parallel()

		profile := mustParse(t, src, style.WithCatalog(catalog))
		assert.Empty(t, profile.Warnings)
		assert.False(t, profile.Rules.Enabled("MD999"))
	})

	t.Run("warn", func(t *testing.T) {
		t.Parallel()

		profile := mustParse(t, src, style.WithCatalog(catalog), style.WithUnknownRules(style.UnknownRulesWarn))
		require.Len(t, profile.Warnings, 1)
		assert.Equal(t, `unknown rule "MD999"`, profile.Warnings[0].Message)
		assert.Equal(t, 2, profile.Warnings[0].Line)
		assert.False(t, profile.Rules.Enabled("MD999"))
	})

	t.Run("fail", func(t *testing.T) {
		t.Parallel()

		profile, err := style.Parse("style.rb", []byte(src),
			style.WithCatalog(catalog), style.WithUnknownRules(style.UnknownRulesFail))
		require.Error(t, err)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, style.ErrUnknownRule)

		var unknownErr *style.UnknownRuleError
		require.True(t, errors.As(err, &unknownErr))
		assert.Equal(t, "MD999", unknownErr.RuleID)
		assert.Equal(t, 2, unknownErr.Line)
		assert.Equal(t, `style.rb:2: unknown rule "MD999"`, err.Error())
	})

	t.Run("no catalog never fails", func(t *testing.T) {
		t.Parallel()

		profile := mustParse(t, src, style.WithUnknownRules(style.UnknownRulesFail))
		assert.Empty(t, profile.Warnings)
	})

	t.Run("invalid policy", func(t *testing.T) {
		t.Parallel()

		_, err := style.Parse("", []byte(src), style.WithUnknownRules("sometimes"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid unknown rule policy")
	})
}

func TestParse_IdentifiersAreCaseSensitive(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\nexclude_rule 'md033'\n",
		style.WithCatalog(idSet{"MD033": true}), style.WithUnknownRules(style.UnknownRulesWarn))

	assert.True(t, profile.Rules.Enabled("MD033"))
	assert.False(t, profile.Rules.Enabled("md033"))
	assert.Len(t, profile.Warnings, 1)
}

func TestParse_AliasResolution(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\nrule 'line-length', line_length: 100\nexclude_rule 'line-length'\n",
		style.WithCatalog(newFakeCatalog()), style.WithUnknownRules(style.UnknownRulesFail))

	assert.True(t, profile.Parameters.Has("MD013"))
	assert.False(t, profile.Parameters.Has("line-length"))
	assert.False(t, profile.Rules.Enabled("MD013"))
	assert.Equal(t, "MD013", profile.Directives[1].Target)
}

func TestParse_Tags(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog()

	t.Run("tag includes", func(t *testing.T) {
		t.Parallel()

		profile := mustParse(t, "tag 'headers'\n", style.WithCatalog(catalog))
		assert.False(t, profile.Rules.AllEnabled())
		assert.Equal(t, []string{"MD001", "OTHER"}, profile.Rules.Included())
		assert.False(t, profile.Rules.Enabled("MD013"))

		enabled, ok := profile.Rules.Explicit("MD001")
		assert.True(t, ok)
		assert.True(t, enabled)
	})

	t.Run("exclude_tag wins over tag", func(t *testing.T) {
		t.Parallel()

		profile := mustParse(t, "exclude_tag :line_length\nall\ntag 'line_length'\n", style.WithCatalog(catalog))
		assert.False(t, profile.Rules.Enabled("MD013"))
		assert.False(t, profile.Rules.Enabled("LEN"))
		assert.True(t, profile.Rules.Enabled("MD033"))
	})

	t.Run("unknown tag", func(t *testing.T) {
		t.Parallel()

		profile := mustParse(t, "all\nexclude_tag 'nope'\n",
			style.WithCatalog(catalog), style.WithUnknownRules(style.UnknownRulesWarn))
		assert.Equal(t, []string{`unknown tag "nope"`}, warningMessages(profile))

		_, err := style.Parse("", []byte("tag 'nope'"),
			style.WithCatalog(catalog), style.WithUnknownRules(style.UnknownRulesFail))
		var unknownErr *style.UnknownRuleError
		require.True(t, errors.As(err, &unknownErr))
		assert.Equal(t, "nope", unknownErr.Tag)
	})

	t.Run("tags need a tag-aware catalog", func(t *testing.T) {
		t.Parallel()

		_, err := style.Parse("", []byte("all\ntag 'headers'\n"), style.WithCatalog(idSet{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, style.ErrMalformedConfig)
		assert.Contains(t, err.Error(), "2:1: tag requires a rule catalog that knows tags")
	})
}

func TestParse_ParameterChecks(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\nrule 'MD013', bogus: 1, line_length: 90\nrule 'UNKNOWN', bogus: 2\n",
		style.WithCatalog(newFakeCatalog()))

	assert.Equal(t, []string{`MD013 has no parameter "bogus"`}, warningMessages(profile))
	// The value is still recorded for the consuming engine to decide.
	_, ok := profile.Parameters.Value("MD013", "bogus")
	assert.True(t, ok)
}

func TestParse_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	profile := mustParse(t, "all\nrule 'MD033', allowed: ['br']\nexclude_rule 'MD041'\n")

	options := profile.Parameters.For("MD033")
	options["allowed"].([]any)[0] = "img"
	options["extra"] = true

	value, _ := profile.Parameters.Value("MD033", "allowed")
	assert.Equal(t, []any{"br"}, value)
	assert.Len(t, profile.Parameters.For("MD033"), 1)

	states := profile.Rules.States()
	states["MD041"] = true
	assert.False(t, profile.Rules.Enabled("MD041"))

	assert.Nil(t, profile.Parameters.For("MD999"))
	_, ok := profile.Parameters.Int("MD033", "allowed")
	assert.False(t, ok)
}

func TestParse_DebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	mustParse(t, "all\nrule 'line-length', line_length: 100\nexclude_rule 'MD033'\n",
		style.WithCatalog(newFakeCatalog()), style.WithLogger(logger))

	out := buf.String()
	for _, want := range []string{"baseline enabled", "alias resolved", "rule parameters applied", "rule excluded"} {
		assert.True(t, strings.Contains(out, want), "missing %q in %q", want, out)
	}
}
