package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.UnknownRulesWarn, cfg.UnknownRules)
	assert.Equal(t, "markdownlint-json", cfg.Export.Target)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Empty(t, cfg.Style)
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("modifying clone leaves original intact", func(t *testing.T) {
		original := &config.Config{
			Style:        ".mdl_style.rb",
			UnknownRules: config.UnknownRulesFail,
			Export:       config.ExportConfig{Target: "gomdlint", Output: "out.yml"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Style = "other.rb"
		clone.Export.Target = "markdownlint-yaml"
		assert.Equal(t, ".mdl_style.rb", original.Style)
		assert.Equal(t, "gomdlint", original.Export.Target)
	})
}

func TestToYAML(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		var c *config.Config
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("omits CLI-only fields", func(t *testing.T) {
		cfg := &config.Config{
			Style:        "style.rb",
			UnknownRules: config.UnknownRulesDefer,
			Format:       config.FormatJSON,
			Strict:       true,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "style: style.rb")
		assert.Contains(t, out, "unknown_rules: defer")
		assert.NotContains(t, out, "format")
		assert.NotContains(t, out, "strict")
	})

	t.Run("with header", func(t *testing.T) {
		cfg := &config.Config{Style: "style.rb"}

		data, err := cfg.ToYAMLWithHeader("# mdlstyle configuration")
		require.NoError(t, err)
		assert.Equal(t, "# mdlstyle configuration\n\nstyle: style.rb\n", string(data))
	})
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *config.Config
		wantErr bool
	}{
		{
			name:  "empty document",
			input: "",
			want:  &config.Config{},
		},
		{
			name: "all keys",
			input: `style: docs/.mdl_style.rb
unknown_rules: fail
export:
  target: gomdlint
  output: .gomdlint.yml
`,
			want: &config.Config{
				Style:        "docs/.mdl_style.rb",
				UnknownRules: config.UnknownRulesFail,
				Export:       config.ExportConfig{Target: "gomdlint", Output: ".gomdlint.yml"},
			},
		},
		{
			name:    "unknown key",
			input:   "stlye: typo.rb\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			input:   "style: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.FromYAML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	original := &config.Config{
		Style:        "style.rb",
		UnknownRules: config.UnknownRulesWarn,
		Export:       config.ExportConfig{Target: "markdownlint-yaml"},
	}

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}
