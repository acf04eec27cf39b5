package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{true, "true"},
		{80, "80"},
		{int64(-3), "-3"},
		{1.5, "1.5"},
		{2.0, "2.0"},
		{style.Symbol("atx"), ":atx"},
		{"it's", `'it\'s'`},
		{`C:\docs`, `'C:\\docs'`},
		{[]any{"br", style.Symbol("dash"), []any{}}, "['br', :dash, []]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, style.FormatValue(tt.value))
	}
}

func TestPlain(t *testing.T) {
	t.Parallel()

	in := []any{style.Symbol("atx"), "x", 3, []any{style.Symbol("nested")}}
	out := style.Plain(in)

	assert.Equal(t, []any{"atx", "x", 3, []any{"nested"}}, out)
	assert.Equal(t, style.Symbol("atx"), in[0], "input must not be modified")
	assert.Equal(t, "dash", style.Plain(style.Symbol("dash")))
	assert.Equal(t, true, style.Plain(true))
}
