package style_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

func FuzzParseFile(f *testing.F) {
	seeds := []string{
		"",
		"all\n",
		sampleStyle,
		"rule 'MD013', :line_length => 100\n",
		"rule(\"MD033\",\n  allowed_elements: ['br', :img, 1.5, nil])\n",
		"exclude_rule :MD041 # trailing\n",
		"rule 'MD013',\n",
		"rule 'MD013' 'MD014'",
		"\x00\xff",
		"rule ':'",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		file, err := style.ParseFile("fuzz.rb", data)
		if err != nil {
			if !errors.Is(err, style.ErrMalformedConfig) {
				t.Fatalf("error does not wrap ErrMalformedConfig: %v", err)
			}
			var syntaxErr *style.SyntaxError
			if !errors.As(err, &syntaxErr) || syntaxErr.Line < 1 || syntaxErr.Column < 1 {
				t.Fatalf("error has no position: %v", err)
			}
			return
		}

		style.FormatFile(file)
		if _, err := style.Parse("fuzz.rb", data); err != nil && !errors.Is(err, style.ErrMalformedConfig) {
			t.Fatalf("parseable file failed to load: %v", err)
		}
	})
}
