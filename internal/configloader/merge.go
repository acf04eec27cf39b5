package configloader

import "github.com/yaklabco/mdlstyle/pkg/config"

// overlay copies every non-zero field of layer onto dst. An unset key in a
// higher layer never clears a lower one, which also means a layer can turn
// strict mode on but not off.
func overlay(dst, layer *config.Config) {
	setString(&dst.Style, layer.Style)
	setString(&dst.UnknownRules, layer.UnknownRules)
	setString(&dst.Format, layer.Format)
	setString(&dst.Export.Target, layer.Export.Target)
	setString(&dst.Export.Output, layer.Export.Output)
	dst.Strict = dst.Strict || layer.Strict
}

func setString[T ~string](dst *T, value T) {
	if value != "" {
		*dst = value
	}
}

// MergeAll layers configs in order; later configs win. Nil entries are
// skipped and the inputs are left untouched.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, layer := range configs {
		switch {
		case layer == nil:
		case result == nil:
			result = layer.Clone()
		default:
			overlay(result, layer)
		}
	}
	return result
}
