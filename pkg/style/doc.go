// Package style loads mdl style files into an immutable rule profile.
//
// A style file is a list of directives:
//
//	# comment
//	all
//	rule 'MD013', line_length: 120, code_blocks: false
//	rule 'MD003', style: :atx
//	exclude_rule 'MD033'
//
// Directives are applied in three stages regardless of their position in the
// file: first the `all` baseline (and `tag` inclusions), then `rule`
// parameters in file order, then `exclude_rule` (and `exclude_tag`)
// exclusions in file order. An exclusion therefore always wins over a
// parameter directive for the same rule.
//
// Rule identifiers are matched against a RuleCatalog supplied by the
// consuming linter. Whether an unknown identifier is fatal is an integration
// choice expressed through WithUnknownRules.
package style
