package style

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// RuleCatalog is the capability a linting engine provides so the loader can
// check rule identifiers. Matching is an exact, case-sensitive string compare.
type RuleCatalog interface {
	Has(id string) bool
}

// Resolver is an optional RuleCatalog capability that maps aliases such as
// "line-length" to canonical identifiers.
type Resolver interface {
	Resolve(key string) (string, bool)
}

// TagResolver is an optional RuleCatalog capability required by the tag and
// exclude_tag directives.
type TagResolver interface {
	RulesForTag(tag string) []string
}

// ParamChecker is an optional RuleCatalog capability that validates a single
// parameter. Failures are reported as profile warnings.
type ParamChecker interface {
	CheckParam(id, name string, value any) error
}

// UnknownRules selects how rules missing from the catalog are handled.
type UnknownRules string

const (
	// UnknownRulesDefer leaves the decision to the consuming engine.
	UnknownRulesDefer UnknownRules = "defer"

	// UnknownRulesWarn records a warning on the profile.
	UnknownRulesWarn UnknownRules = "warn"

	// UnknownRulesFail aborts loading with an *UnknownRuleError.
	UnknownRulesFail UnknownRules = "fail"
)

// IsValid reports whether the policy is one of the known values.
func (u UnknownRules) IsValid() bool {
	switch u {
	case UnknownRulesDefer, UnknownRulesWarn, UnknownRulesFail:
		return true
	default:
		return false
	}
}

// Profile is the result of loading a style file.
type Profile struct {
	// Path is the file the profile was read from (empty for in-memory input).
	Path string

	// Rules holds the enabled/disabled state.
	Rules RuleSet

	// Parameters holds per-rule option overrides.
	Parameters RuleParameters

	// Directives are the parsed statements in source order.
	Directives []Directive

	// Warnings are non-fatal findings, in source order.
	Warnings []Warning
}

// Option configures Load and Parse.
type Option func(*options)

type options struct {
	catalog RuleCatalog
	policy  UnknownRules
	logger  *log.Logger
}

// WithCatalog sets the catalog used for identifier checks, alias resolution
// and tag expansion.
func WithCatalog(catalog RuleCatalog) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

// WithUnknownRules sets the unknown rule policy. The default is
// UnknownRulesDefer.
func WithUnknownRules(policy UnknownRules) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithLogger enables debug logging of the resolution steps.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load reads and resolves the style file at path.
func Load(path string, opts ...Option) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read style file: %w", err)
	}
	return Parse(path, data, opts...)
}

// Parse resolves style-file source held in memory.
func Parse(name string, data []byte, opts ...Option) (*Profile, error) {
	cfg := options{policy: UnknownRulesDefer}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.policy.IsValid() {
		return nil, fmt.Errorf("invalid unknown rule policy %q", cfg.policy)
	}

	directives, err := ParseDirectives(name, data)
	if err != nil {
		return nil, err
	}

	res := &resolver{name: name, opts: cfg, profile: &Profile{Path: name}}
	if err := res.resolve(directives); err != nil {
		return nil, err
	}
	return res.profile, nil
}

// resolver applies directives in the fixed three-stage order.
type resolver struct {
	name    string
	opts    options
	profile *Profile
}

func (r *resolver) debug(msg string, keyvals ...any) {
	if r.opts.logger != nil {
		r.opts.logger.Debug(msg, keyvals...)
	}
}

func (r *resolver) warn(line int, id, format string, args ...any) {
	r.profile.Warnings = append(r.profile.Warnings, Warning{
		Line:    line,
		RuleID:  id,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *resolver) resolve(directives []Directive) error {
	canonical := make([]Directive, 0, len(directives))
	for _, directive := range directives {
		directive = directive.clone()
		if err := r.canonicalize(&directive); err != nil {
			return err
		}
		canonical = append(canonical, directive)
	}
	r.profile.Directives = canonical

	rules := RuleSet{states: make(map[string]bool)}
	excluded := make(map[string]int)

	// Stage 1: baseline and tag inclusions.
	for _, directive := range canonical {
		switch directive.Kind {
		case DirectiveAll:
			rules.baseline = true
			r.debug("baseline enabled", "line", directive.Line)
		case DirectiveTag:
			for _, id := range r.tagRules(directive) {
				rules.states[id] = true
			}
		}
	}

	// Stage 2: parameters in file order.
	for _, directive := range canonical {
		if directive.Kind != DirectiveRule {
			continue
		}
		for _, param := range directive.Params {
			r.checkParam(directive, param)
			r.profile.Parameters.set(directive.Target, param.Name, param.Value)
		}
		r.debug("rule parameters applied", "rule", directive.Target, "count", len(directive.Params))
	}

	// Stage 3: exclusions in file order.
	for _, directive := range canonical {
		switch directive.Kind {
		case DirectiveExcludeRule:
			rules.states[directive.Target] = false
			excluded[directive.Target] = directive.Line
			r.debug("rule excluded", "rule", directive.Target)
		case DirectiveExcludeTag:
			for _, id := range r.tagRules(directive) {
				rules.states[id] = false
				excluded[id] = directive.Line
			}
		}
	}

	r.profile.Rules = rules
	r.checkConsistency(canonical, excluded)
	return nil
}

// canonicalize resolves aliases and applies the unknown rule policy.
func (r *resolver) canonicalize(directive *Directive) error {
	switch directive.Kind {
	case DirectiveRule, DirectiveExcludeRule:
	case DirectiveTag, DirectiveExcludeTag:
		tags, ok := r.opts.catalog.(TagResolver)
		if !ok {
			return &SyntaxError{
				Path: r.name, Line: directive.Line, Column: 1,
				Msg: directive.Kind.String() + " requires a rule catalog that knows tags",
			}
		}
		if len(tags.RulesForTag(directive.Target)) > 0 {
			return nil
		}
		return r.unknown(&UnknownRuleError{Path: r.name, Line: directive.Line, Tag: directive.Target})
	default:
		return nil
	}

	if r.opts.catalog == nil {
		return nil
	}

	if resolver, ok := r.opts.catalog.(Resolver); ok {
		if id, found := resolver.Resolve(directive.Target); found && id != directive.Target {
			r.debug("alias resolved", "alias", directive.Target, "rule", id)
			directive.Target = id
			directive.TargetSymbol = false
		}
	}

	if r.opts.catalog.Has(directive.Target) {
		return nil
	}
	return r.unknown(&UnknownRuleError{Path: r.name, Line: directive.Line, RuleID: directive.Target})
}

func (r *resolver) unknown(err *UnknownRuleError) error {
	switch r.opts.policy {
	case UnknownRulesFail:
		return err
	case UnknownRulesWarn:
		target := err.RuleID
		if err.Tag != "" {
			target = err.Tag
		}
		r.warn(err.Line, target, "%s", unknownMessage(err))
	}
	return nil
}

func unknownMessage(err *UnknownRuleError) string {
	if err.Tag != "" {
		return fmt.Sprintf("unknown tag %q", err.Tag)
	}
	return fmt.Sprintf("unknown rule %q", err.RuleID)
}

// tagRules expands a tag directive. canonicalize has already checked that
// the catalog resolves tags.
func (r *resolver) tagRules(directive Directive) []string {
	tags, _ := r.opts.catalog.(TagResolver)
	return tags.RulesForTag(directive.Target)
}

func (r *resolver) checkParam(directive Directive, param Param) {
	checker, ok := r.opts.catalog.(ParamChecker)
	if !ok || !r.opts.catalog.Has(directive.Target) {
		return
	}
	if err := checker.CheckParam(directive.Target, param.Name, param.Value); err != nil {
		r.warn(directive.Line, directive.Target, "%v", err)
	}
}

// checkConsistency reports parameters that have no effect.
func (r *resolver) checkConsistency(directives []Directive, excluded map[string]int) {
	for _, directive := range directives {
		if directive.Kind != DirectiveRule || len(directive.Params) == 0 {
			continue
		}
		if line, ok := excluded[directive.Target]; ok {
			r.warn(directive.Line, directive.Target,
				"parameters for %s have no effect: rule is excluded on line %d", directive.Target, line)
			continue
		}
		if !r.profile.Rules.Enabled(directive.Target) {
			r.warn(directive.Line, directive.Target,
				"parameters for %s have no effect: rule is not enabled by `all` or a tag", directive.Target)
		}
	}
}
