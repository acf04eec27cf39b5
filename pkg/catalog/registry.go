package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Registry holds all known rules.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	aliases map[string]string // alias -> canonical ID
}

// Registry implements every catalog capability the loader probes for.
var (
	_ style.RuleCatalog  = (*Registry)(nil)
	_ style.Resolver     = (*Registry)(nil)
	_ style.TagResolver  = (*Registry)(nil)
	_ style.ParamChecker = (*Registry)(nil)
)

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry, replacing any rule with the same ID.
// The rule's Alias is registered as well.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rule.ID] = rule
	if rule.Alias != "" {
		r.aliases[rule.Alias] = rule.ID
	}
}

// RegisterAlias maps an additional alias to a canonical rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Has reports whether id is a registered canonical rule ID.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// Get retrieves a rule by ID or alias.
func (r *Registry) Get(key string) (Rule, bool) {
	id, ok := r.Resolve(key)
	if !ok {
		return Rule{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Resolve returns the canonical ID for a rule ID or alias.
func (r *Registry) Resolve(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[key]; ok {
		return key, true
	}
	if targetID, ok := r.aliases[key]; ok {
		if _, ok := r.byID[targetID]; ok {
			return targetID, true
		}
	}
	return "", false
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// Aliases returns every alias that maps to id, sorted.
func (r *Registry) Aliases(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, target := range r.aliases {
		if target == id {
			result = append(result, alias)
		}
	}
	slices.Sort(result)
	return result
}

// Tags returns every tag used by a registered rule, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, rule := range r.byID {
		for _, tag := range rule.Tags {
			seen[tag] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for tag := range seen {
		result = append(result, tag)
	}
	slices.Sort(result)
	return result
}

// RulesForTag returns the sorted IDs of rules carrying tag.
func (r *Registry) RulesForTag(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for id, rule := range r.byID {
		if rule.HasTag(tag) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

// Defaults returns the default parameter values of a rule.
func (r *Registry) Defaults(id string) map[string]any {
	rule, ok := r.Get(id)
	if !ok || len(rule.Params) == 0 {
		return nil
	}

	defaults := make(map[string]any, len(rule.Params))
	for _, param := range rule.Params {
		defaults[param.Name] = param.Default
	}
	return defaults
}

// CheckParam validates a parameter value against the rule's declaration.
// Unknown rules are not checked.
func (r *Registry) CheckParam(id, name string, value any) error {
	rule, ok := r.Get(id)
	if !ok {
		return nil
	}

	param, ok := rule.Param(name)
	if !ok {
		known := make([]string, 0, len(rule.Params))
		for _, p := range rule.Params {
			known = append(known, p.Name)
		}
		if len(known) == 0 {
			return fmt.Errorf("%s takes no parameters, got %q", id, name)
		}
		return fmt.Errorf("%s has no parameter %q (known: %s)", id, name, strings.Join(known, ", "))
	}

	if !kindMatches(param.Kind, value) {
		return fmt.Errorf("%s parameter %s expects %s, got %s", id, name, article(param.Kind), style.FormatValue(value))
	}

	if param.Kind == KindStyle && len(param.Choices) > 0 {
		text := fmt.Sprint(style.Plain(value))
		if !slices.Contains(param.Choices, text) {
			return fmt.Errorf("%s parameter %s: %q is not one of %s",
				id, name, text, strings.Join(param.Choices, ", "))
		}
	}
	return nil
}

func kindMatches(kind Kind, value any) bool {
	switch kind {
	case KindInt:
		_, ok := value.(int)
		return ok
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindString:
		_, ok := value.(string)
		return ok
	case KindStyle:
		switch value.(type) {
		case string, style.Symbol:
			return true
		}
		return false
	case KindList:
		_, ok := value.([]any)
		return ok
	default:
		return true
	}
}

func article(kind Kind) string {
	switch kind {
	case KindInt:
		return "an integer"
	case KindList:
		return "a list"
	case KindStyle:
		return "a symbol or string"
	default:
		return "a " + string(kind)
	}
}
