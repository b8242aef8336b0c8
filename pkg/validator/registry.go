package validator

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

// RuleFunc evaluates one rule against one concrete field.
// It never panics on bad input; it reports through the returned Outcome.
type RuleFunc func(in Input) Outcome

// Input is what a RuleFunc sees for a single evaluation.
type Input struct {
	// Value at the concrete field path, nil when the path is missing.
	Value any
	// Field is the concrete path, wildcards already resolved.
	Field string
	// Params are the comma separated rule parameters.
	Params []string
	// Data is the full input tree of the run.
	Data map[string]any
	// Rules holds the names of every rule declared for the field.
	Rules []string
	// Bindings holds the keys each wildcard of the declared path resolved to.
	Bindings []string
}

// HasRule reports whether name is declared for the field.
func (in Input) HasRule(name string) bool {
	return slices.Contains(in.Rules, name)
}

// Other resolves another field of the same run. Wildcards in path are bound,
// left to right, to the keys the current field was resolved with, so
// "items.*.type" read from "items.2.price" addresses "items.2.type".
func (in Input) Other(path string) (any, bool) {
	if strings.Contains(path, "*") && len(in.Bindings) > 0 {
		segs := arr.Segments(path)
		b := 0
		for i, seg := range segs {
			if seg == "*" && b < len(in.Bindings) {
				segs[i] = in.Bindings[b]
				b++
			}
		}
		path = strings.Join(segs, arr.Separator)
	}
	return arr.Lookup(in.Data, path)
}

// Param returns the i-th parameter or "".
func (in Input) Param(i int) string {
	if i < 0 || i >= len(in.Params) {
		return ""
	}
	return in.Params[i]
}

// Outcome is the result of a RuleFunc: either passing, failing with a message
// template, or aborting the run because the rule itself is misconfigured.
type Outcome struct {
	failed  bool
	key     string
	message string
	values  map[string]string
	err     error
}

// Pass reports a satisfied rule.
func Pass() Outcome { return Outcome{} }

// Fail reports a violation with a literal message. The message may contain
// placeholders. An empty message selects the template registered under the
// rule name.
func Fail(message string) Outcome {
	return Outcome{failed: true, message: message}
}

// FailKey reports a violation using the message template registered under key,
// for example "min.numeric".
func FailKey(key string) Outcome {
	return Outcome{failed: true, key: key}
}

// Abort stops the whole run with a configuration error.
func Abort(err error) Outcome {
	return Outcome{failed: true, err: err}
}

// With adds a placeholder substitution. The name is given without the leading
// colon: With("min", "3") replaces ":min".
func (o Outcome) With(name, value string) Outcome {
	values := make(map[string]string, len(o.values)+1)
	maps.Copy(values, o.values)
	values[name] = value
	o.values = values
	return o
}

// Passed reports whether the rule was satisfied.
func (o Outcome) Passed() bool { return !o.failed }

// Registry maps rule names to evaluators and holds default message templates.
type Registry struct {
	mu       sync.RWMutex
	rules    map[string]RuleFunc
	messages map[string]string
}

// NewRegistry returns a registry pre-populated with the built-in rules and
// their message templates.
func NewRegistry() *Registry {
	r := &Registry{
		rules:    make(map[string]RuleFunc, len(builtinRules)),
		messages: maps.Clone(defaultMessages),
	}
	maps.Copy(r.rules, builtinRules)
	return r
}

// Register adds or replaces a rule. The optional message becomes the default
// template keyed by the rule name.
func (r *Registry) Register(name string, fn RuleFunc, message ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[name] = fn
	if len(message) > 0 && message[0] != "" {
		r.messages[name] = message[0]
	}
}

// SetMessage sets a default template, keyed "<rule>" or "<rule>.<type>".
func (r *Registry) SetMessage(key, template string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[key] = template
}

// Lookup returns the evaluator registered under name.
func (r *Registry) Lookup(name string) (RuleFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.rules[name]
	return fn, ok
}

// Has reports whether a rule is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// Messages returns a copy of the default templates.
func (r *Registry) Messages() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.messages)
}

// Clone returns an independent copy. Later registrations on either side do not
// leak into the other.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{
		rules:    maps.Clone(r.rules),
		messages: maps.Clone(r.messages),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that new validators copy
// from.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterRule registers a rule on the process-wide registry. Validators
// created before the call are not affected.
func RegisterRule(name string, fn RuleFunc, message ...string) {
	defaultRegistry.Register(name, fn, message...)
}

// Predicate adapts a plain check into a RuleFunc that fails with the template
// registered under the rule name.
func Predicate(check func(value any) bool) RuleFunc {
	return func(in Input) Outcome {
		if check(in.Value) {
			return Pass()
		}
		return Fail("")
	}
}
