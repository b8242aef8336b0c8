package validator

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

type runState uint8

const (
	stateNotRun runState = iota
	stateRunning
	stateCompleted
)

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides message templates keyed "<rule>" or
// "<rule>.<type>". Overrides are fixed at construction.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		maps.Copy(v.templates.overrides, messages)
	}
}

// WithRegistry makes the validator copy its rules and default templates from
// r instead of the process-wide registry.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r.Clone()
			v.templates.defaults = v.registry.Messages()
		}
	}
}

// Validator checks one data tree against one rule set. Rules run once, on
// the first call to any accessor; the outcome is memoised and read-only
// afterwards. A Validator is not safe for concurrent use.
type Validator struct {
	data      map[string]any
	rules     Rules
	registry  *Registry
	templates templates

	state  runState
	errs   ValidationErrors
	runErr error
}

// New creates a validator for data and rules. Nothing is evaluated until
// the first accessor call.
func New(data map[string]any, rules Rules, opts ...Option) *Validator {
	if data == nil {
		data = map[string]any{}
	}
	registry := defaultRegistry.Clone()
	v := &Validator{
		data:     data,
		rules:    rules,
		registry: registry,
		templates: templates{
			overrides: map[string]string{},
			defaults:  registry.Messages(),
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Make mirrors the three argument constructor: data, rules and message
// overrides.
func Make(data map[string]any, rules Rules, messages map[string]string) *Validator {
	return New(data, rules, WithMessages(messages))
}

// AddRule registers a rule on this validator only. The optional message is
// its default template. Rules added after the run has happened have no effect
// on the memoised outcome.
func (v *Validator) AddRule(name string, fn RuleFunc, message ...string) *Validator {
	v.registry.Register(name, fn, message...)
	if len(message) > 0 && message[0] != "" {
		v.templates.defaults[name] = message[0]
	}
	return v
}

// Passes runs the rules if needed and reports whether no rule failed.
// It panics with the configuration error if the rule set is invalid.
func (v *Validator) Passes() bool {
	v.mustRun()
	return v.errs.IsEmpty()
}

// Fails is the negation of Passes.
func (v *Validator) Fails() bool {
	return !v.Passes()
}

// Errors returns the error bag, running the rules if needed.
// It panics with the configuration error if the rule set is invalid.
func (v *Validator) Errors() ValidationErrors {
	v.mustRun()
	return slices.Clone(v.errs)
}

// Failed maps each failing field to the names of the rules it failed.
func (v *Validator) Failed() map[string][]string {
	v.mustRun()
	return v.errs.Rules()
}

// Err returns the configuration error of the run, if any.
func (v *Validator) Err() error {
	v.run()
	return v.runErr
}

// Validate returns the validated subset of the input, or the error bag as a
// ValidationErrors error. Configuration errors are returned as is.
func (v *Validator) Validate() (map[string]any, error) {
	v.run()
	if v.runErr != nil {
		return nil, v.runErr
	}
	if !v.errs.IsEmpty() {
		return nil, slices.Clone(v.errs)
	}
	return v.validated(), nil
}

// Validated returns the top-level input keys that have rules and exist in the
// data. It fails with ErrNotValidated when the run did not pass.
func (v *Validator) Validated() (map[string]any, error) {
	v.run()
	if v.runErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotValidated, v.runErr)
	}
	if !v.errs.IsEmpty() {
		return nil, fmt.Errorf("%w: %w", ErrNotValidated, slices.Clone(v.errs))
	}
	return v.validated(), nil
}

func (v *Validator) validated() map[string]any {
	out := make(map[string]any)
	for field := range v.rules {
		segs := arr.Segments(field)
		if len(segs) == 0 || segs[0] == Wildcard {
			continue
		}
		if val, ok := v.data[segs[0]]; ok {
			out[segs[0]] = val
		}
	}
	return out
}

func (v *Validator) mustRun() {
	v.run()
	if v.runErr != nil {
		panic(v.runErr)
	}
}

type fieldPlan struct {
	path     string
	calls    []RuleCall
	funcs    []RuleFunc
	names    []string
	nullable bool
}

// run evaluates the rule set once. Plans for every field are built before any
// rule runs so a reference to an unknown rule aborts without partial results.
func (v *Validator) run() {
	if v.state != stateNotRun {
		return
	}
	v.state = stateRunning
	defer func() { v.state = stateCompleted }()

	plans, err := v.plan()
	if err != nil {
		v.runErr = err
		return
	}

	for _, p := range plans {
		for _, field := range ResolveFields(v.data, p.path) {
			if p.nullable && IsEmpty(field.Value) {
				continue
			}
			if err := v.check(p, field); err != nil {
				v.runErr = err
				v.errs = nil
				return
			}
		}
	}
}

func (v *Validator) plan() ([]fieldPlan, error) {
	// map order is random; sorted paths keep the bag deterministic
	paths := slices.Sorted(maps.Keys(v.rules))
	plans := make([]fieldPlan, 0, len(paths))
	for _, path := range paths {
		calls, err := ParseRules(v.rules[path])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", path, err)
		}
		p := fieldPlan{path: path, calls: calls}
		for _, c := range calls {
			fn, ok := v.registry.Lookup(c.Name)
			if !ok {
				return nil, fmt.Errorf("%w: %q on field %q", ErrUnknownRule, c.Name, path)
			}
			p.funcs = append(p.funcs, fn)
			p.names = append(p.names, c.Name)
			if c.Name == "nullable" {
				p.nullable = true
			}
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (v *Validator) check(p fieldPlan, field ConcreteField) error {
	for i, call := range p.calls {
		out := p.funcs[i](Input{
			Value:    field.Value,
			Field:    field.Path,
			Params:   call.Params,
			Data:     v.data,
			Rules:    p.names,
			Bindings: field.Bindings,
		})
		if out.err != nil {
			return out.err
		}
		if !out.failed {
			continue
		}
		v.errs.Add(v.buildError(call.Name, field.Path, out))
	}
	return nil
}

func (v *Validator) buildError(rule, field string, out Outcome) ValidationError {
	key := out.key
	if key == "" {
		key = rule
	}
	template := out.message
	if template == "" {
		template = v.templates.lookup(key)
	}

	values := make(map[string]string, len(out.values)+1)
	maps.Copy(values, out.values)
	values[PlaceholderAttribute] = field

	translationValues := make(map[string]any, len(values))
	for k, val := range values {
		translationValues[k] = val
	}

	return ValidationError{
		Field:             field,
		Rule:              rule,
		Message:           format(template, values),
		TranslationKey:    "validation." + key,
		TranslationValues: translationValues,
	}
}
