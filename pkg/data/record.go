package data

import (
	"maps"
	"time"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

// Record holds the cast values produced by Schema.Build. Typed accessors
// return the zero value for absent fields.
type Record struct {
	values map[string]any
}

func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r Record) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

func (r Record) Int(name string) int64 {
	i, _ := r.values[name].(int64)
	return i
}

func (r Record) Float(name string) float64 {
	f, _ := r.values[name].(float64)
	return f
}

func (r Record) Bool(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

func (r Record) Time(name string) time.Time {
	t, _ := r.values[name].(time.Time)
	return t
}

// ToMap returns a copy of the values.
func (r Record) ToMap() map[string]any {
	return maps.Clone(r.values)
}

func (r Record) Only(names ...string) Record {
	return Record{values: arr.Only(r.values, names...)}
}

func (r Record) Except(names ...string) Record {
	return Record{values: arr.Except(r.values, names...)}
}
