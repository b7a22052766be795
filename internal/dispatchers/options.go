package dispatchers

import (
	"maps"
	"slices"
)

// Options provides typed access to parsed flag values, keyed by destination.
// A fresh Options is produced for every parse and is read-only afterwards.
type Options struct {
	specs   []OptionSpec
	values  map[string]any
	changed map[string]bool
}

// NewOptions creates an Options holding the defaults of the given schema.
func NewOptions(specs []OptionSpec) *Options {
	o := &Options{
		specs:   specs,
		values:  make(map[string]any, len(specs)),
		changed: make(map[string]bool),
	}
	for _, s := range specs {
		switch {
		case s.Default != nil:
			o.values[s.Dest] = s.Default
		case s.Kind == KindFlag:
			o.values[s.Dest] = false
		default:
			o.values[s.Dest] = nil
		}
	}
	return o
}

func (o *Options) set(dest string, v any) {
	o.values[dest] = v
	o.changed[dest] = true
}

// Get returns the raw value for dest, or nil if it is unset or undeclared.
func (o *Options) Get(dest string) any {
	if o == nil {
		return nil
	}
	return o.values[dest]
}

// Has reports whether dest is declared and holds a value.
func (o *Options) Has(dest string) bool {
	return o.Get(dest) != nil
}

// Changed reports whether dest was given on the command line.
func (o *Options) Changed(dest string) bool {
	if o == nil {
		return false
	}
	return o.changed[dest]
}

// Bool returns the value of a flag option, false if unset.
func (o *Options) Bool(dest string) bool {
	b, _ := o.Get(dest).(bool)
	return b
}

// String returns the value of a string or choice option, "" if unset.
func (o *Options) String(dest string) string {
	s, _ := o.Get(dest).(string)
	return s
}

// Int returns the value of an int option, 0 if unset.
func (o *Options) Int(dest string) int {
	n, _ := o.Get(dest).(int)
	return n
}

// Values returns a copy of every destination and its value, unset ones as nil.
func (o *Options) Values() map[string]any {
	if o == nil {
		return map[string]any{}
	}
	return maps.Clone(o.values)
}

// Keys returns the declared destinations in schema order.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.specs))
	for _, s := range o.specs {
		keys = append(keys, s.Dest)
	}
	return keys
}

// Specified returns the options the user actually supplied: values that were
// set on the command line or differ from their declared default, excluding
// empty values (false, "", 0). It is the view merged over stored
// configuration, where a non-empty value always wins.
func (o *Options) Specified() map[string]any {
	out := make(map[string]any)
	if o == nil {
		return out
	}
	for _, s := range o.specs {
		v := o.values[s.Dest]
		if isEmpty(v) {
			continue
		}
		if o.changed[s.Dest] || v != s.Default {
			out[s.Dest] = v
		}
	}
	return out
}

// SpecifiedKeys returns the keys of Specified in schema order.
func (o *Options) SpecifiedKeys() []string {
	spec := o.Specified()
	return slices.DeleteFunc(o.Keys(), func(k string) bool {
		_, ok := spec[k]
		return !ok
	})
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int:
		return t == 0
	default:
		return false
	}
}
