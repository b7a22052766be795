package dispatchers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/starcluster/starcluster/internal/usage"
)

// ValueKind is the type of value an option accepts.
type ValueKind int

const (
	KindFlag   ValueKind = iota // boolean, no value
	KindString                  // free-form string
	KindInt                     // base-10 integer
	KindChoice                  // one of OptionSpec.Choices
)

func (k ValueKind) String() string {
	switch k {
	case KindFlag:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// OptionSpec declares one command-line flag.
type OptionSpec struct {
	Short     string // single letter, without the dash
	Long      string // without the leading dashes
	Dest      string // key in the parsed Options
	Kind      ValueKind
	Default   any // bool, string or int according to Kind; nil means unset
	Choices   []string
	Help      string
	ValueHint string // shown in usage, e.g. FILE
	// Complete, when set, provides completion candidates for the flag value.
	Complete CompleteFunc
}

// Names returns the flag spellings as typed on the command line, long form first.
func (o OptionSpec) Names() []string {
	var names []string
	if o.Long != "" {
		names = append(names, "--"+o.Long)
	}
	if o.Short != "" {
		names = append(names, "-"+o.Short)
	}
	return names
}

// TakesValue reports whether the flag consumes an argument.
func (o OptionSpec) TakesValue() bool {
	return o.Kind != KindFlag
}

// Candidates returns the completion candidates for the flag value.
func (o OptionSpec) Candidates() []string {
	if o.Complete != nil {
		return o.Complete()
	}
	return o.Choices
}

func (o OptionSpec) hint() string {
	if o.ValueHint != "" {
		return o.ValueHint
	}
	if o.Kind == KindChoice {
		return "{" + strings.Join(o.Choices, ",") + "}"
	}
	return strings.ToUpper(o.Dest)
}

// ValidateSchema checks the invariants of an ordered option list: unique
// destinations and spellings, and enumerated defaults drawn from the choices.
func ValidateSchema(owner string, specs []OptionSpec) error {
	dests := make(map[string]bool, len(specs))
	shorts := make(map[string]bool, len(specs))
	longs := make(map[string]bool, len(specs))

	for _, o := range specs {
		switch {
		case o.Dest == "":
			return usage.InvalidSchema(owner, "option without destination")
		case o.Long == "":
			return usage.InvalidSchema(owner, fmt.Sprintf("option %s has no long name", o.Dest))
		case o.Long == "help" || o.Short == "h":
			return usage.InvalidSchema(owner, "-h/--help is reserved")
		case len(o.Short) > 1:
			return usage.InvalidSchema(owner, fmt.Sprintf("short name %q must be one letter", o.Short))
		case dests[o.Dest]:
			return usage.InvalidSchema(owner, fmt.Sprintf("duplicate destination %q", o.Dest))
		case longs[o.Long]:
			return usage.InvalidSchema(owner, fmt.Sprintf("duplicate flag --%s", o.Long))
		case o.Short != "" && shorts[o.Short]:
			return usage.InvalidSchema(owner, fmt.Sprintf("duplicate flag -%s", o.Short))
		}
		dests[o.Dest] = true
		longs[o.Long] = true
		if o.Short != "" {
			shorts[o.Short] = true
		}

		if err := validateDefault(owner, o); err != nil {
			return err
		}
	}
	return nil
}

func validateDefault(owner string, o OptionSpec) error {
	if o.Default == nil {
		if o.Kind == KindChoice && len(o.Choices) == 0 {
			return usage.InvalidSchema(owner, fmt.Sprintf("option %s has no choices", o.Dest))
		}
		return nil
	}

	ok := true
	switch o.Kind {
	case KindFlag:
		_, ok = o.Default.(bool)
	case KindString:
		_, ok = o.Default.(string)
	case KindInt:
		_, ok = o.Default.(int)
	case KindChoice:
		s, isString := o.Default.(string)
		if len(o.Choices) == 0 {
			return usage.InvalidSchema(owner, fmt.Sprintf("option %s has no choices", o.Dest))
		}
		if isString && !slices.Contains(o.Choices, s) {
			return usage.InvalidSchema(owner, fmt.Sprintf("default %q of %s is not one of its choices", s, o.Dest))
		}
		ok = isString
	}
	if !ok {
		return usage.InvalidSchema(owner, fmt.Sprintf("default of %s is not a %s", o.Dest, o.Kind))
	}
	return nil
}
