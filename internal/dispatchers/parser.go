package dispatchers

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/starcluster/starcluster/internal/usage"
)

// ErrHelpRequested is returned by the parsers when -h or --help is given.
var ErrHelpRequested = errors.New("dispatchers: help requested")

// optionValue adapts one OptionSpec to pflag.Value, writing into Options.
// A rejected value is kept so the parse error can be reported with its kind.
type optionValue struct {
	spec    OptionSpec
	opts    *Options
	owner   string
	invalid *usage.Error
}

func (v *optionValue) String() string {
	val := v.opts.Get(v.spec.Dest)
	if val == nil {
		return ""
	}
	return fmt.Sprint(val)
}

func (v *optionValue) Type() string {
	return v.spec.Kind.String()
}

func (v *optionValue) Set(s string) error {
	var parsed any
	switch v.spec.Kind {
	case KindFlag:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v.reject(s)
		}
		parsed = b
	case KindInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return v.reject(s)
		}
		parsed = n
	case KindChoice:
		if !slices.Contains(v.spec.Choices, s) {
			return v.reject(s)
		}
		parsed = s
	default:
		parsed = s
	}
	v.opts.set(v.spec.Dest, parsed)
	return nil
}

func (v *optionValue) reject(s string) error {
	v.invalid = usage.InvalidOptionValue(v.owner, strings.Join(v.spec.Names(), "/"), s, v.spec.Choices)
	return v.invalid
}

// parser is a single-use flag set built from an ordered schema.
type parser struct {
	owner  string
	opts   *Options
	values []*optionValue
	fs     *pflag.FlagSet
}

func newParser(owner string, specs []OptionSpec, interspersed bool) *parser {
	fs := pflag.NewFlagSet(owner, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	fs.SetInterspersed(interspersed)

	p := &parser{owner: owner, opts: NewOptions(specs), fs: fs}
	for _, s := range specs {
		v := &optionValue{spec: s, opts: p.opts, owner: owner}
		f := fs.VarPF(v, s.Long, s.Short, s.Help)
		if s.Kind == KindFlag {
			f.NoOptDefVal = "true"
		}
		p.values = append(p.values, v)
	}
	return p
}

func (p *parser) parse(tokens []string) (*Options, []string, error) {
	if err := p.fs.Parse(tokens); err != nil {
		return nil, nil, p.translate(err)
	}
	args := p.fs.Args()
	if args == nil {
		args = []string{}
	}
	return p.opts, args, nil
}

// translate maps pflag's errors onto the usage error kinds.
func (p *parser) translate(err error) error {
	if errors.Is(err, pflag.ErrHelp) {
		return ErrHelpRequested
	}
	for _, v := range p.values {
		if v.invalid != nil {
			return v.invalid
		}
	}

	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown flag: "):
		return usage.UnknownOption(p.owner, strings.TrimPrefix(msg, "unknown flag: "))
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		// unknown shorthand flag: 'z' in -zq
		rest := strings.TrimPrefix(msg, "unknown shorthand flag: ")
		if len(rest) >= 3 && rest[0] == '\'' {
			return usage.UnknownOption(p.owner, "-"+rest[1:2])
		}
		return usage.UnknownOption(p.owner, rest)
	default:
		return usage.BadFlag(msg, "")
	}
}

// ParseGlobal parses the flags preceding the action name. Scanning stops at
// the first token that is not a flag or a flag's value; that token and
// everything after it are returned untouched.
func ParseGlobal(root RootSpec, argv []string) (*Options, []string, error) {
	return newParser("", root.Flags, false).parse(argv)
}

// ActionParser parses the tokens following an action name. It is built
// fresh for every invocation from the action's schema.
type ActionParser struct {
	name  string
	specs []OptionSpec
}

// NewActionParser builds a parser for the action invoked as name.
func NewActionParser(name string, a *Action) *ActionParser {
	return &ActionParser{name: name, specs: a.Schema()}
}

// Parse returns the action options and the positional arguments in order.
// Flags and positionals may be interleaved; "--" ends flag parsing.
func (p *ActionParser) Parse(tokens []string) (*Options, []string, error) {
	return newParser(p.name, p.specs, true).parse(tokens)
}
