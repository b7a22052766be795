package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/starcluster/starcluster/internal/usage"
)

// Completer takes over an invocation when the shell asks for completion
// candidates. It reports whether it handled the invocation.
type Completer interface {
	Complete(root RootSpec, reg *Registry) (bool, error)
}

// NopCompleter never handles an invocation.
type NopCompleter struct{}

// Complete implements Completer.
func (NopCompleter) Complete(RootSpec, *Registry) (bool, error) { return false, nil }

// Dispatcher resolves an argument vector to one action and runs it.
type Dispatcher struct {
	root      RootSpec
	reg       *Registry
	completer Completer
	page      func(string)
	configure func(global *Options)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCompleter selects the completion provider. The default never completes.
func WithCompleter(c Completer) Option {
	return func(d *Dispatcher) {
		d.completer = c
	}
}

// WithPager sets how help and version text is displayed.
func WithPager(page func(string)) Option {
	return func(d *Dispatcher) {
		d.page = page
	}
}

// WithConfigure registers a hook that sees the parsed global options after
// dispatch succeeds and before the action runs.
func WithConfigure(fn func(global *Options)) Option {
	return func(d *Dispatcher) {
		d.configure = fn
	}
}

// WithOutput writes help and version text directly to w.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.page = func(s string) { _, _ = fmt.Fprint(w, s) }
	}
}

// NewDispatcher creates a Dispatcher over a built registry.
func NewDispatcher(root RootSpec, reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		root:      root,
		reg:       reg,
		completer: NopCompleter{},
		page:      func(s string) { _, _ = fmt.Fprint(os.Stdout, s) },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the program description the dispatcher was built with.
func (d *Dispatcher) Root() RootSpec {
	return d.root
}

// Registry returns the action registry.
func (d *Dispatcher) Registry() *Registry {
	return d.reg
}

// Run completes the invocation when the completer takes it, otherwise
// dispatches argv and runs the resolved action.
func (d *Dispatcher) Run(ctx context.Context, argv []string) error {
	if handled, err := d.completer.Complete(d.root, d.reg); handled {
		return err
	}

	res, err := d.Dispatch(argv)
	if err != nil {
		return err
	}
	if d.configure != nil && res.Global != nil {
		d.configure(res.Global)
	}
	return res.Run(ctx)
}

// Dispatch parses the global flags, resolves the action and parses the
// action's flags. Nothing is executed; global parsing always finishes before
// resolution, and action parsing before the returned Resolution can run.
func (d *Dispatcher) Dispatch(argv []string) (Resolution, error) {
	global, rest, err := ParseGlobal(d.root, argv)
	if err != nil {
		if errors.Is(err, ErrHelpRequested) {
			return d.show(GlobalUsage(d.root, d.reg)), nil
		}
		var ue *usage.Error
		if errors.As(err, &ue) {
			ue.Usage = GlobalUsage(d.root, d.reg)
		}
		return Resolution{}, err
	}

	if global.Bool("version") {
		return d.show(fmt.Sprintf("%s %s\n", d.root.Name, d.root.Version)), nil
	}

	if len(rest) == 0 {
		return Resolution{}, usage.MissingAction(GlobalUsage(d.root, d.reg))
	}
	name, tokens := rest[0], rest[1:]

	action, err := d.reg.Resolve(name)
	if err != nil {
		return Resolution{}, err
	}

	opts, args, err := NewActionParser(name, action).Parse(tokens)
	if err != nil {
		if errors.Is(err, ErrHelpRequested) {
			res := d.show(ActionUsage(d.root, action))
			res.Root, res.Action, res.Name, res.Global = d.root, action, name, global
			return res, nil
		}
		return Resolution{}, err
	}

	return Resolution{
		Root:    d.root,
		Action:  action,
		Name:    name,
		Args:    args,
		Global:  global,
		Options: opts,
		Execute: action.Execute,
	}, nil
}

// show returns a Resolution that only displays text.
func (d *Dispatcher) show(text string) Resolution {
	return Resolution{
		Execute: func(context.Context, []string, *Options, *Options) error {
			d.page(text)
			return nil
		},
	}
}

// RequireArgs returns a MissingArgument usage error when args is empty.
func RequireArgs(root RootSpec, a *Action, args []string, detail string) error {
	if len(args) > 0 {
		return nil
	}
	return usage.MissingArgument(a.Name(), detail, ActionUsage(root, a))
}
