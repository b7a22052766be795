package dispatchers

import (
	"context"

	"github.com/starcluster/starcluster/internal/usage"
)

// ActionFunc runs an action with its positional arguments, the process-wide
// global options and the options parsed from the action's own schema.
type ActionFunc func(ctx context.Context, args []string, global *Options, opts *Options) error

// CompleteFunc returns completion candidates. It is only called in
// completion mode.
type CompleteFunc func() []string

// Action is a named, documented unit of work reachable through its aliases.
type Action struct {
	Aliases  []string
	Summary  string
	Usage    string // e.g. "start [options] <cluster> ..."
	Category ActionCategory
	// Options builds the action's flag schema. It must be free of side effects.
	Options func() []OptionSpec
	Execute ActionFunc
	// Complete, when set, provides candidates for positional arguments.
	Complete CompleteFunc
}

// Name returns the primary alias.
func (a *Action) Name() string {
	if len(a.Aliases) == 0 {
		return ""
	}
	return a.Aliases[0]
}

// Schema returns the action's option specs, or nil when it declares none.
func (a *Action) Schema() []OptionSpec {
	if a.Options == nil {
		return nil
	}
	return a.Options()
}

// RootSpec describes the program itself: its name, banner and global flags.
type RootSpec struct {
	Name        string
	Summary     string
	Description string
	Usage       string
	Version     string
	Flags       []OptionSpec
}

// Resolution is the outcome of Dispatch: a resolved action together with
// everything needed to run it.
type Resolution struct {
	Root    RootSpec
	Action  *Action
	Name    string // alias as typed
	Args    []string
	Global  *Options
	Options *Options
	Execute ActionFunc
}

// Run invokes the resolved action.
func (r Resolution) Run(ctx context.Context) error {
	if r.Execute == nil {
		return nil
	}
	if r.Action != nil {
		ctx = context.WithValue(ctx, invocationKey{}, invocation{root: r.Root, action: r.Action})
	}
	return r.Execute(ctx, r.Args, r.Global, r.Options)
}

type invocationKey struct{}

type invocation struct {
	root   RootSpec
	action *Action
}

// Require returns a MissingArgument usage error for the running action when
// args is empty. It must be called from within Resolution.Run.
func Require(ctx context.Context, args []string, detail string) error {
	if len(args) > 0 {
		return nil
	}
	inv, ok := ctx.Value(invocationKey{}).(invocation)
	if !ok {
		return usage.MissingArgument("", detail, "")
	}
	return RequireArgs(inv.root, inv.action, args, detail)
}
