package dispatchers

import (
	"context"
	"strings"
)

// recorder captures the arguments an action was invoked with.
type recorder struct {
	calls  int
	args   []string
	global *Options
	opts   *Options
}

func (r *recorder) action(aliases ...string) *Action {
	return &Action{
		Aliases: aliases,
		Summary: "Do " + strings.Join(aliases, "/"),
		Execute: func(_ context.Context, args []string, global *Options, opts *Options) error {
			r.calls++
			r.args = args
			r.global = global
			r.opts = opts
			return nil
		},
	}
}

func testRoot() RootSpec {
	return RootSpec{
		Name:    "starcluster",
		Summary: "Test CLI",
		Usage:   "starcluster [<global-opts>] action [<action-opts>] [<action-args> ...]",
		Version: "0.1",
		Flags: []OptionSpec{
			{Short: "d", Long: "debug", Dest: "debug", Kind: KindFlag, Default: false, Help: "print debug messages"},
			{Short: "c", Long: "config", Dest: "config", Kind: KindString, ValueHint: "FILE", Help: "use alternate config file"},
			{Long: "version", Dest: "version", Kind: KindFlag, Help: "show version"},
		},
	}
}

func startSchema() []OptionSpec {
	return []OptionSpec{
		{Short: "x", Long: "no-create", Dest: "no_create", Kind: KindFlag, Default: false, Help: "do not launch instances"},
		{Short: "t", Long: "tag", Dest: "cluster_tag", Kind: KindString, Default: "201001011200", Help: "tag to identify cluster"},
		{Short: "s", Long: "cluster-size", Dest: "cluster_size", Kind: KindInt, Help: "number of nodes"},
		{Short: "S", Long: "cluster-shell", Dest: "cluster_shell", Kind: KindChoice, Choices: []string{"bash", "csh", "zsh"}, Help: "shell for cluster user"},
	}
}

// testSetup builds a registry with start, stop and help.
func testSetup() (*Dispatcher, *recorder, *strings.Builder) {
	rec := &recorder{}
	out := &strings.Builder{}
	page := func(s string) { out.WriteString(s) }

	start := rec.action("start")
	start.Usage = "start [options] <cluster_tag> ..."
	start.Category = CategoryClusters
	start.Options = startSchema

	stop := rec.action("stop", "halt")
	stop.Category = CategoryClusters

	root := testRoot()
	reg := NewRegistry()
	if err := reg.Register(start, stop, HelpAction(root, reg, HelpConfig{Page: page})); err != nil {
		panic(err)
	}
	return NewDispatcher(root, reg, WithPager(page)), rec, out
}
