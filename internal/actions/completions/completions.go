// Package completions implements the completion action.
package completions

import (
	"context"
	"fmt"
	"os"

	"github.com/starcluster/starcluster/internal/completions"
	"github.com/starcluster/starcluster/internal/dispatchers"
)

type Deps struct {
	Printf  func(string, ...any) (int, error)
	Getenv  func(string) string
	Binary  func() (path, name string)
	Install func(shell completions.Shell, bin, name string) (string, error)
}

func DefaultDeps(program string) Deps {
	return Deps{
		Printf: fmt.Printf,
		Getenv: os.Getenv,
		Binary: func() (string, string) {
			return completions.ResolveBinary(program)
		},
		Install: completions.Install,
	}
}

// Options returns the schema of the completion action.
func Options() []dispatchers.OptionSpec {
	return []dispatchers.OptionSpec{
		{Short: "s", Long: "shell", Dest: "shell", Kind: dispatchers.KindChoice, Choices: completions.Shells,
			ValueHint: "SHELL", Help: "shell to generate the snippet for (default: current shell)"},
		{Long: "install", Dest: "install", Kind: dispatchers.KindFlag,
			Help: "install the snippet where bash-completion loads it"},
	}
}

// Completion returns the completion action body.
func Completion(deps Deps) dispatchers.ActionFunc {
	return func(_ context.Context, _ []string, _, opts *dispatchers.Options) error {
		return completion(opts, deps)
	}
}

func completion(opts *dispatchers.Options, deps Deps) error {
	shell, err := resolveShell(opts.String("shell"), deps.Getenv)
	if err != nil {
		return err
	}

	bin, name := deps.Binary()

	if opts.Bool("install") {
		path, err := deps.Install(shell, bin, name)
		if err != nil {
			return err
		}
		_, _ = deps.Printf("Installed %s completions to %s\n", shell, path)
		_, _ = deps.Printf("Restart your shell or run: source %s\n", path)
		return nil
	}

	script, err := completions.Script(shell, bin, name)
	if err != nil {
		return err
	}
	_, _ = deps.Printf("# Add to %s:\n", completions.RcFile(shell))
	_, _ = deps.Printf("%s", script)
	return nil
}

func resolveShell(flag string, getenv func(string) string) (completions.Shell, error) {
	if flag != "" {
		return completions.ParseShell(flag)
	}
	shell, err := completions.DetectShell(getenv)
	if err != nil {
		return "", fmt.Errorf("%w; pass --shell", err)
	}
	return shell, nil
}
