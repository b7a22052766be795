package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/starcluster/starcluster/internal/app"
	"github.com/starcluster/starcluster/internal/cli"
	"github.com/starcluster/starcluster/internal/completions"
	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/dispatchers"
	"github.com/starcluster/starcluster/internal/usage"
)

const exitInterrupted = 130

// interruptGrace is how long main waits for a cancelled action to return
// before exiting on its own.
const interruptGrace = 2 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan int, 1)
	go func() {
		done <- run(ctx, os.Args[1:], app.DefaultOptions(), os.Getenv)
	}()

	select {
	case code := <-done:
		stop()
		os.Exit(code)
	case <-ctx.Done():
		select {
		case code := <-done:
			os.Exit(code)
		case <-time.After(interruptGrace):
			interrupted(os.Stderr)
			os.Exit(exitInterrupted)
		}
	}
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, argv []string, opts app.Options, getenv func(string) string) int {
	application := app.New(opts)
	defer func() { _ = application.Close() }()

	root := cli.Root(app.Version)
	reg, err := cli.BuildRegistry(root, cli.Env{
		Log:        application.Logger,
		Output:     application.Output,
		LoadConfig: application.LoadConfig,
		Registry:   application.Registry,
		Storage:    application.Storage,
		ClusterNames: func() []string {
			cfg, err := config.Load(application.ConfigPath())
			if err != nil {
				return nil
			}
			return cfg.ClusterNames()
		},
		Now: time.Now,
	})
	if err != nil {
		return report(opts.Stderr, err)
	}

	d := dispatchers.NewDispatcher(root, reg,
		dispatchers.WithCompleter(completions.Detect(getenv, opts.Stdout)),
		dispatchers.WithPager(application.Output.Pager),
		dispatchers.WithConfigure(application.Configure),
	)

	if err := d.Run(ctx, argv); err != nil {
		if ctx.Err() != nil {
			interrupted(opts.Stderr)
			return exitInterrupted
		}
		var ue *usage.Error
		if errors.As(err, &ue) {
			return report(opts.Stderr, err)
		}
		application.Logger.Error("%v", err)
		return 1
	}
	return 0
}

func interrupted(w io.Writer) {
	fmt.Fprintln(w, "Interrupted, exiting.")
}

// report prints err the way optparse does, usage first, and returns its
// exit code.
func report(w io.Writer, err error) int {
	var ue *usage.Error
	if !errors.As(err, &ue) {
		fmt.Fprintln(w, err)
		return 1
	}
	if ue.Usage != "" {
		fmt.Fprintln(w, ue.Usage)
	}
	fmt.Fprintln(w, ue.Message)
	return ue.GetExitCode()
}
