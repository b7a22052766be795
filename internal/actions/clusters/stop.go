package clusters

import (
	"context"
	"errors"

	"github.com/starcluster/starcluster/internal/dispatchers"
	"github.com/starcluster/starcluster/internal/domain"
	"github.com/starcluster/starcluster/internal/store"
)

// Stop returns the stop action body.
func Stop(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, args []string, _, _ *dispatchers.Options) error {
		return stop(ctx, args, deps)
	}
}

func stop(ctx context.Context, args []string, deps Deps) error {
	if err := dispatchers.Require(ctx, args, "please specify a cluster"); err != nil {
		return err
	}

	reg, err := deps.Registry(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		tag := domain.NewClusterTag(name)

		c, err := reg.Get(ctx, tag)
		if errors.Is(err, store.ErrNotFound) {
			deps.Log.Error("cluster %s does not exist", tag)
			continue
		}
		if err != nil {
			return err
		}

		for _, n := range c.Nodes {
			if n.State == domain.NodeRunning {
				deps.Log.Info("Shutting down %s", n.Hostname)
			}
		}
		deps.Log.Info("Removing cluster security group %s", tag)
		if _, err := reg.Stop(ctx, tag); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				deps.Log.Error("cluster %s does not exist", tag)
				continue
			}
			return err
		}
	}
	return nil
}

// ListClusters returns the listclusters action body.
func ListClusters(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, _ []string, _, _ *dispatchers.Options) error {
		return listClusters(ctx, deps)
	}
}

func listClusters(ctx context.Context, deps Deps) error {
	reg, err := deps.Registry(ctx)
	if err != nil {
		return err
	}

	all, err := reg.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, c := range all {
		if !c.Running() {
			continue
		}
		found = true
		_, _ = deps.Println(c.Tag)
		for _, n := range c.Nodes {
			if n.State == domain.NodeRunning {
				_, _ = deps.Printf("  %s\n", n.Hostname)
			}
		}
	}
	if !found {
		deps.Log.Info("No clusters found...")
	}
	return nil
}

// Unimplemented returns an action body that only logs that the action does
// nothing yet.
func Unimplemented(log domain.Logger) dispatchers.ActionFunc {
	return func(context.Context, []string, *dispatchers.Options, *dispatchers.Options) error {
		log.Error("unimplemented")
		return nil
	}
}
