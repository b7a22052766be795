// Package clusters implements the cluster lifecycle actions.
package clusters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/starcluster/starcluster/internal/cluster"
	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/dispatchers"
	"github.com/starcluster/starcluster/internal/domain"
	"github.com/starcluster/starcluster/internal/store"
)

// TagLayout formats the default cluster tag.
const TagLayout = "200601021504"

// StartOptions returns the schema of the start action. Tag and description
// default to the time of the call.
func StartOptions(now func() time.Time) func() []dispatchers.OptionSpec {
	return func() []dispatchers.OptionSpec {
		ts := now()
		return []dispatchers.OptionSpec{
			{Short: "x", Long: "no-create", Dest: "no_create", Kind: dispatchers.KindFlag,
				Help: "Do not launch new ec2 instances when starting cluster (uses existing instances instead)"},
			{Short: "l", Long: "login-master", Dest: "login_master", Kind: dispatchers.KindFlag,
				Help: "ssh to ec2 cluster master node after launch"},
			{Short: "t", Long: "tag", Dest: cluster.KeyClusterTag, Kind: dispatchers.KindString,
				Default: ts.Format(TagLayout), Help: "tag to identify cluster"},
			{Short: "d", Long: "description", Dest: cluster.KeyClusterDescription, Kind: dispatchers.KindString,
				Default: "Cluster requested at " + ts.Format(TagLayout), Help: "brief description of cluster"},
			{Short: "s", Long: "cluster-size", Dest: cluster.KeyClusterSize, Kind: dispatchers.KindInt,
				Help: "number of ec2 nodes to launch"},
			{Short: "u", Long: "cluster-user", Dest: cluster.KeyClusterUser, Kind: dispatchers.KindString,
				Help: "name of user to create on cluster (defaults to sgeadmin)"},
			{Short: "S", Long: "cluster-shell", Dest: cluster.KeyClusterShell, Kind: dispatchers.KindChoice,
				Choices: cluster.AvailableShells, ValueHint: "SHELL", Help: "shell for cluster user (defaults to bash)"},
			{Short: "m", Long: "master-image-id", Dest: cluster.KeyMasterImageID, Kind: dispatchers.KindString,
				Help: "image to use for master"},
			{Short: "n", Long: "node-image-id", Dest: cluster.KeyNodeImageID, Kind: dispatchers.KindString,
				Help: "image to use for node"},
			{Short: "i", Long: "instance-type", Dest: cluster.KeyInstanceType, Kind: dispatchers.KindChoice,
				Choices: cluster.InstanceTypes, ValueHint: "TYPE", Help: "specify machine type for cluster"},
			{Short: "a", Long: "availability-zone", Dest: cluster.KeyAvailabilityZone, Kind: dispatchers.KindString,
				Help: "availability zone to launch ec2 instances in"},
			{Short: "k", Long: "keyname", Dest: cluster.KeyKeyName, Kind: dispatchers.KindString,
				Help: "name of AWS ssh key to use for cluster"},
			{Short: "K", Long: "key-location", Dest: cluster.KeyKeyLocation, Kind: dispatchers.KindString,
				ValueHint: "FILE", Help: "path to ssh key used for this cluster"},
			{Short: "v", Long: "volume", Dest: cluster.KeyVolume, Kind: dispatchers.KindString,
				Help: "EBS volume to attach to master node"},
			{Short: "D", Long: "volume-device", Dest: cluster.KeyVolumeDevice, Kind: dispatchers.KindString,
				Help: "Device label to use for EBS volume"},
			{Short: "p", Long: "volume-partition", Dest: cluster.KeyVolumePartition, Kind: dispatchers.KindString,
				Help: "EBS Volume partition to mount on master node"},
		}
	}
}

// Start returns the start action body.
func Start(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, args []string, _, opts *dispatchers.Options) error {
		return start(ctx, args, opts, deps)
	}
}

func start(ctx context.Context, args []string, opts *dispatchers.Options, deps Deps) error {
	if err := dispatchers.Require(ctx, args, "please specify a cluster"); err != nil {
		return err
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	for _, name := range args {
		t, err := templateFor(cfg, name, opts, deps.Log)
		if err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			deps.Log.Error("%v", err)
			continue
		}
		if err := launch(ctx, t, opts, deps); err != nil {
			return err
		}
	}
	return nil
}

// templateFor merges the specified options onto the named template. An
// unknown name yields an ad-hoc template named after it.
func templateFor(cfg *config.Config, name string, opts *dispatchers.Options, log domain.Logger) (cluster.Template, error) {
	t, err := cfg.Cluster(name)
	switch {
	case errors.Is(err, config.ErrClusterDoesNotExist):
		log.Warn("%v", err)
		t = cluster.New(cfg.Credentials())
		t.Name = name
	case err != nil:
		return cluster.Template{}, err
	}

	if given := opts.SpecifiedKeys(); len(given) > 0 {
		log.Debug("options given for %s: %s", name, strings.Join(given, ", "))
	}
	applied := t.Merge(opts.Specified())
	log.Debug("applied options %v to cluster %s", applied, name)

	// Tag and description always have a value on the command line.
	if t.Tag == "" {
		t.Tag = opts.String(cluster.KeyClusterTag)
	}
	if t.Description == "" {
		t.Description = opts.String(cluster.KeyClusterDescription)
	}
	return t.WithDefaults(), nil
}

func launch(ctx context.Context, t cluster.Template, opts *dispatchers.Options, deps Deps) error {
	reg, err := deps.Registry(ctx)
	if err != nil {
		return err
	}

	planned := t.Plan(deps.Now())
	var c domain.Cluster
	if opts.Bool("no_create") {
		c, err = reg.Get(ctx, planned.Tag)
		if errors.Is(err, store.ErrNotFound) {
			deps.Log.Error("cluster %s does not exist", planned.Tag)
			return nil
		}
		if err != nil {
			return err
		}
		deps.Log.Info("Using existing cluster %s", c.Tag)
	} else {
		c, err = reg.Record(ctx, planned)
		if errors.Is(err, store.ErrClusterExists) {
			deps.Log.Error("cluster %s is already running", planned.Tag)
			return nil
		}
		if err != nil {
			return err
		}
		deps.Log.Info("Starting cluster %s (%d nodes, %s)", c.Tag, c.Size, c.InstanceType)
	}

	if opts.Bool("login_master") {
		if master, ok := c.Master(); ok {
			_, _ = deps.Printf("%s@%s\n", c.User, master.Hostname)
		}
	}
	return nil
}
