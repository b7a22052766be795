// Package cli declares the starcluster program: its global flags and every
// action it can dispatch to.
package cli

import (
	"context"
	"time"

	helpactions "github.com/starcluster/starcluster/internal/actions/help"
	"github.com/starcluster/starcluster/internal/actions/clusters"
	completionactions "github.com/starcluster/starcluster/internal/actions/completions"
	"github.com/starcluster/starcluster/internal/actions/storage"
	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/dispatchers"
	"github.com/starcluster/starcluster/internal/domain"
)

// Env is what the actions need from the running application.
type Env struct {
	Log    domain.Logger
	Output domain.OutputWriter

	LoadConfig func() (*config.Config, error)
	Registry   func(context.Context) (domain.ClusterRegistry, error)
	Storage    func(context.Context, *config.Config) (domain.ObjectStorage, error)

	// ClusterNames lists configured cluster templates for completion. It
	// must not write anything.
	ClusterNames func() []string

	Now func() time.Time
}

// Root describes the program and its global flags.
func Root(version string) dispatchers.RootSpec {
	return dispatchers.RootSpec{
		Name:        "starcluster",
		Summary:     "Utility for creating and managing clusters on Amazon EC2",
		Description: "Please submit bug reports to starcluster@mit.edu",
		Usage:       "starcluster [<global-opts>] action [<action-opts>] [<action-args> ...]",
		Version:     version,
		Flags: []dispatchers.OptionSpec{
			{Short: "d", Long: "debug", Dest: "debug", Kind: dispatchers.KindFlag,
				Help: "print debug messages (useful for diagnosing problems)"},
			{Short: "c", Long: "config", Dest: "config", Kind: dispatchers.KindString, ValueHint: "FILE",
				Help: "use alternate config file (default: ~/.starclustercfg)"},
			{Long: "version", Dest: "version", Kind: dispatchers.KindFlag,
				Help: "show program's version number and exit"},
		},
	}
}

// BuildRegistry registers every action. A duplicate alias or an invalid
// schema is a programming error and fails the whole build.
func BuildRegistry(root dispatchers.RootSpec, env Env) (*dispatchers.Registry, error) {
	reg := dispatchers.NewRegistry()

	clusterDeps := clusters.Deps{
		LoadConfig: env.LoadConfig,
		Registry:   env.Registry,
		Log:        env.Log,
		Printf:     env.Output.Printf,
		Println:    env.Output.Println,
		Now:        env.Now,
	}
	storageDeps := storage.Deps{
		LoadConfig: env.LoadConfig,
		Storage:    env.Storage,
		Log:        env.Log,
		Printf:     env.Output.Printf,
		Println:    env.Output.Println,
	}
	completionDeps := completionactions.DefaultDeps(root.Name)
	completionDeps.Printf = env.Output.Printf

	err := reg.Register(
		&dispatchers.Action{
			Aliases:  []string{"start"},
			Summary:  "Start a new cluster",
			Usage:    "start [options] <cluster_template> ...",
			Category: dispatchers.CategoryClusters,
			Options:  clusters.StartOptions(env.Now),
			Execute:  clusters.Start(clusterDeps),
			Complete: env.ClusterNames,
		},
		&dispatchers.Action{
			Aliases:  []string{"stop"},
			Summary:  "Shutdown a running cluster",
			Usage:    "stop <cluster_tag> ...",
			Category: dispatchers.CategoryClusters,
			Execute:  clusters.Stop(clusterDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"listclusters", "lc"},
			Summary:  "List all running clusters",
			Usage:    "listclusters",
			Category: dispatchers.CategoryClusters,
			Execute:  clusters.ListClusters(clusterDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"sshmaster", "sm"},
			Summary:  "SSH to a cluster's master node",
			Usage:    "sshmaster <cluster_tag>",
			Category: dispatchers.CategoryClusters,
			Execute:  clusters.Unimplemented(env.Log),
		},
		&dispatchers.Action{
			Aliases:  []string{"sshnode", "sn"},
			Summary:  "SSH to a cluster node",
			Usage:    "sshnode <cluster_tag> <node>",
			Category: dispatchers.CategoryClusters,
			Execute:  clusters.Unimplemented(env.Log),
		},
		&dispatchers.Action{
			Aliases:  []string{"createami", "ca"},
			Summary:  "Create a new image (AMI) from a currently running EC2 instance",
			Usage:    "createami <instance_id>",
			Category: dispatchers.CategoryImages,
			Execute:  clusters.Unimplemented(env.Log),
		},
		&dispatchers.Action{
			Aliases:  []string{"listimages", "li"},
			Summary:  "List all registered images",
			Usage:    "listimages",
			Category: dispatchers.CategoryImages,
			Execute:  storage.ListImages(storageDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"showimage", "si"},
			Summary:  "Show all files on S3 for an image",
			Usage:    "showimage <image> ...",
			Category: dispatchers.CategoryImages,
			Execute:  storage.ShowImage(storageDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"removeimage", "ri"},
			Summary:  "Remove an image and all of its files from S3",
			Usage:    "removeimage <image> ...",
			Category: dispatchers.CategoryImages,
			Execute:  storage.RemoveImage(storageDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"createvolume", "cv"},
			Summary:  "Create a new EBS volume for use with a cluster",
			Usage:    "createvolume <size_gb> <zone>",
			Category: dispatchers.CategoryVolumes,
			Execute:  clusters.Unimplemented(env.Log),
		},
		&dispatchers.Action{
			Aliases:  []string{"listbuckets", "lb"},
			Summary:  "List all S3 buckets",
			Usage:    "listbuckets",
			Category: dispatchers.CategoryStorage,
			Execute:  storage.ListBuckets(storageDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"showbucket", "sb"},
			Summary:  "Show all files in a S3 bucket",
			Usage:    "showbucket <bucket> ...",
			Category: dispatchers.CategoryStorage,
			Execute:  storage.ShowBucket(storageDeps),
		},
		&dispatchers.Action{
			Aliases:  []string{"completion"},
			Summary:  "Print or install the shell completion hook",
			Usage:    "completion [--shell SHELL] [--install]",
			Category: dispatchers.CategoryHelp,
			Options:  completionactions.Options,
			Execute:  completionactions.Completion(completionDeps),
		},
		dispatchers.HelpAction(root, reg, dispatchers.HelpConfig{
			Page:   env.Output.Pager,
			Browse: helpactions.Browser,
		}),
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}
