// Package config loads the cluster configuration file, an HCL document with
// an aws block, key blocks and cluster template blocks:
//
//	aws {
//	  access_key_id     = "..."
//	  secret_access_key = "..."
//	  image_bucket      = "my-images"
//	}
//
//	key "gsg-keypair" {
//	  key_location = "~/.ssh/id_rsa-gsg-keypair"
//	}
//
//	cluster "smallcluster" {
//	  keyname         = "gsg-keypair"
//	  cluster_size    = 2
//	  master_image_id = "ami-0001"
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/starcluster/starcluster/internal/cluster"
)

var (
	// ErrConfigNotFound is returned by Load when the file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrClusterDoesNotExist is returned by Cluster for unknown templates.
	ErrClusterDoesNotExist = errors.New("cluster does not exist")

	// ErrNoImageBucket is returned by ImageBucket when none is configured.
	ErrNoImageBucket = errors.New("no image_bucket configured in the aws block")
)

const defaultRegion = "us-east-1"

// AWS holds the account settings shared by every template.
type AWS struct {
	AccessKeyID     string
	SecretAccessKey string
	UserID          string
	Region          string
	ImageBucket     string
	Endpoint        string
}

// Config is a loaded cluster configuration file.
type Config struct {
	Path     string
	AWS      AWS
	keys     map[string]string // key name -> key_location
	clusters map[string]clusterBlock
}

type fileRoot struct {
	AWS      *awsBlock      `hcl:"aws,block"`
	Keys     []keyBlock     `hcl:"key,block"`
	Clusters []clusterBlock `hcl:"cluster,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

type awsBlock struct {
	AccessKeyID     string `hcl:"access_key_id"`
	SecretAccessKey string `hcl:"secret_access_key"`
	UserID          string `hcl:"user_id,optional"`
	Region          string `hcl:"region,optional"`
	ImageBucket     string `hcl:"image_bucket,optional"`
	Endpoint        string `hcl:"endpoint,optional"`
}

type keyBlock struct {
	Name        string `hcl:"name,label"`
	KeyLocation string `hcl:"key_location"`
}

type clusterBlock struct {
	Name               string `hcl:"name,label"`
	ClusterSize        int    `hcl:"cluster_size,optional"`
	ClusterUser        string `hcl:"cluster_user,optional"`
	ClusterShell       string `hcl:"cluster_shell,optional"`
	MasterImageID      string `hcl:"master_image_id,optional"`
	NodeImageID        string `hcl:"node_image_id,optional"`
	InstanceType       string `hcl:"instance_type,optional"`
	AvailabilityZone   string `hcl:"availability_zone,optional"`
	KeyName            string `hcl:"keyname,optional"`
	KeyLocation        string `hcl:"key_location,optional"`
	Volume             string `hcl:"volume,optional"`
	VolumeDevice       string `hcl:"volume_device,optional"`
	VolumePartition    string `hcl:"volume_partition,optional"`
	ClusterTag         string `hcl:"cluster_tag,optional"`
	ClusterDescription string `hcl:"cluster_description,optional"`
}

// Load parses and decodes the configuration file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse decodes configuration source. The filename is used in diagnostics
// and as Config.Path.
func Parse(filename string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}

	cfg := &Config{
		Path:     filename,
		keys:     make(map[string]string, len(root.Keys)),
		clusters: make(map[string]clusterBlock, len(root.Clusters)),
	}

	if root.AWS != nil {
		cfg.AWS = AWS{
			AccessKeyID:     root.AWS.AccessKeyID,
			SecretAccessKey: root.AWS.SecretAccessKey,
			UserID:          root.AWS.UserID,
			Region:          root.AWS.Region,
			ImageBucket:     root.AWS.ImageBucket,
			Endpoint:        root.AWS.Endpoint,
		}
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = defaultRegion
	}

	for _, k := range root.Keys {
		if _, dup := cfg.keys[k.Name]; dup {
			return nil, fmt.Errorf("config file %s: duplicate key %q", filename, k.Name)
		}
		cfg.keys[k.Name] = expandHome(k.KeyLocation)
	}
	for _, c := range root.Clusters {
		if _, dup := cfg.clusters[c.Name]; dup {
			return nil, fmt.Errorf("config file %s: duplicate cluster %q", filename, c.Name)
		}
		cfg.clusters[c.Name] = c
	}

	return cfg, nil
}

// Credentials returns the account credentials templates launch with.
func (c *Config) Credentials() cluster.Credentials {
	return cluster.Credentials{
		AccessKeyID:     c.AWS.AccessKeyID,
		SecretAccessKey: c.AWS.SecretAccessKey,
		UserID:          c.AWS.UserID,
	}
}

// ImageBucket returns the bucket image manifests are stored in.
func (c *Config) ImageBucket() (string, error) {
	if c.AWS.ImageBucket == "" {
		return "", ErrNoImageBucket
	}
	return c.AWS.ImageBucket, nil
}

// ClusterNames returns every cluster template name, sorted.
func (c *Config) ClusterNames() []string {
	names := make([]string, 0, len(c.clusters))
	for name := range c.clusters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyLocation returns the key file registered under name.
func (c *Config) KeyLocation(name string) (string, bool) {
	loc, ok := c.keys[name]
	return loc, ok
}

// Cluster returns the named template with credentials attached. A template
// without key_location takes it from the key block named by its keyname.
func (c *Config) Cluster(name string) (cluster.Template, error) {
	b, ok := c.clusters[name]
	if !ok {
		return cluster.Template{}, fmt.Errorf("%w: %s", ErrClusterDoesNotExist, name)
	}

	t := cluster.Template{
		Name:             b.Name,
		Credentials:      c.Credentials(),
		Size:             b.ClusterSize,
		User:             b.ClusterUser,
		Shell:            b.ClusterShell,
		MasterImageID:    b.MasterImageID,
		NodeImageID:      b.NodeImageID,
		InstanceType:     b.InstanceType,
		AvailabilityZone: b.AvailabilityZone,
		KeyName:          b.KeyName,
		KeyLocation:      expandHome(b.KeyLocation),
		Volume:           b.Volume,
		VolumeDevice:     b.VolumeDevice,
		VolumePartition:  b.VolumePartition,
		Tag:              b.ClusterTag,
		Description:      b.ClusterDescription,
	}
	if t.KeyLocation == "" && t.KeyName != "" {
		t.KeyLocation, _ = c.KeyLocation(t.KeyName)
	}
	return t, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
