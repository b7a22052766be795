// Package cluster holds cluster templates: the merged description of a
// cluster that start validates and records.
package cluster

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/starcluster/starcluster/internal/domain"
)

// ErrInvalidTemplate is wrapped by every validation failure.
var ErrInvalidTemplate = errors.New("not valid cluster")

// Credentials are the cloud account settings a template launches with.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	UserID          string
}

// Template describes one cluster to launch.
type Template struct {
	Name        string // config section name; empty for ad-hoc clusters
	Credentials Credentials

	Size             int
	User             string
	Shell            string
	MasterImageID    string
	NodeImageID      string
	InstanceType     string
	AvailabilityZone string
	KeyName          string
	KeyLocation      string
	Volume           string
	VolumeDevice     string
	VolumePartition  string
	Tag              string
	Description      string
}

// New returns an ad-hoc template built on top of the given credentials.
func New(creds Credentials) Template {
	return Template{Credentials: creds}
}

// Merge applies specified option values onto the template. A value whose key
// names a template field overwrites it; other keys are ignored. Zero values
// never clear a stored field. It returns the keys that were applied.
func (t *Template) Merge(specified map[string]any) []string {
	var applied []string
	for _, key := range Keys {
		v, ok := specified[key]
		if !ok || isZero(v) {
			continue
		}
		if t.set(key, v) {
			applied = append(applied, key)
		}
	}
	return applied
}

func (t *Template) set(key string, v any) bool {
	if key == KeyClusterSize {
		n, ok := v.(int)
		if !ok {
			return false
		}
		t.Size = n
		return true
	}

	s, ok := v.(string)
	if !ok {
		return false
	}
	switch key {
	case KeyClusterUser:
		t.User = s
	case KeyClusterShell:
		t.Shell = s
	case KeyMasterImageID:
		t.MasterImageID = s
	case KeyNodeImageID:
		t.NodeImageID = s
	case KeyInstanceType:
		t.InstanceType = s
	case KeyAvailabilityZone:
		t.AvailabilityZone = s
	case KeyKeyName:
		t.KeyName = s
	case KeyKeyLocation:
		t.KeyLocation = s
	case KeyVolume:
		t.Volume = s
	case KeyVolumeDevice:
		t.VolumeDevice = s
	case KeyVolumePartition:
		t.VolumePartition = s
	case KeyClusterTag:
		t.Tag = s
	case KeyClusterDescription:
		t.Description = s
	default:
		return false
	}
	return true
}

func isZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int:
		return x == 0
	case bool:
		return !x
	}
	return false
}

// Values returns the template's non-empty fields keyed like Merge's input.
func (t Template) Values() map[string]any {
	out := make(map[string]any)
	for _, key := range Keys {
		if v := t.get(key); !isZero(v) {
			out[key] = v
		}
	}
	return out
}

func (t Template) get(key string) any {
	switch key {
	case KeyClusterSize:
		return t.Size
	case KeyClusterUser:
		return t.User
	case KeyClusterShell:
		return t.Shell
	case KeyMasterImageID:
		return t.MasterImageID
	case KeyNodeImageID:
		return t.NodeImageID
	case KeyInstanceType:
		return t.InstanceType
	case KeyAvailabilityZone:
		return t.AvailabilityZone
	case KeyKeyName:
		return t.KeyName
	case KeyKeyLocation:
		return t.KeyLocation
	case KeyVolume:
		return t.Volume
	case KeyVolumeDevice:
		return t.VolumeDevice
	case KeyVolumePartition:
		return t.VolumePartition
	case KeyClusterTag:
		return t.Tag
	case KeyClusterDescription:
		return t.Description
	}
	return nil
}

// WithDefaults fills the fields a cluster can launch without specifying.
func (t Template) WithDefaults() Template {
	if t.User == "" {
		t.User = DefaultClusterUser
	}
	if t.Shell == "" {
		t.Shell = DefaultClusterShell
	}
	if t.InstanceType == "" {
		t.InstanceType = DefaultInstanceType
	}
	if t.NodeImageID == "" {
		t.NodeImageID = t.MasterImageID
	}
	return t
}

// Validate reports every problem that prevents the template from launching.
func (t Template) Validate() error {
	var problems []string

	if t.Credentials.AccessKeyID == "" || t.Credentials.SecretAccessKey == "" {
		problems = append(problems, "missing AWS credentials")
	}
	if t.Size < 1 {
		problems = append(problems, "cluster_size must be at least 1")
	}
	if t.MasterImageID == "" {
		problems = append(problems, "missing master_image_id")
	}
	if t.KeyName == "" {
		problems = append(problems, "missing keyname")
	}
	if t.KeyLocation == "" {
		problems = append(problems, "missing key_location")
	} else if _, err := os.Stat(t.KeyLocation); err != nil {
		problems = append(problems, fmt.Sprintf("key_location %s does not exist", t.KeyLocation))
	}
	if t.Shell != "" && !slices.Contains(AvailableShells, t.Shell) {
		problems = append(problems, fmt.Sprintf("unknown cluster_shell %q", t.Shell))
	}
	if t.InstanceType != "" && !slices.Contains(InstanceTypes, t.InstanceType) {
		problems = append(problems, fmt.Sprintf("unknown instance_type %q", t.InstanceType))
	}
	if t.Tag == "" {
		problems = append(problems, "missing cluster_tag")
	}
	if (t.VolumeDevice != "" || t.VolumePartition != "") && t.Volume == "" {
		problems = append(problems, "volume_device and volume_partition require volume")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, strings.Join(problems, "; "))
	}
	return nil
}

// Plan builds the cluster record a launch of this template produces.
// The cluster is named after the template tag.
func (t Template) Plan(now time.Time) domain.Cluster {
	tag := domain.NewClusterTag(t.Tag)
	nodes := make([]domain.Node, 0, t.Size)
	for i := range t.Size {
		alias := domain.NodeAlias(i)
		nodes = append(nodes, domain.Node{
			Alias:    alias,
			Hostname: fmt.Sprintf("%s.%s.cluster", alias, tag.Name()),
			State:    domain.NodeRunning,
		})
	}

	return domain.Cluster{
		Tag:          tag,
		Template:     t.Name,
		Size:         t.Size,
		User:         t.User,
		Shell:        t.Shell,
		MasterImage:  t.MasterImageID,
		NodeImage:    t.NodeImageID,
		InstanceType: t.InstanceType,
		Zone:         t.AvailabilityZone,
		KeyName:      t.KeyName,
		Description:  t.Description,
		CreatedAt:    now,
		Nodes:        nodes,
	}
}
