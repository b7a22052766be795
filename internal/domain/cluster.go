package domain

import (
	"fmt"
	"strings"
	"time"
)

// SecurityGroupPrefix marks every security group that belongs to a cluster.
const SecurityGroupPrefix = "@sc-"

// ClusterTag identifies a cluster by its security group name ("@sc-<name>").
type ClusterTag string

// NewClusterTag returns the tag for a cluster name. Names that already carry
// the prefix are kept as they are.
func NewClusterTag(name string) ClusterTag {
	if strings.HasPrefix(name, SecurityGroupPrefix) {
		return ClusterTag(name)
	}
	return ClusterTag(SecurityGroupPrefix + name)
}

// String returns the full security group name.
func (t ClusterTag) String() string {
	return string(t)
}

// Name returns the cluster name without the prefix.
func (t ClusterTag) Name() string {
	return strings.TrimPrefix(string(t), SecurityGroupPrefix)
}

// IsEmpty returns true if the tag has no name.
func (t ClusterTag) IsEmpty() bool {
	return t.Name() == ""
}

// NodeState is the lifecycle state of one cluster node.
type NodeState string

const (
	NodeRunning NodeState = "running"
	NodeStopped NodeState = "stopped"
)

// Node is one instance of a recorded cluster.
type Node struct {
	Alias    string // "master", "node001", ...
	Hostname string
	State    NodeState
}

// Cluster is a cluster as recorded in the local cluster registry.
type Cluster struct {
	ID           string
	Tag          ClusterTag
	Template     string
	Size         int
	User         string
	Shell        string
	MasterImage  string
	NodeImage    string
	InstanceType string
	Zone         string
	KeyName      string
	Description  string
	CreatedAt    time.Time
	Nodes        []Node
}

// Master returns the master node, if the cluster has one.
func (c Cluster) Master() (Node, bool) {
	for _, n := range c.Nodes {
		if n.Alias == MasterAlias {
			return n, true
		}
	}
	return Node{}, false
}

// Running reports whether any node of the cluster is running.
func (c Cluster) Running() bool {
	for _, n := range c.Nodes {
		if n.State == NodeRunning {
			return true
		}
	}
	return false
}

// MasterAlias is the alias of the first node of every cluster.
const MasterAlias = "master"

// NodeAlias returns the alias of the i-th node: "master" for 0, then
// "node001", "node002", ...
func NodeAlias(i int) string {
	if i == 0 {
		return MasterAlias
	}
	return fmt.Sprintf("node%03d", i)
}
