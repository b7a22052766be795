package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClusterTag(t *testing.T) {
	require.Equal(t, ClusterTag("@sc-mycluster"), NewClusterTag("mycluster"))
	require.Equal(t, ClusterTag("@sc-mycluster"), NewClusterTag("@sc-mycluster"))
	require.Equal(t, "mycluster", NewClusterTag("@sc-mycluster").Name())
	require.Equal(t, "@sc-mycluster", NewClusterTag("mycluster").String())
	require.True(t, NewClusterTag("").IsEmpty())
	require.False(t, NewClusterTag("x").IsEmpty())
}

func TestNodeAlias(t *testing.T) {
	require.Equal(t, "master", NodeAlias(0))
	require.Equal(t, "node001", NodeAlias(1))
	require.Equal(t, "node042", NodeAlias(42))
}

func TestCluster_MasterAndRunning(t *testing.T) {
	c := Cluster{Nodes: []Node{
		{Alias: "master", Hostname: "m.example", State: NodeStopped},
		{Alias: "node001", State: NodeRunning},
	}}

	m, ok := c.Master()
	require.True(t, ok)
	require.Equal(t, "m.example", m.Hostname)
	require.True(t, c.Running())

	_, ok = Cluster{}.Master()
	require.False(t, ok)
	require.False(t, Cluster{}.Running())
}

func TestImageFromManifest(t *testing.T) {
	img, ok := ImageFromManifest("images", "x86/sc-base.manifest.xml")
	require.True(t, ok)
	require.Equal(t, "sc-base", img.Name)
	require.Equal(t, "images/x86/sc-base.manifest.xml", img.Location())

	_, ok = ImageFromManifest("images", "sc-base.part.0")
	require.False(t, ok)
	_, ok = ImageFromManifest("images", ".manifest.xml")
	require.False(t, ok)
}

func TestSettingKeys(t *testing.T) {
	def, ok := SettingDefault("log_level")
	require.True(t, ok)
	require.Equal(t, "debug", def)

	_, ok = GetSettingKey("debug")
	require.True(t, ok)
	_, ok = SettingDefault("nope")
	require.False(t, ok)
}
