package cluster

// AvailableShells are the login shells a cluster user may be given.
var AvailableShells = []string{"bash", "csh", "ksh", "tcsh", "zsh"}

// InstanceTypes are the machine types a cluster may be launched on.
var InstanceTypes = []string{"m1.small", "c1.medium", "m1.large", "m1.xlarge", "c1.xlarge"}

// Template keys. Each names both a template field and the Dest of the
// matching start option.
const (
	KeyClusterSize        = "cluster_size"
	KeyClusterUser        = "cluster_user"
	KeyClusterShell       = "cluster_shell"
	KeyMasterImageID      = "master_image_id"
	KeyNodeImageID        = "node_image_id"
	KeyInstanceType       = "instance_type"
	KeyAvailabilityZone   = "availability_zone"
	KeyKeyName            = "keyname"
	KeyKeyLocation        = "key_location"
	KeyVolume             = "volume"
	KeyVolumeDevice       = "volume_device"
	KeyVolumePartition    = "volume_partition"
	KeyClusterTag         = "cluster_tag"
	KeyClusterDescription = "cluster_description"
)

// Keys lists every template key in display order.
var Keys = []string{
	KeyClusterSize,
	KeyClusterUser,
	KeyClusterShell,
	KeyMasterImageID,
	KeyNodeImageID,
	KeyInstanceType,
	KeyAvailabilityZone,
	KeyKeyName,
	KeyKeyLocation,
	KeyVolume,
	KeyVolumeDevice,
	KeyVolumePartition,
	KeyClusterTag,
	KeyClusterDescription,
}

const (
	DefaultClusterUser  = "sgeadmin"
	DefaultClusterShell = "bash"
	DefaultInstanceType = "m1.small"
)
