package domain

import (
	"path"
	"strings"
	"time"
)

// ManifestSuffix ends the key of every image manifest in the image bucket.
const ManifestSuffix = ".manifest.xml"

// Object is one stored object in a bucket.
type Object struct {
	Bucket       string
	Key          string
	Size         int64
	LastModified time.Time
}

// Image is a machine image registered as a manifest in a bucket.
type Image struct {
	Name     string // manifest prefix, e.g. "sc-base-x86_64"
	Bucket   string
	Manifest string // full manifest key
}

// Location returns "bucket/manifest", the way images are listed.
func (i Image) Location() string {
	return i.Bucket + "/" + i.Manifest
}

// ImageFromManifest builds an Image from a manifest key. It reports false
// for keys that are not manifests.
func ImageFromManifest(bucket, key string) (Image, bool) {
	if !strings.HasSuffix(key, ManifestSuffix) {
		return Image{}, false
	}
	name := strings.TrimSuffix(path.Base(key), ManifestSuffix)
	if name == "" {
		return Image{}, false
	}
	return Image{Name: name, Bucket: bucket, Manifest: key}, true
}
