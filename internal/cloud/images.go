package cloud

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/starcluster/starcluster/internal/domain"
)

// ErrImageNotFound is returned when no manifest matches an image name.
var ErrImageNotFound = errors.New("image not found")

// ErrAmbiguousImage is returned when more than one manifest carries the
// same image name.
var ErrAmbiguousImage = errors.New("image name is ambiguous")

// partInfix separates an image's base key from its part number.
const partInfix = ".part."

// Catalog finds machine images stored as manifests plus parts in one bucket.
type Catalog struct {
	storage domain.ObjectStorage
	bucket  string
}

// NewCatalog creates a Catalog over the image bucket.
func NewCatalog(storage domain.ObjectStorage, bucket string) *Catalog {
	return &Catalog{storage: storage, bucket: bucket}
}

// Bucket returns the image bucket.
func (c *Catalog) Bucket() string {
	return c.bucket
}

// Images returns every registered image sorted by location.
func (c *Catalog) Images(ctx context.Context) ([]domain.Image, error) {
	objects, err := c.storage.ListObjects(ctx, c.bucket, "")
	if err != nil {
		return nil, err
	}

	var images []domain.Image
	for _, obj := range objects {
		if img, ok := domain.ImageFromManifest(c.bucket, obj.Key); ok {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].Location() < images[j].Location()
	})
	return images, nil
}

// Image returns the image with the given name.
func (c *Catalog) Image(ctx context.Context, name string) (domain.Image, error) {
	images, err := c.Images(ctx)
	if err != nil {
		return domain.Image{}, err
	}
	var matches []domain.Image
	for _, img := range images {
		if img.Name == name {
			matches = append(matches, img)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Image{}, fmt.Errorf("%w: %s", ErrImageNotFound, name)
	case 1:
		return matches[0], nil
	default:
		locations := make([]string, len(matches))
		for i, img := range matches {
			locations[i] = img.Location()
		}
		return domain.Image{}, fmt.Errorf("%w: %s (%s)", ErrAmbiguousImage, name, strings.Join(locations, ", "))
	}
}

// Files returns the manifest and every part of the named image. Images whose
// names extend this one never match.
func (c *Catalog) Files(ctx context.Context, name string) ([]domain.Object, error) {
	img, err := c.Image(ctx, name)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(img.Manifest, domain.ManifestSuffix)
	objects, err := c.storage.ListObjects(ctx, c.bucket, base)
	if err != nil {
		return nil, err
	}

	var files []domain.Object
	for _, obj := range objects {
		if obj.Key == img.Manifest || strings.HasPrefix(obj.Key, base+partInfix) {
			files = append(files, obj)
		}
	}
	return files, nil
}

// Remove deletes the manifest and every part of the named image. It returns
// the removed objects.
func (c *Catalog) Remove(ctx context.Context, name string) ([]domain.Object, error) {
	files, err := c.Files(ctx, name)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, f := range files {
		keys = append(keys, f.Key)
	}
	if err := c.storage.DeleteObjects(ctx, c.bucket, keys); err != nil {
		return nil, err
	}
	return files, nil
}
