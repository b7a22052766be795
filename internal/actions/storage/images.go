// Package storage implements the actions that browse machine images and
// buckets in object storage.
package storage

import (
	"context"
	"errors"

	"github.com/starcluster/starcluster/internal/cloud"
	"github.com/starcluster/starcluster/internal/dispatchers"
)

func (d Deps) catalog(ctx context.Context) (*cloud.Catalog, error) {
	cfg, s, err := d.open(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := cfg.ImageBucket()
	if err != nil {
		return nil, err
	}
	return cloud.NewCatalog(s, bucket), nil
}

// ListImages returns the listimages action body.
func ListImages(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, _ []string, _, _ *dispatchers.Options) error {
		return listImages(ctx, deps)
	}
}

func listImages(ctx context.Context, deps Deps) error {
	catalog, err := deps.catalog(ctx)
	if err != nil {
		return err
	}

	images, err := catalog.Images(ctx)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		deps.Log.Info("No images found in %s", catalog.Bucket())
		return nil
	}
	for i, img := range images {
		_, _ = deps.Printf("[%d] %s (%s)\n", i, img.Name, img.Location())
	}
	return nil
}

// ShowImage returns the showimage action body.
func ShowImage(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, args []string, _, _ *dispatchers.Options) error {
		return showImage(ctx, args, deps)
	}
}

func showImage(ctx context.Context, args []string, deps Deps) error {
	if err := dispatchers.Require(ctx, args, "please specify an AMI id"); err != nil {
		return err
	}

	catalog, err := deps.catalog(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		files, err := catalog.Files(ctx, name)
		if errors.Is(err, cloud.ErrImageNotFound) {
			deps.Log.Error("image %s does not exist", name)
			continue
		}
		if errors.Is(err, cloud.ErrAmbiguousImage) {
			deps.Log.Error("%v", err)
			continue
		}
		if err != nil {
			return err
		}
		for _, f := range files {
			_, _ = deps.Println(f.Key)
		}
	}
	return nil
}

// RemoveImage returns the removeimage action body.
func RemoveImage(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, args []string, _, _ *dispatchers.Options) error {
		return removeImage(ctx, args, deps)
	}
}

func removeImage(ctx context.Context, args []string, deps Deps) error {
	if err := dispatchers.Require(ctx, args, "please specify an AMI id"); err != nil {
		return err
	}

	catalog, err := deps.catalog(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		removed, err := catalog.Remove(ctx, name)
		if errors.Is(err, cloud.ErrImageNotFound) {
			deps.Log.Error("image %s does not exist", name)
			continue
		}
		if errors.Is(err, cloud.ErrAmbiguousImage) {
			deps.Log.Error("%v", err)
			continue
		}
		if err != nil {
			return err
		}
		for _, f := range removed {
			deps.Log.Debug("removed s3://%s/%s", catalog.Bucket(), f.Key)
		}
		deps.Log.Info("Removed image %s (%d files)", name, len(removed))
	}
	return nil
}
