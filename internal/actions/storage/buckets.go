package storage

import (
	"context"

	"github.com/starcluster/starcluster/internal/dispatchers"
)

// ListBuckets returns the listbuckets action body.
func ListBuckets(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, _ []string, _, _ *dispatchers.Options) error {
		return listBuckets(ctx, deps)
	}
}

func listBuckets(ctx context.Context, deps Deps) error {
	_, s, err := deps.open(ctx)
	if err != nil {
		return err
	}

	buckets, err := s.ListBuckets(ctx)
	if err != nil {
		return err
	}
	for _, b := range buckets {
		_, _ = deps.Println(b)
	}
	return nil
}

// ShowBucket returns the showbucket action body.
func ShowBucket(deps Deps) dispatchers.ActionFunc {
	return func(ctx context.Context, args []string, _, _ *dispatchers.Options) error {
		return showBucket(ctx, args, deps)
	}
}

func showBucket(ctx context.Context, args []string, deps Deps) error {
	if err := dispatchers.Require(ctx, args, "please specify a S3 bucket"); err != nil {
		return err
	}

	_, s, err := deps.open(ctx)
	if err != nil {
		return err
	}

	for _, bucket := range args {
		objects, err := s.ListObjects(ctx, bucket, "")
		if err != nil {
			return err
		}
		for _, obj := range objects {
			_, _ = deps.Println(obj.Key)
		}
	}
	return nil
}
