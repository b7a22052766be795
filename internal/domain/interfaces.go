package domain

import (
	"context"
	"io"
)

// ClusterRegistry records the clusters this machine has started.
type ClusterRegistry interface {
	// Record stores a new cluster with its nodes.
	Record(ctx context.Context, c Cluster) (Cluster, error)

	// Get returns the cluster with the given tag.
	Get(ctx context.Context, tag ClusterTag) (Cluster, error)

	// List returns every recorded cluster, oldest first.
	List(ctx context.Context) ([]Cluster, error)

	// Stop marks every node of the cluster stopped and removes the cluster.
	Stop(ctx context.Context, tag ClusterTag) (Cluster, error)

	// Close closes the store connection.
	Close() error
}

// ObjectStorage is the subset of the cloud storage service the actions use.
type ObjectStorage interface {
	// ListBuckets returns every bucket name, sorted.
	ListBuckets(ctx context.Context) ([]string, error)

	// ListObjects returns every object in bucket whose key starts with prefix.
	ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error)

	// DeleteObjects removes the given keys from bucket.
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
}

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)
}
