package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/domain"
	"github.com/starcluster/starcluster/internal/log"
	"github.com/starcluster/starcluster/internal/usage"
)

type fakeStorage struct {
	buckets map[string][]string
	deleted []string
	listErr error
}

func (f *fakeStorage) ListBuckets(context.Context) ([]string, error) {
	var names []string
	for name := range f.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeStorage) ListObjects(_ context.Context, bucket, prefix string) ([]domain.Object, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Object
	for _, key := range f.buckets[bucket] {
		if strings.HasPrefix(key, prefix) {
			out = append(out, domain.Object{Bucket: bucket, Key: key})
		}
	}
	return out, nil
}

func (f *fakeStorage) DeleteObjects(_ context.Context, bucket string, keys []string) error {
	f.deleted = append(f.deleted, keys...)
	f.buckets[bucket] = slices.DeleteFunc(f.buckets[bucket], func(k string) bool {
		return slices.Contains(keys, k)
	})
	return nil
}

const testConfig = `
aws {
  access_key_id     = "AKID"
  secret_access_key = "SECRET"
  image_bucket      = "images"
}
`

type harness struct {
	deps    Deps
	storage *fakeStorage
	logs    *bytes.Buffer
	out     *bytes.Buffer
}

func newHarness(t *testing.T, cfgSrc string) *harness {
	t.Helper()
	h := &harness{
		storage: &fakeStorage{buckets: map[string][]string{
			"images": {
				"centos.manifest.xml", "centos.part.0", "centos.part.1",
				"alpine.manifest.xml", "alpine.part.0",
				"notes.txt",
			},
			"logs": {"2010/01/01.log"},
		}},
		logs: &bytes.Buffer{},
		out:  &bytes.Buffer{},
	}
	h.deps = Deps{
		LoadConfig: func() (*config.Config, error) {
			return config.Parse("test.hcl", []byte(cfgSrc))
		},
		Storage: func(context.Context, *config.Config) (domain.ObjectStorage, error) {
			return h.storage, nil
		},
		Log: log.New(h.logs, log.LevelInfo),
		Printf: func(format string, a ...any) (int, error) {
			return fmt.Fprintf(h.out, format, a...)
		},
		Println: func(a ...any) (int, error) {
			return fmt.Fprintln(h.out, a...)
		},
	}
	return h
}

func TestListImages_SortedByLocation(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, listImages(context.Background(), h.deps))
	require.Equal(t,
		"[0] alpine (images/alpine.manifest.xml)\n[1] centos (images/centos.manifest.xml)\n",
		h.out.String())
}

func TestListImages_NoImageBucket(t *testing.T) {
	h := newHarness(t, `aws {
  access_key_id     = "AKID"
  secret_access_key = "SECRET"
}`)

	err := listImages(context.Background(), h.deps)
	require.ErrorIs(t, err, config.ErrNoImageBucket)
}

func TestListImages_Empty(t *testing.T) {
	h := newHarness(t, testConfig)
	h.storage.buckets["images"] = nil

	require.NoError(t, listImages(context.Background(), h.deps))
	require.Equal(t, ">>> No images found in images\n", h.logs.String())
}

func TestShowImage(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, showImage(context.Background(), []string{"centos", "missing"}, h.deps))
	require.Equal(t, "centos.manifest.xml\ncentos.part.0\ncentos.part.1\n", h.out.String())
	require.Equal(t, "!!! ERROR - image missing does not exist\n", h.logs.String())
}

func TestShowImage_RequiresName(t *testing.T) {
	h := newHarness(t, testConfig)

	err := showImage(context.Background(), nil, h.deps)
	require.True(t, usage.IsKind(err, usage.ErrMissingArgument))
	require.Contains(t, err.Error(), "please specify an AMI id")
}

func TestShowImage_StorageError(t *testing.T) {
	h := newHarness(t, testConfig)
	boom := errors.New("boom")
	h.storage.listErr = boom

	require.ErrorIs(t, showImage(context.Background(), []string{"centos"}, h.deps), boom)
}

func TestRemoveImage(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, removeImage(context.Background(), []string{"centos"}, h.deps))
	require.Equal(t, []string{"centos.manifest.xml", "centos.part.0", "centos.part.1"}, h.storage.deleted)
	require.Equal(t, []string{"alpine.manifest.xml", "alpine.part.0", "notes.txt"}, h.storage.buckets["images"])
	require.Equal(t, ">>> Removed image centos (3 files)\n", h.logs.String())
}

func TestRemoveImage_SkipsAmbiguousName(t *testing.T) {
	h := newHarness(t, testConfig)
	h.storage.buckets["images"] = append(h.storage.buckets["images"],
		"old/centos.manifest.xml", "old/centos.part.0")

	require.NoError(t, removeImage(context.Background(), []string{"centos", "alpine"}, h.deps))
	require.Equal(t, []string{"alpine.manifest.xml", "alpine.part.0"}, h.storage.deleted)
	require.Contains(t, h.logs.String(), "!!! ERROR - image name is ambiguous: centos")
}

func TestRemoveImage_RequiresName(t *testing.T) {
	h := newHarness(t, testConfig)

	err := removeImage(context.Background(), nil, h.deps)
	require.True(t, usage.IsKind(err, usage.ErrMissingArgument))
	require.Empty(t, h.storage.deleted)
}

func TestListBuckets(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, listBuckets(context.Background(), h.deps))
	require.Equal(t, "images\nlogs\n", h.out.String())
}

func TestShowBucket(t *testing.T) {
	h := newHarness(t, testConfig)

	require.NoError(t, showBucket(context.Background(), []string{"logs"}, h.deps))
	require.Equal(t, "2010/01/01.log\n", h.out.String())

	err := showBucket(context.Background(), nil, h.deps)
	require.True(t, usage.IsKind(err, usage.ErrMissingArgument))
	require.Contains(t, err.Error(), "please specify a S3 bucket")
}

func TestOpen_ConfigError(t *testing.T) {
	h := newHarness(t, testConfig)
	h.deps.LoadConfig = func() (*config.Config, error) { return nil, config.ErrConfigNotFound }

	require.ErrorIs(t, listBuckets(context.Background(), h.deps), config.ErrConfigNotFound)
}
