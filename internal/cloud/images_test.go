package cloud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func imageBucket() *mockS3Client {
	return newMockS3Client(map[string][]string{
		"sc-images": {
			"x86/sc-base.manifest.xml",
			"x86/sc-base.part.0",
			"x86/sc-base.part.1",
			"x86/sc-base-extra.manifest.xml",
			"x86/sc-base-extra.part.0",
			"x86/sc-base.v2.manifest.xml",
			"x86/sc-base.v2.part.0",
			"amd64/sc-hpc.manifest.xml",
			"amd64/sc-hpc.part.0",
			"README",
		},
	})
}

func TestCatalog_Images_SortedByLocation(t *testing.T) {
	c := NewCatalog(NewStorageWithClient(imageBucket()), "sc-images")

	images, err := c.Images(context.Background())
	require.NoError(t, err)

	var locations []string
	for _, img := range images {
		locations = append(locations, img.Location())
	}
	require.Equal(t, []string{
		"sc-images/amd64/sc-hpc.manifest.xml",
		"sc-images/x86/sc-base-extra.manifest.xml",
		"sc-images/x86/sc-base.manifest.xml",
		"sc-images/x86/sc-base.v2.manifest.xml",
	}, locations)
	require.Equal(t, "sc-hpc", images[0].Name)
}

func TestCatalog_Files_OnlyThatImage(t *testing.T) {
	c := NewCatalog(NewStorageWithClient(imageBucket()), "sc-images")

	files, err := c.Files(context.Background(), "sc-base")
	require.NoError(t, err)

	var keys []string
	for _, f := range files {
		keys = append(keys, f.Key)
	}
	require.Equal(t, []string{
		"x86/sc-base.manifest.xml",
		"x86/sc-base.part.0",
		"x86/sc-base.part.1",
	}, keys)
}

func TestCatalog_Image_NotFound(t *testing.T) {
	c := NewCatalog(NewStorageWithClient(imageBucket()), "sc-images")

	_, err := c.Files(context.Background(), "nope")
	require.True(t, errors.Is(err, ErrImageNotFound))
}

func TestCatalog_Remove(t *testing.T) {
	m := imageBucket()
	c := NewCatalog(NewStorageWithClient(m), "sc-images")

	removed, err := c.Remove(context.Background(), "sc-hpc")
	require.NoError(t, err)
	require.Len(t, removed, 2)

	images, err := c.Images(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 3)
	require.Contains(t, m.buckets["sc-images"], "README")
}

func TestCatalog_Remove_KeepsDottedSibling(t *testing.T) {
	m := imageBucket()
	c := NewCatalog(NewStorageWithClient(m), "sc-images")

	removed, err := c.Remove(context.Background(), "sc-base")
	require.NoError(t, err)
	require.Len(t, removed, 3)

	require.Contains(t, m.buckets["sc-images"], "x86/sc-base.v2.manifest.xml")
	require.Contains(t, m.buckets["sc-images"], "x86/sc-base.v2.part.0")
	require.Contains(t, m.buckets["sc-images"], "x86/sc-base-extra.part.0")
	require.NotContains(t, m.buckets["sc-images"], "x86/sc-base.part.1")

	files, err := c.Files(context.Background(), "sc-base.v2")
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestCatalog_Image_SameNameInTwoDirectories(t *testing.T) {
	m := newMockS3Client(map[string][]string{
		"sc-images": {
			"x86/sc-base.manifest.xml",
			"x86/sc-base.part.0",
			"amd64/sc-base.manifest.xml",
			"amd64/sc-base.part.0",
		},
	})
	c := NewCatalog(NewStorageWithClient(m), "sc-images")

	_, err := c.Image(context.Background(), "sc-base")
	require.True(t, errors.Is(err, ErrAmbiguousImage))
	require.Contains(t, err.Error(), "sc-images/amd64/sc-base.manifest.xml")

	_, err = c.Remove(context.Background(), "sc-base")
	require.True(t, errors.Is(err, ErrAmbiguousImage))
	require.Len(t, m.buckets["sc-images"], 4)
}

func TestCatalog_Bucket(t *testing.T) {
	require.Equal(t, "b", NewCatalog(nil, "b").Bucket())
}
