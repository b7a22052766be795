package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppLocalDataDir_ReturnsNonEmpty(t *testing.T) {
	dir := AppLocalDataDir()
	require.NotEmpty(t, dir)
	require.NotEqual(t, ".", dir)
	require.True(t, strings.HasSuffix(dir, "starcluster"),
		"AppLocalDataDir should end with 'starcluster': %s", dir)
}

func TestAppLocalDataDir_Platform(t *testing.T) {
	dir := AppLocalDataDir()

	switch runtime.GOOS {
	case "darwin":
		require.Contains(t, dir, "Application Support")
	case "linux":
		require.True(t, strings.Contains(dir, ".local/share") ||
			os.Getenv("XDG_DATA_HOME") != "",
			"Linux path should use XDG_DATA_HOME or .local/share: %s", dir)
	case "windows":
		require.Contains(t, dir, "Local")
	}
}

func TestAppLocalDataDir_WithXDGDataHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	customPath := "/tmp/custom/data"
	t.Setenv("XDG_DATA_HOME", customPath)

	require.Equal(t, filepath.Join(customPath, "starcluster"), AppLocalDataDir())
}

func TestAppLocalDataDir_WithoutXDGDataHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	t.Setenv("XDG_DATA_HOME", "")

	require.Contains(t, AppLocalDataDir(), ".local/share")
}

func TestConfigFilePath_UnderHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path, err := ConfigFilePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".starclustercfg"), path)
}

func TestDataFiles_UnderAppLocalDataDir(t *testing.T) {
	dir := AppLocalDataDir()

	require.Equal(t, filepath.Join(dir, "clusters.db"), DBPath())
	require.Equal(t, filepath.Join(dir, "starcluster.log"), LogFilePath())
}

func TestPaths_NoDotDotComponents(t *testing.T) {
	cfg, err := ConfigFilePath()
	require.NoError(t, err)

	for _, p := range []string{AppLocalDataDir(), DBPath(), LogFilePath(), cfg} {
		require.NotContains(t, p, "..")
	}
}
