package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigExists is returned by WriteTemplate when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// Template is the starter configuration written for first-time users.
const Template = `# starcluster configuration

aws {
  access_key_id     = "#your_access_key_id"
  secret_access_key = "#your_secret_access_key"
  # user_id         = "#your_aws_user_id"
  # region          = "us-east-1"
  # image_bucket    = "#bucket_holding_image_manifests"
}

key "gsg-keypair" {
  key_location = "~/.ssh/id_rsa-gsg-keypair"
}

cluster "smallcluster" {
  keyname         = "gsg-keypair"
  cluster_size    = 2
  cluster_user    = "sgeadmin"
  cluster_shell   = "bash"
  master_image_id = "ami-00000000"
  instance_type   = "m1.small"
}
`

// WriteTemplate writes Template to path atomically with owner-only
// permissions. It never overwrites an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".starclustercfg.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.WriteString(Template); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	// Link fails if another process created the file meanwhile.
	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return err
	}
	_ = os.Remove(tmpPath)

	success = true
	return nil
}
