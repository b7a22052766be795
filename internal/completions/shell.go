package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell is a shell the completion hook can be registered with.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// Shells lists the supported shells.
var Shells = []string{string(ShellBash), string(ShellZsh)}

// DetectShell returns the current shell, checking version variables before
// falling back to $SHELL.
func DetectShell(getenv func(string) string) (Shell, error) {
	if getenv("ZSH_VERSION") != "" {
		return ShellZsh, nil
	}
	if getenv("BASH_VERSION") != "" {
		return ShellBash, nil
	}

	shellPath := getenv("SHELL")
	if shellPath == "" {
		return "", fmt.Errorf("could not detect current shell: $SHELL is not set")
	}
	return ParseShell(filepath.Base(shellPath))
}

// ParseShell validates a user-provided shell name.
func ParseShell(s string) (Shell, error) {
	switch sh := Shell(strings.ToLower(s)); sh {
	case ShellBash, ShellZsh:
		return sh, nil
	default:
		return "", fmt.Errorf("shell %q is not supported (supported: %s)", s, strings.Join(Shells, ", "))
	}
}

// RcFile returns the rc file the snippet is usually added to.
func RcFile(shell Shell) string {
	switch shell {
	case ShellBash:
		return "~/.bashrc"
	case ShellZsh:
		return "~/.zshrc"
	default:
		return ""
	}
}

// AutoInstallPath returns the file bash-completion loads lazily for bin, or
// "" when the shell has no such directory.
func AutoInstallPath(shell Shell, bin string) string {
	if shell != ShellBash {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bash-completion", "completions", filepath.Base(bin))
}
