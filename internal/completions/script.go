package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Script returns the snippet that registers bin as its own completer.
// bash calls bin with COMP_LINE and COMP_POINT set and reads one candidate
// per line; -o default falls back to file names when none are printed.
func Script(shell Shell, bin, name string) (string, error) {
	line := fmt.Sprintf("complete -o default -C %s %s\n", shellQuote(bin), shellQuote(name))
	switch shell {
	case ShellBash:
		return line, nil
	case ShellZsh:
		return "autoload -U +X bashcompinit && bashcompinit\n" + line, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}

// Install writes the bash snippet where bash-completion loads it lazily and
// returns the path written.
func Install(shell Shell, bin, name string) (string, error) {
	path := AutoInstallPath(shell, name)
	if path == "" {
		return "", fmt.Errorf("automatic install is not supported for %s; add the output of 'completion' to %s", shell, RcFile(shell))
	}

	script, err := Script(shell, bin, name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("could not create completions directory %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("could not write completions file: %w", err)
	}
	return path, nil
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
