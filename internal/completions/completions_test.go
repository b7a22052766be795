package completions

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starcluster/starcluster/internal/dispatchers"
)

func testRegistry(t *testing.T) (dispatchers.RootSpec, *dispatchers.Registry) {
	t.Helper()

	root := dispatchers.RootSpec{
		Name: "starcluster",
		Flags: []dispatchers.OptionSpec{
			{Short: "d", Long: "debug", Dest: "debug", Kind: dispatchers.KindFlag},
			{Short: "c", Long: "config", Dest: "config", Kind: dispatchers.KindString, ValueHint: "FILE"},
		},
	}
	reg := dispatchers.NewRegistry()
	require.NoError(t, reg.Register(
		&dispatchers.Action{
			Aliases: []string{"start"},
			Options: func() []dispatchers.OptionSpec {
				return []dispatchers.OptionSpec{
					{Short: "x", Long: "no-create", Dest: "no_create", Kind: dispatchers.KindFlag},
					{Short: "S", Long: "cluster-shell", Dest: "cluster_shell", Kind: dispatchers.KindChoice, Choices: []string{"bash", "csh", "zsh"}},
					{Short: "s", Long: "cluster-size", Dest: "cluster_size", Kind: dispatchers.KindInt},
				}
			},
			Complete: func() []string { return []string{"smallcluster", "bigcluster"} },
		},
		&dispatchers.Action{Aliases: []string{"stop"}},
		&dispatchers.Action{Aliases: []string{"showbucket"}},
		&dispatchers.Action{Aliases: []string{"showimage"}},
	))
	return root, reg
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line    string
		words   []string
		current string
	}{
		{"starcluster ", []string{}, ""},
		{"starcluster", []string{}, ""},
		{"starcluster st", []string{}, "st"},
		{"starcluster start -S ", []string{"start", "-S"}, ""},
		{"starcluster start -S z", []string{"start", "-S"}, "z"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			words, current := SplitLine(tt.line)
			if len(tt.words) == 0 {
				require.Empty(t, words)
			} else {
				require.Equal(t, tt.words, words)
			}
			require.Equal(t, tt.current, current)
		})
	}
}

func TestCandidates(t *testing.T) {
	root, reg := testRegistry(t)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"aliases", "starcluster ", []string{"showbucket", "showimage", "start", "stop"}},
		{"alias prefix", "starcluster sh", []string{"showbucket", "showimage"}},
		{"after global flag", "starcluster -d st", []string{"start", "stop"}},
		{"after global value flag", "starcluster -c ~/cfg st", []string{"start", "stop"}},
		{"after combined global flags", "starcluster -dc ~/cfg st", []string{"start", "stop"}},
		{"after attached global value", "starcluster -c~/cfg st", []string{"start", "stop"}},
		{"choices after combined flags", "starcluster start -xS ", []string{"bash", "csh", "zsh"}},
		{"positional after attached value", "starcluster start -Szsh b", []string{"bigcluster"}},
		{"global flags", "starcluster --", []string{"--config", "--debug", "--help"}},
		{"action flags", "starcluster start --c", []string{"--cluster-shell", "--cluster-size"}},
		{"choices", "starcluster start -S ", []string{"bash", "csh", "zsh"}},
		{"choice prefix", "starcluster start --cluster-shell c", []string{"csh"}},
		{"choice joined", "starcluster start --cluster-shell=z", []string{"--cluster-shell=zsh"}},
		{"int value has no candidates", "starcluster start -s ", nil},
		{"positional hints", "starcluster start -x ", []string{"smallcluster", "bigcluster"}},
		{"positional prefix", "starcluster start b", []string{"bigcluster"}},
		{"no hints", "starcluster stop ", nil},
		{"unknown action", "starcluster bogus ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, current := SplitLine(tt.line)
			require.Equal(t, tt.want, Candidates(root, reg, words, current))
		})
	}
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDetect(t *testing.T) {
	require.IsType(t, dispatchers.NopCompleter{}, Detect(env(nil), &bytes.Buffer{}))
	require.IsType(t, &Bash{}, Detect(env(map[string]string{"COMP_LINE": "starcluster "}), &bytes.Buffer{}))
}

func TestBash_Complete_WritesOnePerLine(t *testing.T) {
	root, reg := testRegistry(t)
	var out bytes.Buffer

	c := Detect(env(map[string]string{"COMP_LINE": "starcluster sto", "COMP_POINT": "15"}), &out)
	handled, err := c.Complete(root, reg)

	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, "stop\n", out.String())
}

func TestBash_Complete_HonorsCompPoint(t *testing.T) {
	root, reg := testRegistry(t)
	var out bytes.Buffer

	// Cursor right after "sh", before the rest of the line.
	c := Detect(env(map[string]string{"COMP_LINE": "starcluster sh -d", "COMP_POINT": "14"}), &out)
	_, err := c.Complete(root, reg)

	require.NoError(t, err)
	require.Equal(t, []string{"showbucket", "showimage"}, strings.Fields(out.String()))
}

func TestScript(t *testing.T) {
	bash, err := Script(ShellBash, "/usr/local/bin/starcluster", "starcluster")
	require.NoError(t, err)
	require.Equal(t, "complete -o default -C /usr/local/bin/starcluster starcluster\n", bash)

	zsh, err := Script(ShellZsh, "/opt/my tools/starcluster", "starcluster")
	require.NoError(t, err)
	require.Equal(t, "autoload -U +X bashcompinit && bashcompinit\ncomplete -o default -C '/opt/my tools/starcluster' starcluster\n", zsh)

	_, err = Script(Shell("fish"), "x", "x")
	require.Error(t, err)
}

func TestParseShell(t *testing.T) {
	sh, err := ParseShell("BASH")
	require.NoError(t, err)
	require.Equal(t, ShellBash, sh)

	_, err = ParseShell("fish")
	require.EqualError(t, err, `shell "fish" is not supported (supported: bash, zsh)`)
}

func TestDetectShell(t *testing.T) {
	sh, err := DetectShell(env(map[string]string{"ZSH_VERSION": "5.9", "SHELL": "/bin/bash"}))
	require.NoError(t, err)
	require.Equal(t, ShellZsh, sh)

	sh, err = DetectShell(env(map[string]string{"SHELL": "/usr/bin/bash"}))
	require.NoError(t, err)
	require.Equal(t, ShellBash, sh)

	_, err = DetectShell(env(nil))
	require.Error(t, err)
}

func TestInstall(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	path, err := Install(ShellBash, "/usr/bin/starcluster", "starcluster")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataHome, "bash-completion", "completions", "starcluster"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "complete -o default -C /usr/bin/starcluster starcluster\n", string(content))

	_, err = Install(ShellZsh, "/usr/bin/starcluster", "starcluster")
	require.Error(t, err)
	require.Contains(t, err.Error(), "~/.zshrc")
}

func TestResolveBinary(t *testing.T) {
	path, name := ResolveBinary("starcluster")
	require.NotEmpty(t, path)
	require.Equal(t, filepath.Base(path), name)
}
