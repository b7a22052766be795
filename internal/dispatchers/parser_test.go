package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starcluster/starcluster/internal/usage"
)

func TestParseGlobal_StopsAtFirstNonFlag(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantRest []string
		debug    bool
		config   string
	}{
		{
			name:     "no globals",
			argv:     []string{"start", "-s", "3", "mycluster"},
			wantRest: []string{"start", "-s", "3", "mycluster"},
		},
		{
			name:     "debug then action",
			argv:     []string{"--debug", "start", "-s", "3", "mycluster"},
			wantRest: []string{"start", "-s", "3", "mycluster"},
			debug:    true,
		},
		{
			name:     "config value is consumed",
			argv:     []string{"-c", "cfg.hcl", "-d", "stop", "-d"},
			wantRest: []string{"stop", "-d"},
			debug:    true,
			config:   "cfg.hcl",
		},
		{
			name:     "equals syntax",
			argv:     []string{"--config=cfg.hcl", "listclusters"},
			wantRest: []string{"listclusters"},
			config:   "cfg.hcl",
		},
		{
			name:     "combined short flags",
			argv:     []string{"-dc", "cfg.hcl", "help"},
			wantRest: []string{"help"},
			debug:    true,
			config:   "cfg.hcl",
		},
		{
			name:     "empty",
			argv:     []string{},
			wantRest: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, rest, err := ParseGlobal(testRoot(), tt.argv)
			require.NoError(t, err)
			require.Equal(t, tt.wantRest, rest)
			require.Equal(t, tt.debug, opts.Bool("debug"))
			require.Equal(t, tt.config, opts.String("config"))
		})
	}
}

func TestActionParser_Syntax(t *testing.T) {
	a := &Action{Aliases: []string{"start"}, Options: startSchema}

	tests := []struct {
		name     string
		tokens   []string
		wantSize int
		wantTag  string
		wantArgs []string
	}{
		{"space separated", []string{"-s", "3", "c1"}, 3, "201001011200", []string{"c1"}},
		{"attached short value", []string{"-s3", "c1"}, 3, "201001011200", []string{"c1"}},
		{"long equals", []string{"--cluster-size=4", "--tag=x", "c1"}, 4, "x", []string{"c1"}},
		{"interspersed", []string{"c1", "-t", "y", "c2"}, 0, "y", []string{"c1", "c2"}},
		{"double dash ends flags", []string{"-s", "2", "--", "-t", "c1"}, 2, "201001011200", []string{"-t", "c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, args, err := NewActionParser("start", a).Parse(tt.tokens)
			require.NoError(t, err)
			require.Equal(t, tt.wantSize, opts.Int("cluster_size"))
			require.Equal(t, tt.wantTag, opts.String("cluster_tag"))
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestActionParser_NoSchema(t *testing.T) {
	a := &Action{Aliases: []string{"listbuckets"}}

	opts, args, err := NewActionParser("listbuckets", a).Parse([]string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, args)
	require.Empty(t, opts.Values())

	_, _, err = NewActionParser("listbuckets", a).Parse([]string{"--all"})
	require.True(t, usage.IsKind(err, usage.ErrUnknownOption))
}

func TestActionParser_ChoiceValues(t *testing.T) {
	a := &Action{Aliases: []string{"start"}, Options: startSchema}

	for _, shell := range []string{"bash", "csh", "zsh"} {
		opts, _, err := NewActionParser("start", a).Parse([]string{"--cluster-shell", shell})
		require.NoError(t, err)
		require.Equal(t, shell, opts.String("cluster_shell"))
	}

	_, _, err := NewActionParser("start", a).Parse([]string{"--cluster-shell=BASH"})
	require.True(t, usage.IsKind(err, usage.ErrInvalidOptionValue))
	require.Contains(t, err.Error(), "choose from 'bash', 'csh', 'zsh'")
}

func TestActionParser_BoolValue(t *testing.T) {
	a := &Action{Aliases: []string{"start"}, Options: startSchema}

	opts, _, err := NewActionParser("start", a).Parse([]string{"--no-create=false"})
	require.NoError(t, err)
	require.False(t, opts.Bool("no_create"))
	require.True(t, opts.Changed("no_create"))

	_, _, err = NewActionParser("start", a).Parse([]string{"--no-create=maybe"})
	require.True(t, usage.IsKind(err, usage.ErrInvalidOptionValue))
}

func TestActionParser_Help(t *testing.T) {
	a := &Action{Aliases: []string{"start"}, Options: startSchema}

	_, _, err := NewActionParser("start", a).Parse([]string{"c1", "-h"})
	require.ErrorIs(t, err, ErrHelpRequested)
}
