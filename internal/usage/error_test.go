package usage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"missing action", MissingAction("usage"), 1},
		{"unknown action", UnknownAction("bogus"), 1},
		{"unknown option", UnknownOption("start", "--nope"), 1},
		{"invalid value", InvalidOptionValue("start", "--cluster-shell", "pwsh", []string{"bash"}), 1},
		{"missing argument", MissingArgument("start", "please specify a cluster", ""), 1},
		{"duplicate alias", DuplicateAlias("start"), 70},
		{"explicit code wins", &Error{Kind: ErrUnknownAction, ExitCode: 9}, 9},
		{"unknown kind", &Error{Kind: ErrorKind(99)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.GetExitCode())
		})
	}
}

func TestUnknownAction_Message(t *testing.T) {
	err := UnknownAction("strat", "start", "stop")
	require.Contains(t, err.Error(), "'strat'")
	require.Contains(t, err.Error(), "start")
	require.Contains(t, err.Error(), "stop")

	plain := UnknownAction("bogus")
	require.Equal(t, "Error: invalid command 'bogus'", plain.Error())
}

func TestInvalidOptionValue_ListsChoices(t *testing.T) {
	err := InvalidOptionValue("start", "-S", "pwsh", []string{"bash", "zsh"})
	require.Contains(t, err.Error(), "'pwsh'")
	require.Contains(t, err.Error(), "(choose from 'bash', 'zsh')")
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", UnknownOption("stop", "-z"))

	require.True(t, errors.Is(wrapped, &Error{Kind: ErrUnknownOption}))
	require.False(t, errors.Is(wrapped, &Error{Kind: ErrUnknownAction}))
	require.True(t, IsKind(DuplicateAlias("x"), ErrDuplicateAlias))
	require.False(t, IsKind(errors.New("plain"), ErrDuplicateAlias))
	require.True(t, IsKind(wrapped, ErrUnknownOption))
	require.False(t, IsKind(wrapped, ErrUnknownAction))
}
