package help

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/starcluster/starcluster/internal/ui/style"
)

type Deps struct {
	IsTerminal func() bool
	RunProgram func(tea.Model) error
	Colors     func() style.ColorConfig
}

func DefaultDeps() Deps {
	return Deps{
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		RunProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
		Colors: style.GetColors,
	}
}
