// Package tui provides a terminal user interface for install progress.
package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
	"go.trai.ch/zerr"
)

// TapeSource is an interface for reading progrock updates.
// Since *progrock.Tape does not implement Read(), callers supply their own source.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a Bubble Tea command that reads the next update from the tape.
// It returns MsgTapeUpdate on success or MsgTapeEnded on EOF or error.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}

// Run draws tape on stderr until it ends or ctx is cancelled.
func Run(ctx context.Context, tape TapeSource) error {
	p := tea.NewProgram(NewModel(tape), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return zerr.Wrap(err, "terminal UI failed")
	}
	return nil
}
