//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type sliceTape struct {
	updates []*progrock.StatusUpdate
}

func (s *sliceTape) Read() (*progrock.StatusUpdate, error) {
	if len(s.updates) == 0 {
		return nil, io.EOF
	}
	u := s.updates[0]
	s.updates = s.updates[1:]
	return u, nil
}

func failed() *string {
	msg := "boom"
	return &msg
}

func TestModel_AppliesVertexUpdates(t *testing.T) {
	m := NewModel(&sliceTape{})

	m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "root", Name: "modsync"},
			{Id: "a", Name: "download a.jar"},
			{Id: "b", Name: "download b.jar"},
		},
	}})
	require.Len(t, m.vertices, 3)
	assert.Equal(t, statusRunning, m.vertices[1].Status)

	m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "a", Name: "download a.jar", Completed: timestamppb.Now()},
			{Id: "b", Name: "download b.jar", Completed: timestamppb.Now(), Error: failed()},
		},
		Logs: []*progrock.VertexLog{
			{Vertex: "root", Data: []byte("fetching version metadata\ninstalling files\n")},
		},
	}})

	assert.Len(t, m.vertices, 3)
	assert.Equal(t, statusCompleted, m.vertices[1].Status)
	assert.Equal(t, statusFailed, m.vertices[2].Status)
	assert.Equal(t, "installing files", m.vertices[0].Detail)

	view := m.View()
	assert.Contains(t, view, "✓ download a.jar")
	assert.Contains(t, view, "✗ download b.jar")
	assert.Contains(t, view, "installing files")
}

func TestModel_QuitsWhenTapeEnds(t *testing.T) {
	m := NewModel(&sliceTape{})

	msg := WaitForTape(m.tape)()
	assert.Equal(t, MsgTapeEnded{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewKeepsNewestRows(t *testing.T) {
	m := NewModel(&sliceTape{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "1", Name: "first"}, {Id: "2", Name: "second"}, {Id: "3", Name: "third"}},
	}})

	view := m.View()
	assert.NotContains(t, view, "first")
	assert.Contains(t, view, "third")
}

func TestWaitForTape_ReturnsUpdates(t *testing.T) {
	update := &progrock.StatusUpdate{}
	msg := WaitForTape(&sliceTape{updates: []*progrock.StatusUpdate{update}})()
	assert.Equal(t, MsgTapeUpdate{Update: update}, msg)
}
