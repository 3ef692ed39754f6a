//nolint:testpackage // Test swaps the UI for a tape collector
package progrock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/tui"
)

type collected struct {
	names  map[string]string
	failed map[string]bool
	done   map[string]bool
	logs   string
}

func collect(tape tui.TapeSource) collected {
	c := collected{names: map[string]string{}, failed: map[string]bool{}, done: map[string]bool{}}
	for {
		update, err := tape.Read()
		if err != nil {
			return c
		}
		for _, v := range update.Vertexes {
			c.names[v.Id] = v.Name
			if v.Completed != nil {
				c.done[v.Name] = true
				c.failed[v.Name] = v.Error != nil
			}
		}
		for _, l := range update.Logs {
			c.logs += string(l.Data)
		}
	}
}

func TestRenderer_RecordsDownloadsAsVertices(t *testing.T) {
	var got collected
	r := &Renderer{ui: func(_ context.Context, tape tui.TapeSource) error {
		got = collect(tape)
		return nil
	}}

	events := make(chan domain.Event, 16)
	events <- domain.StatusEvent{Message: "installing files"}
	events <- domain.DownloadStartEvent{ID: "mods/a.jar", Title: "a.jar", Length: 4}
	events <- domain.DownloadProgressEvent{ID: "mods/a.jar", Bytes: 4}
	events <- domain.DownloadSuccessEvent{ID: "mods/a.jar"}
	events <- domain.DownloadStartEvent{ID: "mods/b.jar", Title: "b.jar"}
	events <- domain.DownloadFailEvent{ID: "mods/b.jar", Err: errors.New("boom")}
	events <- domain.InstalledEvent{File: domain.MustScopedPath("mods/a.jar"), IsNew: true}
	events <- domain.DeletedEvent{File: domain.MustScopedPath("mods/old.jar")}
	close(events)

	require.NoError(t, r.Render(context.Background(), events))

	assert.True(t, got.done["download a.jar"])
	assert.False(t, got.failed["download a.jar"])
	assert.True(t, got.failed["download b.jar"])
	assert.True(t, got.done[domain.AppName])
	assert.False(t, got.failed[domain.AppName])
	assert.Contains(t, got.logs, "installing files")
	assert.Contains(t, got.logs, "4/4 bytes")
	assert.Contains(t, got.logs, "installed mod mods/a.jar")
	assert.Contains(t, got.logs, "deleted mods/old.jar")
}

func TestRecorder_ErrorsFailTheRoot(t *testing.T) {
	tape := NewTape()
	rec := NewRecorder(tape)

	done := make(chan collected)
	go func() { done <- collect(tape) }()

	rec.Record(domain.ErrorEvent{Err: errors.New("missing version")})
	require.NoError(t, rec.Close())

	got := <-done
	assert.True(t, got.failed[domain.AppName])
	assert.Contains(t, got.logs, "missing version")
}

func TestTape_DropsWritesAfterClose(t *testing.T) {
	tape := NewTape()
	require.NoError(t, tape.Close())
	require.NoError(t, tape.WriteStatus(&progrock.StatusUpdate{}))
	require.NoError(t, tape.Close())

	_, err := tape.Read()
	require.Error(t, err)
}
