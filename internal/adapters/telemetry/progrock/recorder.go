// Package progrock renders the engine's event stream as progrock vertices.
package progrock

import (
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Recorder translates events into vertices: one root vertex carrying status
// lines and one vertex per download.
type Recorder struct {
	w         progrock.Writer
	rec       *progrock.Recorder
	root      *progrock.VertexRecorder
	downloads map[string]*Vertex
	errs      int
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	rec := progrock.NewRecorder(w)
	return &Recorder{
		w:         w,
		rec:       rec,
		root:      rec.Vertex(digest.FromString(domain.AppName), domain.AppName),
		downloads: make(map[string]*Vertex),
	}
}

// Record applies one event.
func (r *Recorder) Record(event domain.Event) {
	switch e := event.(type) {
	case domain.StatusEvent:
		r.line(e.Message)
	case domain.DownloadStartEvent:
		v := r.rec.Vertex(digest.FromString("download:"+e.ID), "download "+e.Title)
		r.downloads[e.ID] = &Vertex{vertex: v, total: e.Length}
	case domain.DownloadProgressEvent:
		if v, ok := r.downloads[e.ID]; ok {
			v.Progress(e.Bytes)
		}
	case domain.DownloadSuccessEvent:
		r.complete(e.ID, nil)
	case domain.DownloadFailEvent:
		r.complete(e.ID, e.Err)
	case domain.InstalledEvent:
		verb := "updated"
		if e.IsNew {
			verb = "installed"
		}
		r.line(fmt.Sprintf("%s %s %s", verb, e.Kind, e.File))
	case domain.DeletedEvent:
		r.line("deleted " + e.File.String())
	case domain.ErrorEvent:
		r.errs++
		_, _ = fmt.Fprintln(r.root.Stderr(), e.Err.Error())
	}
}

func (r *Recorder) line(msg string) {
	_, _ = fmt.Fprintln(r.root.Stdout(), msg)
}

func (r *Recorder) complete(id string, err error) {
	v, ok := r.downloads[id]
	if !ok {
		return
	}
	delete(r.downloads, id)
	v.Complete(err)
}

// Close completes the root vertex, failing it when any item failed, and
// closes the writer.
func (r *Recorder) Close() error {
	for id, v := range r.downloads {
		delete(r.downloads, id)
		v.Complete(nil)
	}

	var err error
	if r.errs > 0 {
		err = zerr.With(zerr.New("some items failed"), "count", r.errs)
	}
	r.root.Done(err)
	return r.w.Close()
}
