package installer

import (
	"sync/atomic"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
)

// run is the state of one Apply.
type run struct {
	*Installer
	req   Request
	sink  ports.EventSink
	count atomic.Int64
}

func newRun(in *Installer, req Request, sink ports.EventSink) *run {
	if req.Parallelism <= 0 {
		req.Parallelism = domain.DefaultParallelism
	}
	return &run{Installer: in, req: req, sink: sink}
}

func (r *run) downloaded() int {
	return int(r.count.Load())
}

func (r *run) fail(err error) {
	r.sink.Emit(domain.ErrorEvent{Err: err})
}

// job is one file to place in the profile.
type job struct {
	kind    domain.InstallKind
	project domain.ProjectID
	version domain.VersionID
	title   string
	urls    []string
	sha1    string
	length  int64
	file    domain.ScopedPath
	// cacheKey names the artifact in the shared cache. Jobs without one are
	// written straight to file.
	cacheKey string
}

type outcome struct {
	job  job
	sha1 string
	err  error
}
