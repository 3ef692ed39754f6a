// Package modpack reads Modrinth (.mrpack) and CurseForge modpack archives.
package modpack

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	mrIndexName = "modrinth.index.json"
	cfIndexName = "manifest.json"

	maxIndexBytes = 16 << 20
)

var _ ports.PackOpener = (*Opener)(nil)

// Opener implements ports.PackOpener by sniffing the archive's index file.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open reads the archive at path and parses its manifest.
func (o *Opener) Open(path string) (ports.Pack, error) {
	// Entry names are validated when visited, so insecure paths are not fatal here.
	zr, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, zerr.With(domain.Wrap(domain.ErrPackFormat, err), "path", path)
	}

	p, err := parse(zr)
	if err != nil {
		_ = zr.Close()
		return nil, zerr.With(err, "path", path)
	}
	return p, nil
}

func parse(zr *zip.ReadCloser) (*pack, error) {
	var mr, cf *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case mrIndexName:
			mr = f
		case cfIndexName:
			cf = f
		}
	}

	switch {
	case mr != nil:
		var idx mrIndex
		if err := readJSON(mr, &idx); err != nil {
			return nil, err
		}
		manifest, err := idx.manifest()
		if err != nil {
			return nil, err
		}
		// Client overrides are applied after the shared ones so they win.
		return &pack{zr: zr, manifest: manifest, prefixes: []string{"overrides", "client-overrides"}}, nil
	case cf != nil:
		var m cfManifest
		if err := readJSON(cf, &m); err != nil {
			return nil, err
		}
		manifest, err := m.manifest()
		if err != nil {
			return nil, err
		}
		prefix := m.Overrides
		if prefix == "" {
			prefix = "overrides"
		}
		return &pack{zr: zr, manifest: manifest, prefixes: []string{prefix}}, nil
	default:
		return nil, domain.Wrap(domain.ErrPackFormat, nil)
	}
}

func readJSON(f *zip.File, out any) error {
	rc, err := f.Open()
	if err != nil {
		return zerr.With(domain.Wrap(domain.ErrPackFormat, err), "entry", f.Name)
	}
	defer rc.Close() //nolint:errcheck // read-only entry

	if err := json.NewDecoder(io.LimitReader(rc, maxIndexBytes)).Decode(out); err != nil {
		return zerr.With(domain.Wrap(domain.ErrPackFormat, err), "entry", f.Name)
	}
	return nil
}

// pack is an opened archive.
type pack struct {
	zr       *zip.ReadCloser
	manifest domain.PackManifest
	prefixes []string
}

func (p *pack) Manifest() domain.PackManifest {
	return p.manifest
}

// VisitOverrides streams every regular file under the override prefixes, with
// the prefix stripped, in prefix order.
func (p *pack) VisitOverrides(visit func(path domain.ScopedPath, r io.Reader) error) error {
	for _, prefix := range p.prefixes {
		for _, f := range p.zr.File {
			if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
				continue
			}
			if !strings.HasPrefix(f.Name, prefix+"/") {
				continue
			}
			entry, err := domain.NewScopedPath(f.Name)
			if err != nil {
				return zerr.With(err, "entry", f.Name)
			}
			rel, ok := entry.TrimPrefix(prefix)
			if !ok {
				return zerr.With(domain.Wrap(domain.ErrPathEscapesRoot, nil), "entry", f.Name)
			}
			if err := p.visitEntry(f, rel, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *pack) visitEntry(f *zip.File, rel domain.ScopedPath, visit func(domain.ScopedPath, io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open override"), "entry", f.Name)
	}
	defer rc.Close() //nolint:errcheck // read-only entry
	return visit(rel, rc)
}

func (p *pack) Close() error {
	return p.zr.Close()
}
