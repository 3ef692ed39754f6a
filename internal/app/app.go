// Package app implements the application layer for modsync.
package app

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/modsync/internal/engine/installer"
	"go.trai.ch/modsync/internal/engine/progress"
	"go.trai.ch/modsync/internal/engine/updater"
	"go.trai.ch/zerr"
)

// FileWalker lists files below a directory.
type FileWalker interface {
	WalkFiles(root string, exts []string) iter.Seq[string]
}

// App represents the main application logic.
type App struct {
	cfg       *domain.Config
	loader    ports.ConfigLoader
	store     ports.ProfileStore
	client    ports.ProviderClient
	installer *installer.Installer
	updater   *updater.Updater
	walker    FileWalker
	logger    ports.Logger
	renderer  ports.Renderer
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	loader ports.ConfigLoader,
	store ports.ProfileStore,
	client ports.ProviderClient,
	inst *installer.Installer,
	upd *updater.Updater,
	walker FileWalker,
	logger ports.Logger,
	renderer ports.Renderer,
) *App {
	return &App{
		cfg:       cfg,
		loader:    loader,
		store:     store,
		client:    client,
		installer: inst,
		updater:   upd,
		walker:    walker,
		logger:    logger,
		renderer:  renderer,
	}
}

// WithRenderer replaces the renderer used for event streams.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.renderer = r
	return a
}

// ApplyOptions configures Apply.
type ApplyOptions struct {
	// Force re-downloads artifacts even when they verify in place.
	Force bool
}

// Apply installs the active profile and rewrites its lockfile.
func (a *App) Apply(ctx context.Context, opts ApplyOptions) (*installer.Result, error) {
	ref, err := a.cfg.Active()
	if err != nil {
		return nil, err
	}

	var res *installer.Result
	err = a.locked(ref.Path, func() error {
		profile, err := a.store.LoadProfile(ref.Path)
		if err != nil {
			return err
		}
		lock, err := a.store.LoadLockFile(ref.Path)
		if err != nil {
			return zerr.Wrap(err, "failed to load lockfile")
		}

		req := installer.Request{
			Dir:     ref.Path,
			Profile: profile,
			Lock:    lock,
			Options: installer.Options{
				CacheDir:    a.cfg.CacheDir,
				NoCache:     a.cfg.NoCache,
				Parallelism: a.cfg.Parallelism,
				Force:       opts.Force,
			},
		}
		return a.render(ctx, func(sink ports.EventSink) error {
			var applyErr error
			res, applyErr = a.installer.Apply(ctx, req, sink)
			return applyErr
		})
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "apply failed"), "profile", ref.Name)
	}

	a.logger.Info(fmt.Sprintf("%d downloaded, %d deleted, %d failed", res.Downloaded, res.Deleted, res.Failed))
	return res, nil
}

// Update stages newer versions of unpinned mods. Run Apply to install them.
func (a *App) Update(ctx context.Context) ([]updater.Change, error) {
	ref, err := a.cfg.Active()
	if err != nil {
		return nil, err
	}

	var changes []updater.Change
	err = a.locked(ref.Path, func() error {
		profile, err := a.store.LoadProfile(ref.Path)
		if err != nil {
			return err
		}
		lock, err := a.store.LoadLockFile(ref.Path)
		if err != nil {
			return err
		}
		if lock == nil {
			a.logger.Warn("profile has not been applied yet, nothing to update")
			return nil
		}

		changes, err = a.updater.Update(ctx, profile, lock)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return a.store.SaveLockFile(ref.Path, lock)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "update failed"), "profile", ref.Name)
	}
	return changes, nil
}

// Revert discards staged updates, restoring the previously installed versions.
func (a *App) Revert() ([]updater.Change, error) {
	ref, err := a.cfg.Active()
	if err != nil {
		return nil, err
	}

	var changes []updater.Change
	err = a.locked(ref.Path, func() error {
		lock, err := a.store.LoadLockFile(ref.Path)
		if err != nil || lock == nil {
			return err
		}
		changes = updater.Revert(lock)
		if len(changes) == 0 {
			return nil
		}
		return a.store.SaveLockFile(ref.Path, lock)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "revert failed"), "profile", ref.Name)
	}
	return changes, nil
}

// Add declares a mod in the active profile, optionally pinned to version.
func (a *App) Add(ctx context.Context, rawID, rawVersion string) (domain.Mod, error) {
	id, err := domain.ParseProjectID(rawID)
	if err != nil {
		return domain.Mod{}, err
	}
	var version domain.VersionID
	if rawVersion != "" {
		if version, err = domain.ParseVersionID(id.Service(), rawVersion); err != nil {
			return domain.Mod{}, err
		}
	}

	project, err := a.client.GetMod(ctx, id)
	if err != nil {
		return domain.Mod{}, zerr.With(zerr.Wrap(err, "failed to look up project"), "project", rawID)
	}

	mod := domain.Mod{
		Project:     project.ID,
		Version:     version,
		Slug:        project.Slug,
		Name:        project.Name,
		ProjectType: project.Type,
	}
	err = a.editProfile(func(p *domain.ProfileData) error {
		return p.AddMod(mod)
	})
	return mod, err
}

// Remove drops a mod from the active profile.
func (a *App) Remove(rawID string) (domain.Mod, error) {
	id, err := domain.ParseProjectID(rawID)
	if err != nil {
		return domain.Mod{}, err
	}
	var removed domain.Mod
	err = a.editProfile(func(p *domain.ProfileData) error {
		var removeErr error
		removed, removeErr = p.RemoveMod(id)
		return removeErr
	})
	return removed, err
}

// Pin fixes a declared mod at rawVersion; an empty rawVersion unpins it.
func (a *App) Pin(rawID, rawVersion string) error {
	id, err := domain.ParseProjectID(rawID)
	if err != nil {
		return err
	}
	var version domain.VersionID
	if rawVersion != "" {
		if version, err = domain.ParseVersionID(id.Service(), rawVersion); err != nil {
			return err
		}
	}
	return a.editProfile(func(p *domain.ProfileData) error {
		return p.Pin(id, version)
	})
}

// Exclude marks a project for removal even when the modpack supplies it.
func (a *App) Exclude(rawID string, exclude bool) error {
	id, err := domain.ParseProjectID(rawID)
	if err != nil {
		return err
	}
	return a.editProfile(func(p *domain.ProfileData) error {
		p.SetExcluded(id, exclude)
		return nil
	})
}

// Listing is the declared and installed state of the active profile.
type Listing struct {
	Profile domain.ProfileRef
	Data    *domain.ProfileData
	// Lock is nil when the profile has never been applied.
	Lock *domain.LockFile
}

// List reads the active profile and its lockfile.
func (a *App) List() (*Listing, error) {
	ref, err := a.cfg.Active()
	if err != nil {
		return nil, err
	}
	data, err := a.store.LoadProfile(ref.Path)
	if err != nil {
		return nil, err
	}
	lock, err := a.store.LoadLockFile(ref.Path)
	if err != nil {
		return nil, err
	}
	return &Listing{Profile: ref, Data: data, Lock: lock}, nil
}

// SetModpack makes the profile follow a modpack, or clears it when rawID is empty.
func (a *App) SetModpack(ctx context.Context, rawID string, overrides bool) (*domain.Modpack, error) {
	if rawID == "" {
		return nil, a.editProfile(func(p *domain.ProfileData) error {
			p.Modpack = nil
			return nil
		})
	}

	id, err := domain.ParseProjectID(rawID)
	if err != nil {
		return nil, err
	}
	project, err := a.client.GetModpack(ctx, id)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to look up modpack"), "project", rawID)
	}

	pack := &domain.Modpack{
		Mod: domain.Mod{
			Project:     project.ID,
			Slug:        project.Slug,
			Name:        project.Name,
			ProjectType: domain.ProjectTypeModpack,
		},
		InstallOverrides: overrides,
	}
	err = a.editProfile(func(p *domain.ProfileData) error {
		p.Modpack = pack
		return nil
	})
	return pack, err
}

// Scan identifies jar files already present in the profile's mods directory
// and declares the matched projects. Unknown files are left alone.
func (a *App) Scan(ctx context.Context) ([]domain.Mod, error) {
	ref, err := a.cfg.Active()
	if err != nil {
		return nil, err
	}

	var paths []string
	for path := range a.walker.WalkFiles(filepath.Join(ref.Path, domain.ProjectTypeMod.InstallDir()), []string{".jar"}) {
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, nil
	}

	matches, err := a.client.Lookup(ctx, paths)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to identify files")
	}

	details := a.describe(ctx, matches)

	var added []domain.Mod
	err = a.editProfile(func(p *domain.ProfileData) error {
		for _, path := range paths {
			v, ok := matches[path]
			if !ok {
				a.logger.Warn("unrecognised file " + path)
				continue
			}
			mod := domain.Mod{Project: v.Project, ProjectType: domain.ProjectTypeMod}
			if project, ok := details[v.Project]; ok {
				mod.Slug, mod.Name = project.Slug, project.Name
			}
			if err := p.AddMod(mod); err != nil {
				if errors.Is(err, domain.ErrAlreadyAdded) {
					continue
				}
				return err
			}
			added = append(added, mod)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// describe fetches display names for matched projects. Failures only cost the names.
func (a *App) describe(ctx context.Context, matches map[string]domain.Version) map[domain.ProjectID]domain.Project {
	if len(matches) == 0 {
		return nil
	}
	ids := make([]domain.ProjectID, 0, len(matches))
	for _, v := range matches {
		ids = append(ids, v.Project)
	}
	projects, err := a.client.GetMods(ctx, ids)
	if err != nil {
		a.logger.Warn("failed to fetch project details: " + err.Error())
		return nil
	}
	out := make(map[domain.ProjectID]domain.Project, len(projects))
	for _, p := range projects {
		out[p.ID] = p
	}
	return out
}

// CreateProfileOptions describes a new profile.
type CreateProfileOptions struct {
	Name        string
	Path        string
	GameVersion string
	Loader      domain.Loader
}

// CreateProfile registers a profile directory and makes it active. An existing
// profile.json in the directory is kept.
func (a *App) CreateProfile(ctx context.Context, opts CreateProfileOptions) (domain.ProfileRef, error) {
	if opts.GameVersion == "" {
		versions, err := a.client.GetGameVersions(ctx)
		if err != nil {
			return domain.ProfileRef{}, zerr.Wrap(err, "failed to list game versions")
		}
		if len(versions) > 0 {
			opts.GameVersion = versions[0]
		}
	}

	ref := domain.ProfileRef{Name: opts.Name, Path: opts.Path}
	if err := a.cfg.AddProfile(ref); err != nil {
		return domain.ProfileRef{}, err
	}

	if err := os.MkdirAll(ref.Path, domain.DirPerm); err != nil {
		return domain.ProfileRef{}, zerr.With(domain.Wrap(domain.ErrProfileWriteFailed, err), "path", ref.Path)
	}
	if _, err := os.Stat(filepath.Join(ref.Path, domain.ProfileFileName)); errors.Is(err, os.ErrNotExist) {
		data := &domain.ProfileData{GameVersion: opts.GameVersion, Loader: opts.Loader, Mods: []domain.Mod{}}
		if err := a.store.SaveProfile(ref.Path, data); err != nil {
			return domain.ProfileRef{}, err
		}
	}

	if err := a.loader.Save(a.cfg); err != nil {
		return domain.ProfileRef{}, err
	}
	return ref, nil
}

// Profiles returns the registered profiles and the index of the active one.
func (a *App) Profiles() ([]domain.ProfileRef, int) {
	return a.cfg.Profiles, a.cfg.ActiveProfile
}

// SwitchProfile makes the named profile active.
func (a *App) SwitchProfile(name string) error {
	if err := a.cfg.Select(name); err != nil {
		return err
	}
	return a.loader.Save(a.cfg)
}

func (a *App) editProfile(edit func(p *domain.ProfileData) error) error {
	ref, err := a.cfg.Active()
	if err != nil {
		return err
	}
	profile, err := a.store.LoadProfile(ref.Path)
	if err != nil {
		return err
	}
	if err := edit(profile); err != nil {
		return err
	}
	return a.store.SaveProfile(ref.Path, profile)
}

// locked runs fn while holding the install lock of dir.
func (a *App) locked(dir string, fn func() error) (err error) {
	release, err := a.store.Lock(dir)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, release())
	}()
	return fn()
}

// render runs fn with an event sink drained by the renderer. Rendering
// failures are logged and never fail the operation.
func (a *App) render(ctx context.Context, fn func(sink ports.EventSink) error) error {
	events := progress.NewChannel()
	done := make(chan error, 1)
	go func() {
		done <- a.renderer.Render(ctx, events.Events())
	}()

	err := fn(events)
	events.Close()
	if renderErr := <-done; renderErr != nil {
		a.logger.Warn("output renderer stopped: " + renderErr.Error())
	}
	return err
}
