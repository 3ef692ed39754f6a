package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// PackSlot is the slot index reserved for the modpack when staging updates.
const PackSlot = -1

// LockedMod is one installed project at an exact version.
type LockedMod struct {
	Project ProjectID
	Version VersionID
	File    ScopedPath
	SHA1    string
}

// LockedPack is the installed modpack and the override files it extracted.
type LockedPack struct {
	LockedMod
	// Overrides maps extracted override paths to the hash written at extraction time.
	Overrides map[ScopedPath]string
}

// LockFile is the observed installed state of a profile directory.
// It is only mutated by the installer and the update workflow.
type LockFile struct {
	GameVersion string                `json:"game_version"`
	Loader      Loader                `json:"loader,omitempty"`
	Pack        *LockedPack           `json:"pack,omitempty"`
	Mods        []LockedMod           `json:"mods"`
	Other       map[ScopedPath]string `json:"other"`
	// Outdated holds previously locked entries replaced by a staged update.
	Outdated []LockedMod `json:"outdated"`
}

// NewLockFile returns an empty lockfile for gameVersion and loader.
func NewLockFile(gameVersion string, loader Loader) *LockFile {
	return &LockFile{
		GameVersion: gameVersion,
		Loader:      loader,
		Mods:        []LockedMod{},
		Other:       map[ScopedPath]string{},
		Outdated:    []LockedMod{},
	}
}

// IsEmpty reports whether nothing has been installed yet.
func (l *LockFile) IsEmpty() bool {
	return l.Pack == nil && len(l.Mods) == 0 && len(l.Other) == 0
}

// NeedsReset reports whether the profile targets a different game version or loader
// than the lockfile was produced for. An empty lockfile never needs a reset.
func (l *LockFile) NeedsReset(profile *ProfileData) bool {
	if l.IsEmpty() {
		return false
	}
	return l.GameVersion != profile.GameVersion || l.Loader != profile.Loader
}

// FindMod returns the index of the locked entry for project, or -1.
func (l *LockFile) FindMod(project ProjectID) int {
	for i, m := range l.Mods {
		if m.Project == project {
			return i
		}
	}
	return -1
}

// Slot returns the active slot an entry for project occupies: PackSlot for the
// modpack, an index into Mods, or len(Mods) when the project is not locked.
func (l *LockFile) Slot(project ProjectID) int {
	if l.Pack != nil && l.Pack.Project == project {
		return PackSlot
	}
	if i := l.FindMod(project); i >= 0 {
		return i
	}
	return len(l.Mods)
}

// IsStaged reports whether project has a previous entry waiting in Outdated.
func (l *LockFile) IsStaged(project ProjectID) bool {
	for _, m := range l.Outdated {
		if m.Project == project {
			return true
		}
	}
	return false
}

type lockFileWire struct {
	GameVersion string                `json:"game_version"`
	Loader      Loader                `json:"loader,omitempty"`
	Pack        *LockedPack           `json:"pack,omitempty"`
	Mods        []LockedMod           `json:"mods"`
	Other       map[ScopedPath]string `json:"other"`
	Outdated    []LockedMod           `json:"outdated"`
}

// UnmarshalJSON decodes a lockfile and rejects duplicate project entries in mods.
func (l *LockFile) UnmarshalJSON(data []byte) error {
	var w lockFileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	seen := make(map[ProjectID]struct{}, len(w.Mods))
	for _, m := range w.Mods {
		if _, dup := seen[m.Project]; dup {
			return zerr.With(Wrap(ErrDuplicateLockedMod, nil), "project", m.Project.String())
		}
		seen[m.Project] = struct{}{}
	}
	if w.Mods == nil {
		w.Mods = []LockedMod{}
	}
	if w.Other == nil {
		w.Other = map[ScopedPath]string{}
	}
	if w.Outdated == nil {
		w.Outdated = []LockedMod{}
	}
	*l = LockFile(w)
	return nil
}
