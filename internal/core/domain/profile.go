package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// Mod is a project the user wants installed.
type Mod struct {
	Project ProjectID
	// Version pins the project; nil means latest compatible.
	Version VersionID
	Slug    string
	Name    string
	// Exclude forces removal even when a modpack supplies the project.
	Exclude     bool
	ProjectType ProjectType
}

// Pinned reports whether the mod names an explicit version.
func (m Mod) Pinned() bool {
	return m.Version != nil
}

// DisplayName returns the best human-readable label for the mod.
func (m Mod) DisplayName() string {
	switch {
	case m.Name != "":
		return m.Name
	case m.Slug != "":
		return m.Slug
	default:
		return m.Project.String()
	}
}

// Modpack is the optional pack a profile is built from.
type Modpack struct {
	Mod
	// InstallOverrides extracts the pack's bundled non-mod files into the profile.
	InstallOverrides bool
}

// ProfileData is the declarative, user-owned state of one profile directory.
type ProfileData struct {
	GameVersion string   `json:"game_version"`
	Loader      Loader   `json:"loader,omitempty"`
	Mods        []Mod    `json:"mods"`
	Modpack     *Modpack `json:"modpack,omitempty"`
}

type profileDataWire ProfileData

// UnmarshalJSON decodes profile data and rejects duplicate project entries in mods.
func (p *ProfileData) UnmarshalJSON(data []byte) error {
	var w profileDataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	seen := make(map[ProjectID]struct{}, len(w.Mods))
	for _, m := range w.Mods {
		if _, dup := seen[m.Project]; dup {
			return zerr.With(Wrap(ErrDuplicateMod, nil), "project", m.Project.String())
		}
		seen[m.Project] = struct{}{}
	}
	*p = ProfileData(w)
	return nil
}

// FindMod returns the index of the mod declaring project, or -1.
func (p *ProfileData) FindMod(project ProjectID) int {
	for i, m := range p.Mods {
		if m.Project == project {
			return i
		}
	}
	return -1
}

// AddMod appends mod, keeping at most one entry per project.
func (p *ProfileData) AddMod(mod Mod) error {
	if mod.Project == nil {
		return Wrap(ErrInvalidIdentifier, nil)
	}
	if mod.Version != nil {
		if err := CheckPair(mod.Project, mod.Version); err != nil {
			return err
		}
	}
	if p.FindMod(mod.Project) >= 0 {
		return zerr.With(Wrap(ErrAlreadyAdded, nil), "project", mod.Project.String())
	}
	if mod.ProjectType == "" {
		mod.ProjectType = ProjectTypeMod
	}
	p.Mods = append(p.Mods, mod)
	return nil
}

// RemoveMod drops the mod declaring project.
func (p *ProfileData) RemoveMod(project ProjectID) (Mod, error) {
	i := p.FindMod(project)
	if i < 0 {
		return Mod{}, zerr.With(Wrap(ErrModNotFound, nil), "project", project.String())
	}
	removed := p.Mods[i]
	p.Mods = append(p.Mods[:i], p.Mods[i+1:]...)
	return removed, nil
}

// Pin sets or clears the version pin of a declared mod.
func (p *ProfileData) Pin(project ProjectID, version VersionID) error {
	i := p.FindMod(project)
	if i < 0 {
		return zerr.With(Wrap(ErrModNotFound, nil), "project", project.String())
	}
	if version != nil {
		if err := CheckPair(project, version); err != nil {
			return err
		}
	}
	p.Mods[i].Version = version
	return nil
}

// SetExcluded toggles the exclude flag, declaring the mod first when needed.
func (p *ProfileData) SetExcluded(project ProjectID, exclude bool) {
	if i := p.FindMod(project); i >= 0 {
		p.Mods[i].Exclude = exclude
		return
	}
	p.Mods = append(p.Mods, Mod{Project: project, Exclude: exclude, ProjectType: ProjectTypeMod})
}
