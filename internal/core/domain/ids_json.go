package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// projectRef is the persisted form of a ProjectID: exactly one field is set,
// keyed by the service name.
type projectRef struct {
	Modrinth   *string    `json:"modrinth,omitempty"`
	CurseForge *int32     `json:"curseforge,omitempty"`
	GitHub     *[2]string `json:"github,omitempty"`
}

func refOf(id ProjectID) projectRef {
	switch p := id.(type) {
	case ModrinthProject:
		s := string(p)
		return projectRef{Modrinth: &s}
	case CurseForgeProject:
		n := int32(p)
		return projectRef{CurseForge: &n}
	case GitHubProject:
		pair := [2]string{p.Owner, p.Repo}
		return projectRef{GitHub: &pair}
	default:
		return projectRef{}
	}
}

func (r projectRef) project() (ProjectID, error) {
	var (
		id  ProjectID
		set int
	)
	if r.Modrinth != nil {
		id = ModrinthProject(*r.Modrinth)
		set++
	}
	if r.CurseForge != nil {
		id = CurseForgeProject(*r.CurseForge)
		set++
	}
	if r.GitHub != nil {
		id = GitHubProject{Owner: r.GitHub[0], Repo: r.GitHub[1]}
		set++
	}
	if set != 1 {
		return nil, zerr.With(Wrap(ErrInvalidIdentifier, nil), "variants", set)
	}
	return id, nil
}

func encodeVersion(v VersionID) (json.RawMessage, error) {
	switch id := v.(type) {
	case nil:
		return nil, nil
	case ModrinthVersion:
		return json.Marshal(string(id))
	case CurseForgeFile:
		return json.Marshal(int32(id))
	case GitHubAsset:
		return json.Marshal(int64(id))
	default:
		return nil, Wrap(ErrInvalidIdentifier, nil)
	}
}

func decodeVersion(service Service, raw json.RawMessage) (VersionID, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var err error
	switch service {
	case ServiceModrinth:
		var s string
		if err = json.Unmarshal(raw, &s); err == nil {
			return ModrinthVersion(s), nil
		}
	case ServiceCurseForge:
		var n int32
		if err = json.Unmarshal(raw, &n); err == nil {
			return CurseForgeFile(n), nil
		}
	case ServiceGitHub:
		var n int64
		if err = json.Unmarshal(raw, &n); err == nil {
			return GitHubAsset(n), nil
		}
	}
	return nil, zerr.With(Wrap(ErrInvalidIdentifier, err), "version", string(raw))
}

type modWire struct {
	projectRef
	Version     json.RawMessage `json:"version,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	Name        string          `json:"name"`
	Exclude     bool            `json:"exclude,omitempty"`
	ProjectType ProjectType     `json:"project_type"`
}

func (m Mod) wire() (modWire, error) {
	v, err := encodeVersion(m.Version)
	if err != nil {
		return modWire{}, err
	}
	return modWire{
		projectRef:  refOf(m.Project),
		Version:     v,
		Slug:        m.Slug,
		Name:        m.Name,
		Exclude:     m.Exclude,
		ProjectType: m.ProjectType,
	}, nil
}

func (w modWire) mod() (Mod, error) {
	project, err := w.project()
	if err != nil {
		return Mod{}, err
	}
	version, err := decodeVersion(project.Service(), w.Version)
	if err != nil {
		return Mod{}, err
	}
	return Mod{
		Project:     project,
		Version:     version,
		Slug:        w.Slug,
		Name:        w.Name,
		Exclude:     w.Exclude,
		ProjectType: w.ProjectType,
	}, nil
}

// MarshalJSON encodes the mod with its identifier flattened under the service key.
func (m Mod) MarshalJSON() ([]byte, error) {
	w, err := m.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a mod and rejects pins from a different service.
func (m *Mod) UnmarshalJSON(data []byte) error {
	var w modWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	mod, err := w.mod()
	if err != nil {
		return err
	}
	*m = mod
	return nil
}

type modpackWire struct {
	modWire
	InstallOverrides bool `json:"install_overrides"`
}

// MarshalJSON encodes the modpack like a mod plus its overrides flag.
func (p Modpack) MarshalJSON() ([]byte, error) {
	w, err := p.Mod.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(modpackWire{modWire: w, InstallOverrides: p.InstallOverrides})
}

// UnmarshalJSON decodes a modpack entry.
func (p *Modpack) UnmarshalJSON(data []byte) error {
	var w modpackWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	mod, err := w.mod()
	if err != nil {
		return err
	}
	*p = Modpack{Mod: mod, InstallOverrides: w.InstallOverrides}
	return nil
}

type lockedModWire struct {
	projectRef
	Version json.RawMessage `json:"version"`
	File    ScopedPath      `json:"file"`
	SHA1    string          `json:"sha1"`
}

func (l LockedMod) wire() (lockedModWire, error) {
	if err := CheckPair(l.Project, l.Version); err != nil {
		return lockedModWire{}, err
	}
	v, err := encodeVersion(l.Version)
	if err != nil {
		return lockedModWire{}, err
	}
	return lockedModWire{
		projectRef: refOf(l.Project),
		Version:    v,
		File:       l.File,
		SHA1:       l.SHA1,
	}, nil
}

func (w lockedModWire) locked() (LockedMod, error) {
	project, err := w.project()
	if err != nil {
		return LockedMod{}, err
	}
	version, err := decodeVersion(project.Service(), w.Version)
	if err != nil {
		return LockedMod{}, err
	}
	if version == nil {
		return LockedMod{}, zerr.With(Wrap(ErrInvalidIdentifier, nil), "project", project.String())
	}
	return LockedMod{
		Project: project,
		Version: version,
		File:    w.File,
		SHA1:    w.SHA1,
	}, nil
}

// MarshalJSON encodes the locked mod with its identifier flattened under the service key.
func (l LockedMod) MarshalJSON() ([]byte, error) {
	w, err := l.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a locked mod; the version is required.
func (l *LockedMod) UnmarshalJSON(data []byte) error {
	var w lockedModWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	locked, err := w.locked()
	if err != nil {
		return err
	}
	*l = locked
	return nil
}

type lockedPackWire struct {
	lockedModWire
	Overrides map[ScopedPath]string `json:"overrides"`
}

// MarshalJSON encodes the locked pack like a locked mod plus its override hashes.
func (p LockedPack) MarshalJSON() ([]byte, error) {
	w, err := p.LockedMod.wire()
	if err != nil {
		return nil, err
	}
	overrides := p.Overrides
	if overrides == nil {
		overrides = map[ScopedPath]string{}
	}
	return json.Marshal(lockedPackWire{lockedModWire: w, Overrides: overrides})
}

// UnmarshalJSON decodes a locked pack.
func (p *LockedPack) UnmarshalJSON(data []byte) error {
	var w lockedPackWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	locked, err := w.locked()
	if err != nil {
		return err
	}
	*p = LockedPack{LockedMod: locked, Overrides: w.Overrides}
	return nil
}
