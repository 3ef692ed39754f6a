package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Loader is a mod loader.
type Loader int

const (
	// LoaderUnknown means no loader was declared.
	LoaderUnknown Loader = iota
	// LoaderFabric is the Fabric loader.
	LoaderFabric
	// LoaderQuilt is the Quilt loader.
	LoaderQuilt
	// LoaderForge is the Forge loader.
	LoaderForge
	// LoaderNeoForge is the NeoForge loader.
	LoaderNeoForge
)

// ParseLoader maps a loader name to a Loader, returning LoaderUnknown when unrecognised.
func ParseLoader(s string) Loader {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fabric", "fabric-loader":
		return LoaderFabric
	case "quilt", "quilt-loader":
		return LoaderQuilt
	case "forge":
		return LoaderForge
	case "neoforge":
		return LoaderNeoForge
	default:
		return LoaderUnknown
	}
}

// String returns the lowercase loader name used by providers.
func (l Loader) String() string {
	switch l {
	case LoaderFabric:
		return "fabric"
	case LoaderQuilt:
		return "quilt"
	case LoaderForge:
		return "forge"
	case LoaderNeoForge:
		return "neoforge"
	default:
		return ""
	}
}

// MarshalJSON encodes the loader name; unknown loaders encode as null.
func (l Loader) MarshalJSON() ([]byte, error) {
	if l == LoaderUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a loader name.
func (l *Loader) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*l = LoaderUnknown
		return nil
	}
	*l = ParseLoader(*s)
	return nil
}

// ProjectType tags what kind of content a project installs.
type ProjectType string

const (
	// ProjectTypeMod installs into mods/.
	ProjectTypeMod ProjectType = "mod"
	// ProjectTypeResourcePack installs into resourcepacks/.
	ProjectTypeResourcePack ProjectType = "resourcepack"
	// ProjectTypeDataPack installs into datapacks/.
	ProjectTypeDataPack ProjectType = "datapack"
	// ProjectTypeShader installs into shaderpacks/.
	ProjectTypeShader ProjectType = "shader"
	// ProjectTypeModpack is a bundle of other projects.
	ProjectTypeModpack ProjectType = "modpack"
)

// InstallDir returns the directory, relative to the profile, that the type installs into.
func (t ProjectType) InstallDir() string {
	switch t {
	case ProjectTypeResourcePack:
		return "resourcepacks"
	case ProjectTypeDataPack:
		return "datapacks"
	case ProjectTypeShader:
		return "shaderpacks"
	default:
		return "mods"
	}
}

// Project is the provider-normalised description of a catalog entry.
type Project struct {
	ID          ProjectID
	Name        string
	Slug        string
	Description string
	Type        ProjectType
	Website     string
	Source      string
	Authors     []string
	Categories  []string
	License     string
	Downloads   int64
}

// DependencyKind classifies a declared dependency.
type DependencyKind string

const (
	// DependencyRequired must be present for the version to work.
	DependencyRequired DependencyKind = "required"
	// DependencyOptional may be installed alongside.
	DependencyOptional DependencyKind = "optional"
	// DependencyIncompatible must not be installed alongside.
	DependencyIncompatible DependencyKind = "incompatible"
	// DependencyEmbedded ships inside the version's file.
	DependencyEmbedded DependencyKind = "embedded"
)

// Dependency is an informational link from a version to another project.
// Dependencies are never installed automatically.
type Dependency struct {
	Project ProjectID
	Version VersionID
	Kind    DependencyKind
}

// Version is the provider-normalised description of one installable file.
type Version struct {
	ID           VersionID
	Project      ProjectID
	Title        string
	URL          string
	Filename     ScopedPath
	Length       int64
	Published    time.Time
	SHA1         string
	Dependencies []Dependency
	GameVersions []string
	Loaders      []Loader
}

// Supports reports whether the version is compatible with gameVersion and loader.
// Empty filters always match.
func (v Version) Supports(gameVersion string, loader Loader) bool {
	if gameVersion != "" && len(v.GameVersions) > 0 && !slices.Contains(v.GameVersions, gameVersion) {
		return false
	}
	if loader == LoaderUnknown || len(v.Loaders) == 0 {
		return true
	}
	for _, l := range v.Loaders {
		if l == loader || (loader == LoaderQuilt && l == LoaderFabric) {
			return true
		}
	}
	return false
}
