package domain

// PackFormat names the manifest flavour of a modpack archive.
type PackFormat string

const (
	// PackFormatModrinth is a hash-addressed modrinth.index.json archive.
	PackFormatModrinth PackFormat = "mrpack"
	// PackFormatCurseForge is a manifest.json archive listing (projectID, fileID) pairs.
	PackFormatCurseForge PackFormat = "curseforge"
)

// PackEntry is one file bundled by reference in a modpack.
// Project and Version are set when the manifest declares them; hash-addressed
// entries may only carry SHA1 and download URLs.
type PackEntry struct {
	Path    ScopedPath
	SHA1    string
	URLs    []string
	Size    int64
	Project ProjectID
	Version VersionID
}

// Declared reports whether the manifest names the entry's project and version.
func (e PackEntry) Declared() bool {
	return e.Project != nil && e.Version != nil
}

// PackManifest is the parsed index of an opened modpack archive.
type PackManifest struct {
	Format      PackFormat
	Name        string
	VersionName string
	Game        string
	GameVersion string
	Loader      Loader
	Entries     []PackEntry
}

// VersionRef names a version together with its owning project.
type VersionRef struct {
	Project ProjectID
	Version VersionID
}
