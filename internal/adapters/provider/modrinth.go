package provider

import (
	"cmp"
	"context"
	"net/url"
	"slices"
	"time"

	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultModrinthURL is the Modrinth v2 API root.
const DefaultModrinthURL = "https://api.modrinth.com/v2"

const hashAlgorithmSHA1 = "sha1"

var _ ports.ProviderClient = (*Modrinth)(nil)

// Modrinth is a ports.ProviderClient backed by the Modrinth v2 API.
type Modrinth struct {
	rest   *rest
	hasher ports.Hasher
}

type (
	mrProject struct {
		ID          string   `json:"id"`
		Slug        string   `json:"slug"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ProjectType string   `json:"project_type"`
		Downloads   int64    `json:"downloads"`
		Categories  []string `json:"categories"`
		SourceURL   string   `json:"source_url"`
		License     struct {
			ID string `json:"id"`
		} `json:"license"`
	}

	mrVersion struct {
		ID            string         `json:"id"`
		ProjectID     string         `json:"project_id"`
		Name          string         `json:"name"`
		VersionNumber string         `json:"version_number"`
		DatePublished time.Time      `json:"date_published"`
		GameVersions  []string       `json:"game_versions"`
		Loaders       []string       `json:"loaders"`
		Files         []mrFile       `json:"files"`
		Dependencies  []mrDependency `json:"dependencies"`
	}

	mrFile struct {
		Hashes   map[string]string `json:"hashes"`
		URL      string            `json:"url"`
		Filename string            `json:"filename"`
		Primary  bool              `json:"primary"`
		Size     int64             `json:"size"`
	}

	mrDependency struct {
		VersionID      string `json:"version_id"`
		ProjectID      string `json:"project_id"`
		DependencyType string `json:"dependency_type"`
	}

	mrGameVersion struct {
		Version     string `json:"version"`
		VersionType string `json:"version_type"`
	}

	mrHashQuery struct {
		Hashes       []string `json:"hashes"`
		Algorithm    string   `json:"algorithm"`
		Loaders      []string `json:"loaders,omitempty"`
		GameVersions []string `json:"game_versions,omitempty"`
	}
)

// NewModrinth creates a Modrinth client.
func NewModrinth(opts ...Option) *Modrinth {
	o := buildOptions(DefaultModrinthURL, opts)
	r := newRest(domain.ServiceModrinth, o)
	if o.token != "" {
		r.client.SetHeader("Authorization", o.token)
	}
	return &Modrinth{rest: r, hasher: fs.NewHasher()}
}

// GetMod fetches a non-modpack project.
func (m *Modrinth) GetMod(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	p, err := m.project(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if p.Type == domain.ProjectTypeModpack {
		return domain.Project{}, wrongType(p, "mod")
	}
	return p, nil
}

// GetModpack fetches a modpack project.
func (m *Modrinth) GetModpack(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	p, err := m.project(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if p.Type != domain.ProjectTypeModpack {
		return domain.Project{}, wrongType(p, "modpack")
	}
	return p, nil
}

func (m *Modrinth) project(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	mid, err := domain.AsModrinth(id)
	if err != nil {
		return domain.Project{}, err
	}
	var raw mrProject
	if err := m.rest.get(ctx, "/project/"+url.PathEscape(string(mid)), nil, &raw); err != nil {
		return domain.Project{}, zerr.With(err, "project", id.String())
	}
	return raw.toDomain(), nil
}

// GetMods fetches every Modrinth project in ids; ids of other services are skipped.
func (m *Modrinth) GetMods(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error) {
	var keys []string
	for _, id := range ids {
		if mid, ok := id.(domain.ModrinthProject); ok {
			keys = append(keys, string(mid))
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var raw []mrProject
	if err := m.rest.get(ctx, "/projects", map[string]string{"ids": jsonList(keys)}, &raw); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, p.toDomain())
	}
	return projects, nil
}

// GetProjectVersions lists the project's versions, newest first, filtered
// server-side by game version and loader when given.
func (m *Modrinth) GetProjectVersions(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) ([]domain.Version, error) {
	mid, err := domain.AsModrinth(id)
	if err != nil {
		return nil, err
	}

	query := map[string]string{}
	if gameVersion != "" {
		query["game_versions"] = jsonList([]string{gameVersion})
	}
	if loaders := loaderFilter(loader); len(loaders) > 0 {
		query["loaders"] = jsonList(loaders)
	}

	var raw []mrVersion
	if err := m.rest.get(ctx, "/project/"+url.PathEscape(string(mid))+"/version", query, &raw); err != nil {
		return nil, zerr.With(err, "project", id.String())
	}
	versions, err := convertVersions(raw)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(versions, func(a, b domain.Version) int {
		return b.Published.Compare(a.Published)
	})
	return versions, nil
}

// GetVersions fetches the Modrinth versions named in refs.
func (m *Modrinth) GetVersions(ctx context.Context, refs []domain.VersionRef) ([]domain.Version, error) {
	var keys []string
	for _, ref := range refs {
		if vid, ok := ref.Version.(domain.ModrinthVersion); ok {
			keys = append(keys, string(vid))
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var raw []mrVersion
	if err := m.rest.get(ctx, "/versions", map[string]string{"ids": jsonList(keys)}, &raw); err != nil {
		return nil, err
	}
	return convertVersions(raw)
}

// GetLatest returns the newest version compatible with gameVersion and loader.
func (m *Modrinth) GetLatest(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) (domain.Version, error) {
	versions, err := m.GetProjectVersions(ctx, id, gameVersion, loader)
	if err != nil {
		return domain.Version{}, err
	}
	return latestCompatible(id, versions, gameVersion, loader)
}

// GetUpdates asks for the newest version of each locked Modrinth mod, keyed by
// the locked file hash. Only versions that differ from the locked one are returned.
func (m *Modrinth) GetUpdates(ctx context.Context, gameVersion string, loader domain.Loader, locked []domain.LockedMod) ([]domain.Version, error) {
	current := make(map[string]domain.LockedMod)
	query := mrHashQuery{Algorithm: hashAlgorithmSHA1, Loaders: loaderFilter(loader)}
	if gameVersion != "" {
		query.GameVersions = []string{gameVersion}
	}
	for _, l := range locked {
		if l.Project.Service() != domain.ServiceModrinth || l.SHA1 == "" {
			continue
		}
		current[l.SHA1] = l
		query.Hashes = append(query.Hashes, l.SHA1)
	}
	if len(query.Hashes) == 0 {
		return nil, nil
	}

	var raw map[string]mrVersion
	if err := m.rest.post(ctx, "/version_files/update", query, &raw); err != nil {
		return nil, err
	}

	var updates []domain.Version
	for _, hash := range query.Hashes {
		rv, ok := raw[hash]
		if !ok {
			continue
		}
		v, err := rv.toDomain()
		if err != nil {
			return nil, err
		}
		if v.ID != current[hash].Version {
			// Locked by slug: keep the caller's project key.
			v.Project = current[hash].Project
			updates = append(updates, v)
		}
	}
	return updates, nil
}

// GetGameVersions lists release game versions, newest first.
func (m *Modrinth) GetGameVersions(ctx context.Context) ([]string, error) {
	var raw []mrGameVersion
	if err := m.rest.get(ctx, "/tag/game_version", nil, &raw); err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(raw))
	for _, v := range raw {
		if v.VersionType == "release" {
			versions = append(versions, v.Version)
		}
	}
	return versions, nil
}

// Lookup identifies local files by their SHA-1.
func (m *Modrinth) Lookup(ctx context.Context, paths []string) (map[string]domain.Version, error) {
	byHash := make(map[string][]string, len(paths))
	hashes := make([]string, 0, len(paths))
	for _, p := range paths {
		sum, err := m.hasher.HashFile(p)
		if err != nil {
			return nil, err
		}
		if _, seen := byHash[sum]; !seen {
			hashes = append(hashes, sum)
		}
		byHash[sum] = append(byHash[sum], p)
	}

	found, err := m.LookupHashes(ctx, hashes)
	if err != nil {
		return nil, err
	}

	result := make(map[string]domain.Version, len(found))
	for hash, v := range found {
		for _, p := range byHash[hash] {
			result[p] = v
		}
	}
	return result, nil
}

// LookupHashes resolves SHA-1 hashes to the versions that published them.
func (m *Modrinth) LookupHashes(ctx context.Context, sha1s []string) (map[string]domain.Version, error) {
	if len(sha1s) == 0 {
		return map[string]domain.Version{}, nil
	}
	var raw map[string]mrVersion
	if err := m.rest.post(ctx, "/version_files", mrHashQuery{Hashes: sha1s, Algorithm: hashAlgorithmSHA1}, &raw); err != nil {
		return nil, err
	}
	result := make(map[string]domain.Version, len(raw))
	for hash, rv := range raw {
		v, err := rv.toDomain()
		if err != nil {
			return nil, err
		}
		result[hash] = v
	}
	return result, nil
}

func (p mrProject) toDomain() domain.Project {
	ptype := domain.ProjectType(p.ProjectType)
	if ptype == "" {
		ptype = domain.ProjectTypeMod
	}
	return domain.Project{
		ID:          domain.ModrinthProject(p.ID),
		Name:        p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Type:        ptype,
		Website:     "https://modrinth.com/" + p.ProjectType + "/" + p.Slug,
		Source:      p.SourceURL,
		Categories:  p.Categories,
		License:     p.License.ID,
		Downloads:   p.Downloads,
	}
}

func (v mrVersion) toDomain() (domain.Version, error) {
	if len(v.Files) == 0 {
		return domain.Version{}, zerr.With(domain.Wrap(domain.ErrProviderParse, nil), "version", v.ID)
	}
	file := v.Files[0]
	for _, f := range v.Files {
		if f.Primary {
			file = f
			break
		}
	}

	name, err := domain.NewScopedPath(file.Filename)
	if err != nil {
		return domain.Version{}, zerr.With(err, "version", v.ID)
	}

	out := domain.Version{
		ID:           domain.ModrinthVersion(v.ID),
		Project:      domain.ModrinthProject(v.ProjectID),
		Title:        cmp.Or(v.Name, v.VersionNumber),
		URL:          file.URL,
		Filename:     name,
		Length:       file.Size,
		Published:    v.DatePublished,
		SHA1:         file.Hashes[hashAlgorithmSHA1],
		GameVersions: v.GameVersions,
		Loaders:      parseLoaders(v.Loaders),
	}
	for _, d := range v.Dependencies {
		dep := domain.Dependency{Kind: domain.DependencyKind(d.DependencyType)}
		if d.ProjectID != "" {
			dep.Project = domain.ModrinthProject(d.ProjectID)
		}
		if d.VersionID != "" {
			dep.Version = domain.ModrinthVersion(d.VersionID)
		}
		out.Dependencies = append(out.Dependencies, dep)
	}
	return out, nil
}

func convertVersions(raw []mrVersion) ([]domain.Version, error) {
	versions := make([]domain.Version, 0, len(raw))
	for _, rv := range raw {
		v, err := rv.toDomain()
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}
