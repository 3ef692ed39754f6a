package provider

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultCurseForgeURL is the CurseForge core API root.
const DefaultCurseForgeURL = "https://api.curseforge.com"

const (
	cfMinecraftGameID = 432
	cfHashSHA1        = 1

	cfClassResourcePack = 12
	cfClassModpack      = 4471
	cfClassShader       = 6552
	cfClassDataPack     = 6945
)

var _ ports.ProviderClient = (*CurseForge)(nil)

// CurseForge is a ports.ProviderClient backed by the CurseForge core API.
type CurseForge struct {
	rest *rest
}

type (
	cfEnvelope[T any] struct {
		Data T `json:"data"`
	}

	cfMod struct {
		ID      int32  `json:"id"`
		Name    string `json:"name"`
		Slug    string `json:"slug"`
		Summary string `json:"summary"`
		ClassID int    `json:"classId"`
		Links   struct {
			WebsiteURL string `json:"websiteUrl"`
			SourceURL  string `json:"sourceUrl"`
		} `json:"links"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
		DownloadCount float64 `json:"downloadCount"`
	}

	cfFile struct {
		ID           int32     `json:"id"`
		ModID        int32     `json:"modId"`
		DisplayName  string    `json:"displayName"`
		FileName     string    `json:"fileName"`
		FileDate     time.Time `json:"fileDate"`
		FileLength   int64     `json:"fileLength"`
		DownloadURL  *string   `json:"downloadUrl"`
		GameVersions []string  `json:"gameVersions"`
		Hashes       []struct {
			Value string `json:"value"`
			Algo  int    `json:"algo"`
		} `json:"hashes"`
		Dependencies []struct {
			ModID        int32 `json:"modId"`
			RelationType int   `json:"relationType"`
		} `json:"dependencies"`
		FileFingerprint uint32 `json:"fileFingerprint"`
	}

	cfFingerprintResult struct {
		ExactMatches []struct {
			ID   int32  `json:"id"`
			File cfFile `json:"file"`
		} `json:"exactMatches"`
	}

	cfGameVersion struct {
		VersionString string `json:"versionString"`
	}
)

// NewCurseForge creates a CurseForge client. The API rejects anonymous requests,
// so callers should pass WithToken.
func NewCurseForge(opts ...Option) *CurseForge {
	o := buildOptions(DefaultCurseForgeURL, opts)
	r := newRest(domain.ServiceCurseForge, o)
	if o.token != "" {
		r.client.SetHeader("x-api-key", o.token)
	}
	return &CurseForge{rest: r}
}

// GetMod fetches a non-modpack project.
func (c *CurseForge) GetMod(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	p, err := c.project(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if p.Type == domain.ProjectTypeModpack {
		return domain.Project{}, wrongType(p, "mod")
	}
	return p, nil
}

// GetModpack fetches a modpack project.
func (c *CurseForge) GetModpack(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	p, err := c.project(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if p.Type != domain.ProjectTypeModpack {
		return domain.Project{}, wrongType(p, "modpack")
	}
	return p, nil
}

func (c *CurseForge) project(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	cid, err := domain.AsCurseForge(id)
	if err != nil {
		return domain.Project{}, err
	}
	var env cfEnvelope[cfMod]
	if err := c.rest.get(ctx, "/v1/mods/"+cid.String(), nil, &env); err != nil {
		return domain.Project{}, zerr.With(err, "project", id.String())
	}
	return env.Data.toDomain(), nil
}

// GetMods fetches every CurseForge project in ids; ids of other services are skipped.
func (c *CurseForge) GetMods(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error) {
	var keys []int32
	for _, id := range ids {
		if cid, ok := id.(domain.CurseForgeProject); ok {
			keys = append(keys, int32(cid))
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var env cfEnvelope[[]cfMod]
	if err := c.rest.post(ctx, "/v1/mods", map[string]any{"modIds": keys}, &env); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(env.Data))
	for _, m := range env.Data {
		projects = append(projects, m.toDomain())
	}
	return projects, nil
}

// GetProjectVersions lists the project's files, newest first.
func (c *CurseForge) GetProjectVersions(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) ([]domain.Version, error) {
	cid, err := domain.AsCurseForge(id)
	if err != nil {
		return nil, err
	}

	query := map[string]string{}
	if gameVersion != "" {
		query["gameVersion"] = gameVersion
	}
	// Quilt also runs Fabric files, so only filter server-side for exact loaders.
	if t := cfLoaderType(loader); t != 0 {
		query["modLoaderType"] = strconv.Itoa(t)
	}

	var env cfEnvelope[[]cfFile]
	if err := c.rest.get(ctx, "/v1/mods/"+cid.String()+"/files", query, &env); err != nil {
		return nil, zerr.With(err, "project", id.String())
	}
	versions, err := convertFiles(env.Data)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(versions, func(a, b domain.Version) int {
		return b.Published.Compare(a.Published)
	})
	return versions, nil
}

// GetVersions fetches the CurseForge files named in refs.
func (c *CurseForge) GetVersions(ctx context.Context, refs []domain.VersionRef) ([]domain.Version, error) {
	var keys []int32
	for _, ref := range refs {
		if fid, ok := ref.Version.(domain.CurseForgeFile); ok {
			keys = append(keys, int32(fid))
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var env cfEnvelope[[]cfFile]
	if err := c.rest.post(ctx, "/v1/mods/files", map[string]any{"fileIds": keys}, &env); err != nil {
		return nil, err
	}
	return convertFiles(env.Data)
}

// GetLatest returns the newest file compatible with gameVersion and loader.
func (c *CurseForge) GetLatest(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) (domain.Version, error) {
	versions, err := c.GetProjectVersions(ctx, id, gameVersion, loader)
	if err != nil {
		return domain.Version{}, err
	}
	return latestCompatible(id, versions, gameVersion, loader)
}

// GetUpdates looks up the newest file of every locked CurseForge mod and
// returns the ones that differ from what is locked.
func (c *CurseForge) GetUpdates(ctx context.Context, gameVersion string, loader domain.Loader, locked []domain.LockedMod) ([]domain.Version, error) {
	var targets []domain.LockedMod
	for _, l := range locked {
		if l.Project.Service() == domain.ServiceCurseForge {
			targets = append(targets, l)
		}
	}
	return latestPerLocked(ctx, targets, func(ctx context.Context, id domain.ProjectID) (domain.Version, error) {
		return c.GetLatest(ctx, id, gameVersion, loader)
	})
}

// GetGameVersions lists Minecraft versions known to CurseForge.
func (c *CurseForge) GetGameVersions(ctx context.Context) ([]string, error) {
	var env cfEnvelope[[]cfGameVersion]
	if err := c.rest.get(ctx, "/v1/minecraft/version", nil, &env); err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(env.Data))
	for _, v := range env.Data {
		versions = append(versions, v.VersionString)
	}
	return versions, nil
}

// Lookup identifies local files by their CurseForge fingerprint.
func (c *CurseForge) Lookup(ctx context.Context, paths []string) (map[string]domain.Version, error) {
	byPrint := make(map[uint32][]string, len(paths))
	prints := make([]uint32, 0, len(paths))
	for _, p := range paths {
		fp, err := fs.Fingerprint(p)
		if err != nil {
			return nil, err
		}
		if _, seen := byPrint[fp]; !seen {
			prints = append(prints, fp)
		}
		byPrint[fp] = append(byPrint[fp], p)
	}
	if len(prints) == 0 {
		return map[string]domain.Version{}, nil
	}

	var env cfEnvelope[cfFingerprintResult]
	path := "/v1/fingerprints/" + strconv.Itoa(cfMinecraftGameID)
	if err := c.rest.post(ctx, path, map[string]any{"fingerprints": prints}, &env); err != nil {
		return nil, err
	}

	result := make(map[string]domain.Version)
	for _, match := range env.Data.ExactMatches {
		v, err := match.File.toDomain()
		if err != nil {
			return nil, err
		}
		for _, p := range byPrint[match.File.FileFingerprint] {
			result[p] = v
		}
	}
	return result, nil
}

// LookupHashes is unsupported: CurseForge only indexes fingerprints.
func (c *CurseForge) LookupHashes(_ context.Context, _ []string) (map[string]domain.Version, error) {
	return nil, zerr.With(domain.Wrap(domain.ErrUnsupported, nil), "service", domain.ServiceCurseForge.String())
}

func (m cfMod) toDomain() domain.Project {
	p := domain.Project{
		ID:          domain.CurseForgeProject(m.ID),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Summary,
		Type:        cfProjectType(m.ClassID),
		Website:     m.Links.WebsiteURL,
		Source:      m.Links.SourceURL,
		Downloads:   int64(m.DownloadCount),
	}
	for _, a := range m.Authors {
		p.Authors = append(p.Authors, a.Name)
	}
	for _, cat := range m.Categories {
		p.Categories = append(p.Categories, cat.Name)
	}
	return p
}

func (f cfFile) toDomain() (domain.Version, error) {
	name, err := domain.NewScopedPath(f.FileName)
	if err != nil {
		return domain.Version{}, zerr.With(err, "file", f.ID)
	}

	v := domain.Version{
		ID:        domain.CurseForgeFile(f.ID),
		Project:   domain.CurseForgeProject(f.ModID),
		Title:     f.DisplayName,
		Filename:  name,
		Length:    f.FileLength,
		Published: f.FileDate,
	}
	// A null download URL means the author disabled third-party distribution.
	if f.DownloadURL != nil {
		v.URL = *f.DownloadURL
	}
	for _, h := range f.Hashes {
		if h.Algo == cfHashSHA1 {
			v.SHA1 = strings.ToLower(h.Value)
		}
	}
	for _, gv := range f.GameVersions {
		if l := domain.ParseLoader(gv); l != domain.LoaderUnknown {
			v.Loaders = append(v.Loaders, l)
			continue
		}
		if gv != "" && gv[0] >= '0' && gv[0] <= '9' {
			v.GameVersions = append(v.GameVersions, gv)
		}
	}
	for _, d := range f.Dependencies {
		v.Dependencies = append(v.Dependencies, domain.Dependency{
			Project: domain.CurseForgeProject(d.ModID),
			Kind:    cfRelation(d.RelationType),
		})
	}
	return v, nil
}

func convertFiles(raw []cfFile) ([]domain.Version, error) {
	versions := make([]domain.Version, 0, len(raw))
	for _, f := range raw {
		v, err := f.toDomain()
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func cfProjectType(classID int) domain.ProjectType {
	switch classID {
	case cfClassModpack:
		return domain.ProjectTypeModpack
	case cfClassResourcePack:
		return domain.ProjectTypeResourcePack
	case cfClassShader:
		return domain.ProjectTypeShader
	case cfClassDataPack:
		return domain.ProjectTypeDataPack
	default:
		return domain.ProjectTypeMod
	}
}

func cfRelation(t int) domain.DependencyKind {
	switch t {
	case 1:
		return domain.DependencyEmbedded
	case 3:
		return domain.DependencyRequired
	case 5:
		return domain.DependencyIncompatible
	default:
		return domain.DependencyOptional
	}
}

func cfLoaderType(l domain.Loader) int {
	switch l {
	case domain.LoaderForge:
		return 1
	case domain.LoaderFabric:
		return 4
	case domain.LoaderNeoForge:
		return 6
	default:
		return 0
	}
}
