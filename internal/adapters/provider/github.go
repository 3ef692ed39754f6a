package provider

import (
	"cmp"
	"context"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// DefaultGitHubURL is the GitHub REST API root.
const DefaultGitHubURL = "https://api.github.com"

const ghReleasesPerPage = "30"

// gameVersionPattern finds Minecraft versions embedded in asset names.
var gameVersionPattern = regexp.MustCompile(`1\.\d+(?:\.\d+)?`)

var _ ports.ProviderClient = (*GitHub)(nil)

// GitHub is a ports.ProviderClient that treats release assets as versions.
type GitHub struct {
	rest *rest
}

type (
	ghRepo struct {
		Name        string   `json:"name"`
		FullName    string   `json:"full_name"`
		Description string   `json:"description"`
		HTMLURL     string   `json:"html_url"`
		Homepage    string   `json:"homepage"`
		Topics      []string `json:"topics"`
		Owner       struct {
			Login string `json:"login"`
		} `json:"owner"`
		License *struct {
			SPDXID string `json:"spdx_id"`
		} `json:"license"`
	}

	ghRelease struct {
		TagName     string    `json:"tag_name"`
		Name        string    `json:"name"`
		Draft       bool      `json:"draft"`
		Prerelease  bool      `json:"prerelease"`
		PublishedAt time.Time `json:"published_at"`
		Assets      []ghAsset `json:"assets"`
	}

	ghAsset struct {
		ID                 int64     `json:"id"`
		Name               string    `json:"name"`
		Size               int64     `json:"size"`
		BrowserDownloadURL string    `json:"browser_download_url"`
		UpdatedAt          time.Time `json:"updated_at"`
		DownloadCount      int64     `json:"download_count"`
	}
)

// NewGitHub creates a GitHub releases client.
func NewGitHub(opts ...Option) *GitHub {
	o := buildOptions(DefaultGitHubURL, opts)
	r := newRest(domain.ServiceGitHub, o)
	r.client.SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28")
	if o.token != "" {
		r.client.SetAuthToken(o.token)
	}
	return &GitHub{rest: r}
}

// GetMod fetches the repository as a mod project.
func (g *GitHub) GetMod(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	gid, err := domain.AsGitHub(id)
	if err != nil {
		return domain.Project{}, err
	}
	var raw ghRepo
	if err := g.rest.get(ctx, repoPath(gid), nil, &raw); err != nil {
		return domain.Project{}, zerr.With(err, "project", id.String())
	}

	p := domain.Project{
		ID:          gid,
		Name:        raw.Name,
		Slug:        raw.FullName,
		Description: raw.Description,
		Type:        domain.ProjectTypeMod,
		Website:     raw.Homepage,
		Source:      raw.HTMLURL,
		Authors:     []string{raw.Owner.Login},
		Categories:  raw.Topics,
	}
	if raw.License != nil {
		p.License = raw.License.SPDXID
	}
	return p, nil
}

// GetModpack is unsupported: repositories carry no modpack metadata.
func (g *GitHub) GetModpack(_ context.Context, id domain.ProjectID) (domain.Project, error) {
	if _, err := domain.AsGitHub(id); err != nil {
		return domain.Project{}, err
	}
	return domain.Project{}, zerr.With(domain.Wrap(domain.ErrUnsupported, nil), "service", domain.ServiceGitHub.String())
}

// GetMods fetches every GitHub repository in ids; ids of other services are skipped.
func (g *GitHub) GetMods(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error) {
	var projects []domain.Project
	for _, id := range ids {
		if _, ok := id.(domain.GitHubProject); !ok {
			continue
		}
		p, err := g.GetMod(ctx, id)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// GetProjectVersions lists the jar assets of stable releases, newest release
// first. Game versions and loaders are inferred from asset names; an asset
// that names neither is assumed to fit everything.
func (g *GitHub) GetProjectVersions(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) ([]domain.Version, error) {
	gid, err := domain.AsGitHub(id)
	if err != nil {
		return nil, err
	}

	var releases []ghRelease
	if err := g.rest.get(ctx, repoPath(gid)+"/releases", map[string]string{"per_page": ghReleasesPerPage}, &releases); err != nil {
		return nil, zerr.With(err, "project", id.String())
	}
	releases = slices.DeleteFunc(releases, func(r ghRelease) bool { return r.Draft || r.Prerelease })
	sortReleases(releases)

	var versions []domain.Version
	for _, r := range releases {
		for _, a := range r.Assets {
			if !isModAsset(a.Name) {
				continue
			}
			v, err := a.toDomain(gid, cmp.Or(r.Name, r.TagName), r.PublishedAt)
			if err != nil {
				return nil, err
			}
			if v.Supports(gameVersion, loader) {
				versions = append(versions, v)
			}
		}
	}
	return versions, nil
}

// GetVersions fetches the release assets named in refs.
func (g *GitHub) GetVersions(ctx context.Context, refs []domain.VersionRef) ([]domain.Version, error) {
	var versions []domain.Version
	for _, ref := range refs {
		aid, ok := ref.Version.(domain.GitHubAsset)
		if !ok {
			continue
		}
		gid, err := domain.AsGitHub(ref.Project)
		if err != nil {
			return nil, err
		}
		var raw ghAsset
		if err := g.rest.get(ctx, repoPath(gid)+"/releases/assets/"+aid.String(), nil, &raw); err != nil {
			return nil, zerr.With(err, "version", aid.String())
		}
		v, err := raw.toDomain(gid, raw.Name, raw.UpdatedAt)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// GetLatest returns the first compatible asset of the newest stable release.
func (g *GitHub) GetLatest(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) (domain.Version, error) {
	versions, err := g.GetProjectVersions(ctx, id, gameVersion, loader)
	if err != nil {
		return domain.Version{}, err
	}
	return latestCompatible(id, versions, gameVersion, loader)
}

// GetUpdates checks every locked GitHub mod for a newer release asset.
func (g *GitHub) GetUpdates(ctx context.Context, gameVersion string, loader domain.Loader, locked []domain.LockedMod) ([]domain.Version, error) {
	var targets []domain.LockedMod
	for _, l := range locked {
		if l.Project.Service() == domain.ServiceGitHub {
			targets = append(targets, l)
		}
	}
	return latestPerLocked(ctx, targets, func(ctx context.Context, id domain.ProjectID) (domain.Version, error) {
		return g.GetLatest(ctx, id, gameVersion, loader)
	})
}

// GetGameVersions is unsupported for a source-code host.
func (g *GitHub) GetGameVersions(_ context.Context) ([]string, error) {
	return nil, g.unsupported()
}

// Lookup is unsupported: release assets are not content indexed.
func (g *GitHub) Lookup(_ context.Context, _ []string) (map[string]domain.Version, error) {
	return nil, g.unsupported()
}

// LookupHashes is unsupported: release assets are not content indexed.
func (g *GitHub) LookupHashes(_ context.Context, _ []string) (map[string]domain.Version, error) {
	return nil, g.unsupported()
}

func (g *GitHub) unsupported() error {
	return zerr.With(domain.Wrap(domain.ErrUnsupported, nil), "service", domain.ServiceGitHub.String())
}

func (a ghAsset) toDomain(project domain.GitHubProject, title string, published time.Time) (domain.Version, error) {
	name, err := domain.NewScopedPath(a.Name)
	if err != nil {
		return domain.Version{}, zerr.With(err, "asset", a.ID)
	}
	return domain.Version{
		ID:           domain.GitHubAsset(a.ID),
		Project:      project,
		Title:        title,
		URL:          a.BrowserDownloadURL,
		Filename:     name,
		Length:       a.Size,
		Published:    published,
		Loaders:      loadersFromName(a.Name),
		GameVersions: gameVersionPattern.FindAllString(a.Name, -1),
	}, nil
}

func repoPath(p domain.GitHubProject) string {
	return "/repos/" + url.PathEscape(p.Owner) + "/" + url.PathEscape(p.Repo)
}

func isModAsset(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".jar") &&
		!strings.HasSuffix(lower, "-sources.jar") &&
		!strings.HasSuffix(lower, "-dev.jar")
}

func loadersFromName(name string) []domain.Loader {
	lower := strings.ToLower(name)
	var loaders []domain.Loader
	switch {
	case strings.Contains(lower, "neoforge"):
		loaders = append(loaders, domain.LoaderNeoForge)
	case strings.Contains(lower, "forge"):
		loaders = append(loaders, domain.LoaderForge)
	}
	if strings.Contains(lower, "fabric") {
		loaders = append(loaders, domain.LoaderFabric)
	}
	if strings.Contains(lower, "quilt") {
		loaders = append(loaders, domain.LoaderQuilt)
	}
	return loaders
}

// sortReleases orders releases by semantic version descending, falling back to
// publish date for tags that are not semver.
func sortReleases(releases []ghRelease) {
	slices.SortStableFunc(releases, func(a, b ghRelease) int {
		va, vb := canonicalTag(a.TagName), canonicalTag(b.TagName)
		if semver.IsValid(va) && semver.IsValid(vb) {
			if c := semver.Compare(vb, va); c != 0 {
				return c
			}
		}
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}

func canonicalTag(tag string) string {
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	return tag
}

