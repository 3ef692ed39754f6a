package modpack

import (
	"net/url"
	"strings"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
)

const modrinthCDNHost = "cdn.modrinth.com"

type (
	mrIndex struct {
		FormatVersion int               `json:"formatVersion"`
		Game          string            `json:"game"`
		VersionID     string            `json:"versionId"`
		Name          string            `json:"name"`
		Summary       string            `json:"summary"`
		Files         []mrIndexFile     `json:"files"`
		Dependencies  map[string]string `json:"dependencies"`
	}

	mrIndexFile struct {
		Path      string            `json:"path"`
		Hashes    map[string]string `json:"hashes"`
		Env       *mrEnv            `json:"env"`
		Downloads []string          `json:"downloads"`
		FileSize  int64             `json:"fileSize"`
	}

	mrEnv struct {
		Client string `json:"client"`
		Server string `json:"server"`
	}
)

func (idx *mrIndex) manifest() (domain.PackManifest, error) {
	m := domain.PackManifest{
		Format:      domain.PackFormatModrinth,
		Name:        idx.Name,
		VersionName: idx.VersionID,
		Game:        idx.Game,
		GameVersion: idx.Dependencies["minecraft"],
	}
	for key := range idx.Dependencies {
		if l := domain.ParseLoader(key); l != domain.LoaderUnknown {
			m.Loader = l
		}
	}

	for _, f := range idx.Files {
		if f.Env != nil && f.Env.Client == "unsupported" {
			continue
		}
		path, err := domain.NewScopedPath(f.Path)
		if err != nil {
			return domain.PackManifest{}, zerr.With(err, "entry", f.Path)
		}
		entry := domain.PackEntry{
			Path: path,
			SHA1: strings.ToLower(f.Hashes["sha1"]),
			URLs: f.Downloads,
			Size: f.FileSize,
		}
		entry.Project, entry.Version = declaredIDs(f.Downloads)
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}

// declaredIDs recovers project and version ids from a Modrinth CDN URL of the
// form https://cdn.modrinth.com/data/{project}/versions/{version}/{file}.
func declaredIDs(downloads []string) (domain.ProjectID, domain.VersionID) {
	for _, raw := range downloads {
		u, err := url.Parse(raw)
		if err != nil || u.Host != modrinthCDNHost {
			continue
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) >= 5 && parts[0] == "data" && parts[2] == "versions" && parts[1] != "" && parts[3] != "" {
			return domain.ModrinthProject(parts[1]), domain.ModrinthVersion(parts[3])
		}
	}
	return nil, nil
}
