package modpack

import (
	"strings"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
)

type (
	cfManifest struct {
		Minecraft struct {
			Version    string `json:"version"`
			ModLoaders []struct {
				ID      string `json:"id"`
				Primary bool   `json:"primary"`
			} `json:"modLoaders"`
		} `json:"minecraft"`
		ManifestType string           `json:"manifestType"`
		Name         string           `json:"name"`
		Version      string           `json:"version"`
		Files        []cfManifestFile `json:"files"`
		Overrides    string           `json:"overrides"`
	}

	cfManifestFile struct {
		ProjectID int32 `json:"projectID"`
		FileID    int32 `json:"fileID"`
		Required  *bool `json:"required"`
	}
)

func (m *cfManifest) manifest() (domain.PackManifest, error) {
	if m.ManifestType != "" && m.ManifestType != "minecraftModpack" {
		return domain.PackManifest{}, zerr.With(domain.Wrap(domain.ErrPackFormat, nil), "manifest_type", m.ManifestType)
	}

	out := domain.PackManifest{
		Format:      domain.PackFormatCurseForge,
		Name:        m.Name,
		VersionName: m.Version,
		Game:        "minecraft",
		GameVersion: m.Minecraft.Version,
	}
	for _, l := range m.Minecraft.ModLoaders {
		// Loader ids look like "forge-47.1.0" or "fabric-0.14.21".
		name, _, _ := strings.Cut(l.ID, "-")
		if loader := domain.ParseLoader(name); loader != domain.LoaderUnknown && (l.Primary || out.Loader == domain.LoaderUnknown) {
			out.Loader = loader
		}
	}

	for _, f := range m.Files {
		if f.Required != nil && !*f.Required {
			continue
		}
		if f.ProjectID <= 0 || f.FileID <= 0 {
			return domain.PackManifest{}, zerr.With(domain.Wrap(domain.ErrInvalidIdentifier, nil), "project", f.ProjectID)
		}
		out.Entries = append(out.Entries, domain.PackEntry{
			Project: domain.CurseForgeProject(f.ProjectID),
			Version: domain.CurseForgeFile(f.FileID),
		})
	}
	return out, nil
}
