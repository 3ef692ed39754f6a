package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Service identifies a provider back end.
type Service int

const (
	// ServiceUnknown is the zero value and never names a real back end.
	ServiceUnknown Service = iota
	// ServiceModrinth is the Modrinth catalog.
	ServiceModrinth
	// ServiceCurseForge is the CurseForge catalog.
	ServiceCurseForge
	// ServiceGitHub is GitHub releases.
	ServiceGitHub
)

// String returns the lowercase service name used in persisted documents.
func (s Service) String() string {
	switch s {
	case ServiceModrinth:
		return "modrinth"
	case ServiceCurseForge:
		return "curseforge"
	case ServiceGitHub:
		return "github"
	default:
		return "unknown"
	}
}

// ProjectID is a closed union of per-service project identifiers.
// All variants are comparable, so a ProjectID can be used as a map key.
type ProjectID interface {
	Service() Service
	String() string
	projectID()
}

// VersionID is a closed union of per-service version identifiers.
type VersionID interface {
	Service() Service
	String() string
	versionID()
}

// ModrinthProject is a Modrinth project id or slug.
type ModrinthProject string

// CurseForgeProject is a numeric CurseForge project id.
type CurseForgeProject int32

// GitHubProject is a GitHub repository.
type GitHubProject struct {
	Owner string
	Repo  string
}

// ModrinthVersion is a Modrinth version id.
type ModrinthVersion string

// CurseForgeFile is a numeric CurseForge file id.
type CurseForgeFile int32

// GitHubAsset is a numeric GitHub release asset id.
type GitHubAsset int64

func (ModrinthProject) Service() Service   { return ServiceModrinth }
func (CurseForgeProject) Service() Service { return ServiceCurseForge }
func (GitHubProject) Service() Service     { return ServiceGitHub }
func (ModrinthVersion) Service() Service   { return ServiceModrinth }
func (CurseForgeFile) Service() Service    { return ServiceCurseForge }
func (GitHubAsset) Service() Service       { return ServiceGitHub }

func (p ModrinthProject) String() string   { return string(p) }
func (p CurseForgeProject) String() string { return strconv.FormatInt(int64(p), 10) }
func (p GitHubProject) String() string     { return p.Owner + "/" + p.Repo }
func (v ModrinthVersion) String() string   { return string(v) }
func (v CurseForgeFile) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v GitHubAsset) String() string       { return strconv.FormatInt(int64(v), 10) }

func (ModrinthProject) projectID()   {}
func (CurseForgeProject) projectID() {}
func (GitHubProject) projectID()     {}
func (ModrinthVersion) versionID()   {}
func (CurseForgeFile) versionID()    {}
func (GitHubAsset) versionID()       {}

type identifier interface {
	Service() Service
	String() string
}

func wrongService(want Service, got identifier) error {
	err := zerr.With(Wrap(ErrWrongService, nil), "expected", want.String())
	err = zerr.With(err, "actual", got.Service().String())
	return zerr.With(err, "id", got.String())
}

// AsModrinth narrows id to a Modrinth project.
func AsModrinth(id ProjectID) (ModrinthProject, error) {
	if p, ok := id.(ModrinthProject); ok {
		return p, nil
	}
	return "", wrongService(ServiceModrinth, id)
}

// AsCurseForge narrows id to a CurseForge project.
func AsCurseForge(id ProjectID) (CurseForgeProject, error) {
	if p, ok := id.(CurseForgeProject); ok {
		return p, nil
	}
	return 0, wrongService(ServiceCurseForge, id)
}

// AsGitHub narrows id to a GitHub repository.
func AsGitHub(id ProjectID) (GitHubProject, error) {
	if p, ok := id.(GitHubProject); ok {
		return p, nil
	}
	return GitHubProject{}, wrongService(ServiceGitHub, id)
}

// AsModrinthVersion narrows v to a Modrinth version.
func AsModrinthVersion(v VersionID) (ModrinthVersion, error) {
	if id, ok := v.(ModrinthVersion); ok {
		return id, nil
	}
	return "", wrongService(ServiceModrinth, v)
}

// AsCurseForgeFile narrows v to a CurseForge file.
func AsCurseForgeFile(v VersionID) (CurseForgeFile, error) {
	if id, ok := v.(CurseForgeFile); ok {
		return id, nil
	}
	return 0, wrongService(ServiceCurseForge, v)
}

// AsGitHubAsset narrows v to a GitHub release asset.
func AsGitHubAsset(v VersionID) (GitHubAsset, error) {
	if id, ok := v.(GitHubAsset); ok {
		return id, nil
	}
	return 0, wrongService(ServiceGitHub, v)
}

// CheckPair validates that a project and version come from the same service.
func CheckPair(p ProjectID, v VersionID) error {
	if p == nil || v == nil {
		return Wrap(ErrInvalidIdentifier, nil)
	}
	if p.Service() != v.Service() {
		err := zerr.With(Wrap(ErrServiceMismatch, nil), "project", p.String())
		err = zerr.With(err, "project_service", p.Service().String())
		return zerr.With(err, "version_service", v.Service().String())
	}
	return nil
}

// ParseProjectID interprets user input as a project identifier.
// "owner/repo" names a GitHub repository, an all-digit string a CurseForge
// project, and anything else a Modrinth id or slug.
func ParseProjectID(raw string) (ProjectID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, zerr.With(Wrap(ErrInvalidIdentifier, nil), "id", raw)
	}
	if owner, repo, ok := strings.Cut(s, "/"); ok {
		if owner == "" || repo == "" || strings.Contains(repo, "/") {
			return nil, zerr.With(Wrap(ErrInvalidIdentifier, nil), "id", raw)
		}
		return GitHubProject{Owner: owner, Repo: repo}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		if n <= 0 {
			return nil, zerr.With(Wrap(ErrInvalidIdentifier, nil), "id", raw)
		}
		return CurseForgeProject(n), nil
	}
	return ModrinthProject(s), nil
}

// ParseVersionID interprets raw as a version identifier for service.
func ParseVersionID(service Service, raw string) (VersionID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, zerr.With(Wrap(ErrInvalidIdentifier, nil), "version", raw)
	}
	switch service {
	case ServiceModrinth:
		return ModrinthVersion(s), nil
	case ServiceCurseForge:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil || n <= 0 {
			return nil, zerr.With(Wrap(ErrInvalidIdentifier, err), "version", raw)
		}
		return CurseForgeFile(n), nil
	case ServiceGitHub:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			return nil, zerr.With(Wrap(ErrInvalidIdentifier, err), "version", raw)
		}
		return GitHubAsset(n), nil
	default:
		return nil, zerr.With(Wrap(ErrInvalidIdentifier, nil), "service", service.String())
	}
}
