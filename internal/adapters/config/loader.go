// Package config loads and saves the modsync configuration file.
package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/zalando/go-keyring"
	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultModrinthURL is the Modrinth v2 API root.
	DefaultModrinthURL = "https://api.modrinth.com/v2"
	// DefaultCurseForgeURL is the CurseForge core API root.
	DefaultCurseForgeURL = "https://api.curseforge.com"
	// DefaultGitHubURL is the GitHub REST API root.
	DefaultGitHubURL = "https://api.github.com"

	keyringCurseForge = "curseforge"
	keyringGitHub     = "github"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file, environment
// overrides and the OS keyring for credentials.
type FileConfigLoader struct {
	Path string

	environ map[string]string
	log     ports.Logger

	// Credentials as stored in the file, so Save never persists values that
	// came from the environment or keyring.
	fileTokens ProvidersDTO
}

// NewLoader creates a loader for the file at path.
func NewLoader(path string, log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{Path: path, log: log}
}

// WithEnvironment replaces the process environment used for overrides.
func (l *FileConfigLoader) WithEnvironment(environ map[string]string) *FileConfigLoader {
	l.environ = environ
	return l
}

// Load reads the configuration. A missing file yields an empty configuration.
func (l *FileConfigLoader) Load() (*domain.Config, error) {
	var file ConfigFile

	data, err := os.ReadFile(l.Path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(domain.Wrap(domain.ErrConfigReadFailed, err), "path", l.Path)
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(domain.Wrap(domain.ErrConfigReadFailed, err), "path", l.Path)
		}
	}
	l.fileTokens = file.Providers

	cfg := toDomain(&file)

	var overrides envOverrides
	opts := env.Options{}
	if l.environ != nil {
		opts.Environment = l.environ
	}
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return nil, domain.Wrap(domain.ErrConfigReadFailed, err)
	}
	applyOverrides(cfg, &overrides)

	if cfg.CurseForgeAPIKey == "" {
		cfg.CurseForgeAPIKey = l.secret(keyringCurseForge)
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = l.secret(keyringGitHub)
	}

	return cfg, nil
}

// Save writes the configuration back to the file.
func (l *FileConfigLoader) Save(cfg *domain.Config) error {
	file := fromDomain(cfg)
	file.Providers.CurseForge.Token = l.fileTokens.CurseForge.Token
	file.Providers.GitHub.Token = l.fileTokens.GitHub.Token

	data, err := yaml.Marshal(file)
	if err != nil {
		return domain.Wrap(domain.ErrConfigWriteFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), domain.DirPerm); err != nil {
		return zerr.With(domain.Wrap(domain.ErrConfigWriteFailed, err), "path", l.Path)
	}
	if err := fs.AtomicWriteFile(l.Path, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(domain.Wrap(domain.ErrConfigWriteFailed, err), "path", l.Path)
	}
	return nil
}

func (l *FileConfigLoader) secret(user string) string {
	value, err := keyring.Get(domain.AppName, user)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) && l.log != nil {
			l.log.Warn("keyring unavailable for " + user + ": " + err.Error())
		}
		return ""
	}
	return value
}

func toDomain(file *ConfigFile) *domain.Config {
	cfg := &domain.Config{
		ActiveProfile:     file.ActiveProfile,
		CacheDir:          file.CacheDir,
		NoCache:           file.NoCache,
		Parallelism:       file.Parallelism,
		ModrinthBaseURL:   file.Providers.Modrinth.BaseURL,
		CurseForgeBaseURL: file.Providers.CurseForge.BaseURL,
		CurseForgeAPIKey:  file.Providers.CurseForge.Token,
		GitHubBaseURL:     file.Providers.GitHub.BaseURL,
		GitHubToken:       file.Providers.GitHub.Token,
	}
	for _, p := range file.Profiles {
		cfg.Profiles = append(cfg.Profiles, domain.ProfileRef{Name: p.Name, Path: p.Path})
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = domain.DefaultCachePath()
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = domain.DefaultParallelism
	}
	if cfg.ModrinthBaseURL == "" {
		cfg.ModrinthBaseURL = DefaultModrinthURL
	}
	if cfg.CurseForgeBaseURL == "" {
		cfg.CurseForgeBaseURL = DefaultCurseForgeURL
	}
	if cfg.GitHubBaseURL == "" {
		cfg.GitHubBaseURL = DefaultGitHubURL
	}
	return cfg
}

func applyOverrides(cfg *domain.Config, o *envOverrides) {
	if o.CacheDir != "" {
		cfg.CacheDir = o.CacheDir
	}
	if o.NoCache {
		cfg.NoCache = true
	}
	if o.Parallelism > 0 {
		cfg.Parallelism = o.Parallelism
	}
	if o.CurseForgeAPIKey != "" {
		cfg.CurseForgeAPIKey = o.CurseForgeAPIKey
	}
	if o.GitHubToken != "" {
		cfg.GitHubToken = o.GitHubToken
	}
}

func fromDomain(cfg *domain.Config) ConfigFile {
	file := ConfigFile{
		ActiveProfile: cfg.ActiveProfile,
		NoCache:       cfg.NoCache,
	}
	if cfg.CacheDir != domain.DefaultCachePath() {
		file.CacheDir = cfg.CacheDir
	}
	if cfg.Parallelism != domain.DefaultParallelism {
		file.Parallelism = cfg.Parallelism
	}
	if cfg.ModrinthBaseURL != DefaultModrinthURL {
		file.Providers.Modrinth.BaseURL = cfg.ModrinthBaseURL
	}
	if cfg.CurseForgeBaseURL != DefaultCurseForgeURL {
		file.Providers.CurseForge.BaseURL = cfg.CurseForgeBaseURL
	}
	if cfg.GitHubBaseURL != DefaultGitHubURL {
		file.Providers.GitHub.BaseURL = cfg.GitHubBaseURL
	}
	for _, p := range cfg.Profiles {
		file.Profiles = append(file.Profiles, ProfileDTO{Name: p.Name, Path: p.Path})
	}
	return file
}
