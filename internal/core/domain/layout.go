package domain

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

const (
	// AppName is the directory name used under the user config and cache roots.
	AppName = "modsync"

	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = "config.yaml"

	// ProfileFileName is the name of the per-profile declarative state file.
	ProfileFileName = "profile.json"

	// LockFileName is the name of the per-profile installed-state record.
	LockFileName = "modsync-lock.json"

	// InstallLockName is the name of the flock file guarding a profile directory.
	InstallLockName = ".modsync.lock"

	// ProfileCacheDir is the profile-local cache used in no-cache mode for
	// artifacts that are not installed directly, such as modpack archives.
	ProfileCacheDir = ".modsync"

	// PartSuffix is appended to a destination while its download is in flight.
	PartSuffix = ".part"

	// BackupSuffix is appended to user-modified override files before they are replaced.
	BackupSuffix = ".bak"

	// ModsCacheDir is the cache bucket for mod artifacts.
	ModsCacheDir = "mods"

	// ModpacksCacheDir is the cache bucket for modpack archives.
	ModpacksCacheDir = "modpacks"

	// ServerCacheDir is the cache bucket for per-loader server installers.
	ServerCacheDir = "server"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultConfigPath returns the default location of the configuration file.
// It joins the user config directory, modsync and config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName, ConfigFileName)
}

// DefaultCachePath returns the default artifact cache directory.
// It joins the user cache directory and modsync.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName)
}

// ServerInstallerBucket returns the cache bucket holding server installers for loader.
func ServerInstallerBucket(loader Loader) (string, error) {
	switch loader {
	case LoaderFabric, LoaderQuilt, LoaderForge, LoaderNeoForge:
		return filepath.Join(ServerCacheDir, loader.String()), nil
	default:
		return "", zerr.With(Wrap(ErrServerUnsupported, nil), "loader", loader.String())
	}
}
