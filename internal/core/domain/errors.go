package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrNoProfiles is returned when an operation needs a profile but none are registered.
	ErrNoProfiles = zerr.New("no profiles configured")

	// ErrUnknownProfile is returned when the requested or active profile does not exist.
	ErrUnknownProfile = zerr.New("unknown profile")

	// ErrDoesNotExist is returned when a provider reports that a project or version is missing.
	ErrDoesNotExist = zerr.New("project does not exist")

	// ErrWrongType is returned when a fetched project is not of the requested kind (mod vs modpack).
	ErrWrongType = zerr.New("project is of the wrong type")

	// ErrWrongService is returned when an identifier belongs to a different provider service.
	ErrWrongService = zerr.New("identifier belongs to a different service")

	// ErrServiceMismatch is returned when a version identifier is paired with a project of another service.
	ErrServiceMismatch = zerr.New("project and version belong to different services")

	// ErrIncompatible is returned when a project or pack targets a different game.
	ErrIncompatible = zerr.New("incompatible with the selected game")

	// ErrMissingVersion is returned when no compatible version could be resolved for a project.
	ErrMissingVersion = zerr.New("no compatible version found")

	// ErrDownloadFailed is returned when an artifact could not be fetched or written.
	ErrDownloadFailed = zerr.New("download failed")

	// ErrDistributionDenied is returned when the provider withholds a download URL.
	ErrDistributionDenied = zerr.New("distribution denied by provider")

	// ErrServerUnsupported is returned when a loader has no server installer.
	ErrServerUnsupported = zerr.New("server installation unsupported for loader")

	// ErrInvalidIdentifier is returned when a project or version identifier cannot be parsed.
	ErrInvalidIdentifier = zerr.New("invalid identifier")

	// ErrUnsupported is returned for operations a provider cannot perform.
	ErrUnsupported = zerr.New("operation not supported by provider")

	// ErrPathEscapesRoot is returned when a relative path traverses above its base directory.
	ErrPathEscapesRoot = zerr.New("path escapes installation root")

	// ErrPathConflict is returned when two items would install to the same path.
	ErrPathConflict = zerr.New("another item installs to the same path")

	// ErrHashMismatch is returned when downloaded content does not match its expected hash.
	ErrHashMismatch = zerr.New("content hash mismatch")

	// ErrLockfileParse is returned when an existing lockfile cannot be decoded.
	ErrLockfileParse = zerr.New("failed to parse lockfile")

	// ErrDuplicateLockedMod is returned when a lockfile lists the same project more than once.
	ErrDuplicateLockedMod = zerr.New("duplicate project in lockfile")

	// ErrAlreadyAdded is returned when a profile already declares the project.
	ErrAlreadyAdded = zerr.New("project already added to profile")

	// ErrDuplicateMod is returned when a profile lists the same project more than once.
	ErrDuplicateMod = zerr.New("duplicate project in profile")

	// ErrModNotFound is returned when a profile does not declare the requested project.
	ErrModNotFound = zerr.New("project not found in profile")

	// ErrProfileLocked is returned when another process holds the profile install lock.
	ErrProfileLocked = zerr.New("profile is locked by another process")

	// ErrProfileExists is returned when creating a profile with a name already in use.
	ErrProfileExists = zerr.New("profile already exists")

	// ErrProviderRequest is returned when a provider request fails at the transport level.
	ErrProviderRequest = zerr.New("provider request failed")

	// ErrProviderParse is returned when a provider response cannot be decoded.
	ErrProviderParse = zerr.New("failed to parse provider response")

	// ErrPackFormat is returned when a modpack archive has no recognised manifest.
	ErrPackFormat = zerr.New("unrecognised modpack format")

	// ErrProfileReadFailed is returned when profile data cannot be read.
	ErrProfileReadFailed = zerr.New("failed to read profile data")

	// ErrProfileWriteFailed is returned when profile data or the lockfile cannot be written.
	ErrProfileWriteFailed = zerr.New("failed to write profile data")

	// ErrConfigReadFailed is returned when the configuration file cannot be read or parsed.
	ErrConfigReadFailed = zerr.New("failed to read configuration")

	// ErrConfigWriteFailed is returned when the configuration file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write configuration")
)

// Wrap returns an error whose chain contains both kind and cause, so callers
// can match the kind with errors.Is and still attach metadata with zerr.With.
func Wrap(kind, cause error) error {
	if cause == nil {
		return zerr.Wrap(kind, "")
	}
	return zerr.Wrap(fmt.Errorf("%w: %w", kind, cause), "")
}
