package domain

// Event is a progress or error notification produced by the engine.
// The set of implementations is closed.
type Event interface {
	event()
}

// InstallKind classifies an installed file.
type InstallKind int

const (
	// InstallKindMod is a tracked project file.
	InstallKindMod InstallKind = iota
	// InstallKindOverride is a file extracted from a modpack's overrides.
	InstallKindOverride
	// InstallKindOther is an untracked file installed verbatim from a pack.
	InstallKindOther
)

// String returns a short label for the kind.
func (k InstallKind) String() string {
	switch k {
	case InstallKindOverride:
		return "override"
	case InstallKindOther:
		return "other"
	default:
		return "mod"
	}
}

// StatusEvent carries a human-readable phase or warning message.
type StatusEvent struct {
	Message string
}

// DownloadStartEvent announces a download of Length bytes.
type DownloadStartEvent struct {
	ID     string
	Title  string
	Length int64
}

// DownloadProgressEvent reports Bytes newly received for download ID.
type DownloadProgressEvent struct {
	ID    string
	Bytes int64
}

// DownloadSuccessEvent marks download ID as verified and in place.
type DownloadSuccessEvent struct {
	ID string
}

// DownloadFailEvent marks download ID as failed.
type DownloadFailEvent struct {
	ID  string
	Err error
}

// InstalledEvent reports a file now present in the profile.
type InstalledEvent struct {
	File  ScopedPath
	IsNew bool
	Kind  InstallKind
}

// DeletedEvent reports a file removed from the profile.
type DeletedEvent struct {
	File ScopedPath
}

// ErrorEvent reports a non-fatal, per-item failure.
type ErrorEvent struct {
	Err error
}

func (StatusEvent) event()           {}
func (DownloadStartEvent) event()    {}
func (DownloadProgressEvent) event() {}
func (DownloadSuccessEvent) event()  {}
func (DownloadFailEvent) event()     {}
func (InstalledEvent) event()        {}
func (DeletedEvent) event()          {}
func (ErrorEvent) event()            {}
