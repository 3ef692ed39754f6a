package domain

import (
	"go.trai.ch/zerr"
)

// DefaultParallelism bounds concurrent metadata requests.
const DefaultParallelism = 10

// ProfileRef registers a profile directory under a name.
type ProfileRef struct {
	Name string
	Path string
}

// Config is the application configuration.
type Config struct {
	Profiles      []ProfileRef
	ActiveProfile int
	CacheDir      string
	// NoCache writes artifacts straight into the profile instead of the shared cache.
	NoCache     bool
	Parallelism int

	ModrinthBaseURL   string
	CurseForgeBaseURL string
	CurseForgeAPIKey  string
	GitHubBaseURL     string
	GitHubToken       string
}

// Active returns the selected profile.
func (c *Config) Active() (ProfileRef, error) {
	if len(c.Profiles) == 0 {
		return ProfileRef{}, Wrap(ErrNoProfiles, nil)
	}
	if c.ActiveProfile < 0 || c.ActiveProfile >= len(c.Profiles) {
		return ProfileRef{}, zerr.With(Wrap(ErrUnknownProfile, nil), "index", c.ActiveProfile)
	}
	return c.Profiles[c.ActiveProfile], nil
}

// Select makes the profile called name active.
func (c *Config) Select(name string) error {
	if len(c.Profiles) == 0 {
		return Wrap(ErrNoProfiles, nil)
	}
	for i, p := range c.Profiles {
		if p.Name == name {
			c.ActiveProfile = i
			return nil
		}
	}
	return zerr.With(Wrap(ErrUnknownProfile, nil), "profile", name)
}

// AddProfile registers ref and makes it active.
func (c *Config) AddProfile(ref ProfileRef) error {
	for _, p := range c.Profiles {
		if p.Name == ref.Name {
			return zerr.With(Wrap(ErrProfileExists, nil), "profile", ref.Name)
		}
	}
	c.Profiles = append(c.Profiles, ref)
	c.ActiveProfile = len(c.Profiles) - 1
	return nil
}
