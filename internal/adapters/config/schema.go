package config

// ConfigFile represents the structure of the config.yaml file.
type ConfigFile struct {
	Profiles      []ProfileDTO `yaml:"profiles"`
	ActiveProfile int          `yaml:"active_profile"`
	CacheDir      string       `yaml:"cache_dir,omitempty"`
	NoCache       bool         `yaml:"no_cache,omitempty"`
	Parallelism   int          `yaml:"parallelism,omitempty"`
	Providers     ProvidersDTO `yaml:"providers,omitempty"`
}

// ProfileDTO represents a registered profile.
type ProfileDTO struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ProvidersDTO holds per-provider connection settings.
type ProvidersDTO struct {
	Modrinth   EndpointDTO `yaml:"modrinth,omitempty"`
	CurseForge EndpointDTO `yaml:"curseforge,omitempty"`
	GitHub     EndpointDTO `yaml:"github,omitempty"`
}

// EndpointDTO is a provider base URL and optional credential.
type EndpointDTO struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Token   string `yaml:"token,omitempty"`
}

// envOverrides are read from the process environment and win over the file.
type envOverrides struct {
	CacheDir         string `env:"MODSYNC_CACHE_DIR"`
	NoCache          bool   `env:"MODSYNC_NO_CACHE"`
	Parallelism      int    `env:"MODSYNC_PARALLELISM"`
	CurseForgeAPIKey string `env:"CURSEFORGE_API_KEY"`
	GitHubToken      string `env:"GITHUB_TOKEN"`
}
