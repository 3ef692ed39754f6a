package ports

import "go.trai.ch/modsync/internal/core/domain"

// ConfigLoader defines the interface for loading and saving the application configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration, applying environment overrides.
	Load() (*domain.Config, error)

	// Save writes the persisted part of the configuration.
	Save(cfg *domain.Config) error
}
