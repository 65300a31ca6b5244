package repository

import (
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading the job configuration.
type ConfigRepository interface {
	// Load reads defaults, the optional file and the environment, then validates the result.
	Load(filePath string) (*types.Config, error)

	// Validate checks a configuration again after command-line overrides.
	Validate(cfg *types.Config) error
}
