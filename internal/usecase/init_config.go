package usecase

import (
	"context"

	"github.com/clientive/clientive/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template; nil means defaults
	Global bool           // If true, initialize global config; otherwise the working directory
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file with default template.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	var err error
	var path string

	if in.Global {
		info := uc.configManager.GetGlobalConfigInfo()
		path = info.Path
		err = uc.configManager.InitGlobalConfig(cfg)
	} else {
		info := uc.configManager.GetLocalConfigInfo()
		path = info.Path
		err = uc.configManager.InitLocalConfig(cfg)
	}

	if err != nil {
		return nil, err
	}

	return &InitConfigOutput{Path: path}, nil
}
