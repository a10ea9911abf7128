package usecase

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/clientive/clientive/internal/domain"
)

// redacted replaces secrets in rendered config.
const redacted = "********"

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	ShowSecrets bool
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config    // Merged config, secrets redacted unless requested
	GlobalConfig    domain.ConfigInfo // Global config file info
	LocalConfig     domain.ConfigInfo // Working-directory config file info
	EffectiveTOML   string            // EffectiveConfig rendered as TOML
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	effective := *cfg
	if !in.ShowSecrets {
		redact(&effective.Auth.Secret)
		redact(&effective.Mail.SendGridKey)
		redact(&effective.Remote.Token)
		redact(&effective.Database.DSN)
	}

	rendered, err := toml.Marshal(&effective)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}

	return &ShowConfigOutput{
		GlobalConfig:    uc.configManager.GetGlobalConfigInfo(),
		LocalConfig:     uc.configManager.GetLocalConfigInfo(),
		EffectiveConfig: &effective,
		EffectiveTOML:   string(rendered),
	}, nil
}

func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}
