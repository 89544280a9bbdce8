package app

import (
	"context"

	"vestibule-demo/internal/auth/provider"
	"vestibule-demo/internal/auth/provider/github"
	"vestibule-demo/internal/auth/provider/microsoft"
	"vestibule-demo/internal/config"
)

// buildRegistry registers a strategy for every provider with a complete
// credential pair. A half-configured provider is skipped without error;
// an empty registry is provider.ErrNoProviders.
func buildRegistry(ctx context.Context, cfg config.Config) (*provider.Registry, error) {
	var strategies []provider.Strategy

	if cfg.GithubEnabled() {
		p, err := github.New(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			cfg.CallbackURL("github"),
		)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, p)
	}

	if cfg.MicrosoftEnabled() {
		p, err := microsoft.New(
			ctx,
			cfg.MicrosoftClientID,
			cfg.MicrosoftClientSecret,
			cfg.CallbackURL("microsoft"),
		)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, p)
	}

	return provider.NewRegistry(strategies...)
}
