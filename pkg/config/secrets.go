package config

import (
	"context"
	"fmt"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// accessSecret reads the latest version of a Secret Manager secret.
var accessSecret = func(ctx context.Context, project, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name),
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}

	return string(resp.GetPayload().GetData()), nil
}

type secretRef struct {
	dst  *string
	name string
}

// loadSecrets fills keys the environment left empty, but only those the selected
// provider actually uses.
func loadSecrets(ctx context.Context, cfg *Config) error {
	if cfg.Secrets.Project == "" {
		return nil
	}

	wanted := []secretRef{{&cfg.TMDBAPIKey, cfg.Secrets.TMDBSecret}}
	switch cfg.LLM.Provider {
	case ProviderGemini:
		wanted = append(wanted, secretRef{&cfg.GeminiAPIKey, cfg.Secrets.GeminiSecret})
	case ProviderGroq:
		wanted = append(wanted, secretRef{&cfg.GroqAPIKey, cfg.Secrets.GroqSecret})
	}

	for _, w := range wanted {
		if *w.dst != "" {
			continue
		}
		value, err := accessSecret(ctx, cfg.Secrets.Project, w.name)
		if err != nil {
			return fmt.Errorf("load secrets: %w", err)
		}
		slog.Debug("Loaded key from Secret Manager", "secret", w.name)
		*w.dst = value
	}

	return nil
}
