// Package vault loads application secrets from HashiCorp Vault at
// startup. When Vault is disabled the caller falls back to environment
// configuration.
package vault

import (
	"context"
	"fmt"

	"trading-mind-backend/config"

	"github.com/hashicorp/vault/api"
)

// Secrets holds the application secrets stored under a single KV path.
type Secrets struct {
	JWTSecret  string
	DBPassword string
}

// Client wraps the HashiCorp Vault client
type Client struct {
	client *api.Client
	config config.VaultConfig
}

// NewClient creates a new Vault client. With Vault disabled it returns a
// client whose LoadSecrets is a no-op.
func NewClient(cfg config.VaultConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{config: cfg}, nil
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSEnabled && cfg.CACert != "" {
		tlsConfig := &api.TLSConfig{CACert: cfg.CACert}
		if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	return &Client{client: client, config: cfg}, nil
}

// LoadSecrets reads the application secrets from the configured KV path.
// Missing keys are returned empty so the caller can keep env values.
func (c *Client) LoadSecrets(ctx context.Context) (*Secrets, error) {
	if !c.config.Enabled {
		return &Secrets{}, nil
	}

	path := fmt.Sprintf("%s/data/%s", c.config.MountPath, c.config.SecretPath)
	secret, err := c.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secrets found at %s", path)
	}

	// KV v2 nests the payload under "data"
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected secret format at %s", path)
	}

	secrets := &Secrets{}
	if v, ok := data["jwt_secret"].(string); ok {
		secrets.JWTSecret = v
	}
	if v, ok := data["db_password"].(string); ok {
		secrets.DBPassword = v
	}
	return secrets, nil
}

// Enabled reports whether the client talks to a real Vault.
func (c *Client) Enabled() bool {
	return c.config.Enabled
}
