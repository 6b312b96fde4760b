// Package config loads and persists the client configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFile = "config.json"

	defaultPinEndpoint  = "https://api.pinata.cloud"
	defaultPollInterval = 2 // seconds
)

// Env var overrides, applied after the file is read.
const (
	EnvRPCURL    = "MOTORMINT_RPC_URL"
	EnvContract  = "MOTORMINT_CONTRACT"
	EnvPinKey    = "MOTORMINT_PIN_KEY"
	EnvPinSecret = "MOTORMINT_PIN_SECRET"
)

// Config is the full client configuration. The client has no persisted
// state beyond this: the contract address, the admin allow-list and the
// pinning credentials are the whole environment.
type Config struct {
	RPCURL          string   `json:"rpc_url"`
	ContractAddress string   `json:"contract_address"`
	AdminAllowList  []string `json:"admin_allowlist"`
	PinEndpoint     string   `json:"pin_endpoint"`
	PinAPIKey       string   `json:"pin_api_key"`
	PinSecretKey    string   `json:"pin_secret_key"`
	ABIPath         string   `json:"abi_path,omitempty"`
	KeyRef          string   `json:"key_ref,omitempty"`
	PollInterval    int      `json:"poll_interval_seconds"`

	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.motormint.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".motormint")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.configDir = dir
	}

	applyEnv(cfg)
	if cfg.PinEndpoint == "" {
		cfg.PinEndpoint = defaultPinEndpoint
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

func defaults(dir string) *Config {
	return &Config{
		PinEndpoint:  defaultPinEndpoint,
		PollInterval: defaultPollInterval,
		configDir:    dir,
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvRPCURL); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv(EnvContract); v != "" {
		cfg.ContractAddress = v
	}
	if v := os.Getenv(EnvPinKey); v != "" {
		cfg.PinAPIKey = v
	}
	if v := os.Getenv(EnvPinSecret); v != "" {
		cfg.PinSecretKey = v
	}
}
