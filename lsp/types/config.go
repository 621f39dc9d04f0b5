package types

import "bennypowers.dev/sls/internal/config"

// ServerConfig represents the server configuration
type ServerConfig = config.Config

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return config.Default()
}
