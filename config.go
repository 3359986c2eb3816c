package courses

import "github.com/baitalhikma/go-courses/internal/runtimeconfig"

// Config re-exports the runtime configuration consumed by New.
type Config = runtimeconfig.Config

// Aliases for the nested configuration blocks.
type (
	ModerationConfig = runtimeconfig.ModerationConfig
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	Features         = runtimeconfig.Features
	CommandsConfig   = runtimeconfig.CommandsConfig
	SeedConfig       = runtimeconfig.SeedConfig
)

// DefaultConfig returns opinionated defaults for a single-tenant deployment.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
