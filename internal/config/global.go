package config

import (
	"github.com/buildstack/kiln/pkg/config"
)

// Global configuration variables
var (
	// ConfigPath is the path to the configuration file
	ConfigPath = config.DefaultConfigPath
)
