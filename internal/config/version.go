package config

import (
	"os"
	"runtime/debug"
)

// GetVersion returns APP_VERSION if set (CI/CD), otherwise the module version
// recorded in the build info, falling back to "0.1.0".
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return "0.1.0"
}
