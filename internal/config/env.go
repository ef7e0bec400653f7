package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment flags. Any value, including empty, counts as set.
const (
	EnvNoNotifications = "S3L_NO_NOTIFICATIONS"
	EnvDebug           = "S3L_DEBUG"
)

// EnvFlags are the environment-level toggles OR-ed into the configuration.
type EnvFlags struct {
	NoNotifications bool
	Debug           bool
}

// EnvFlagsFromEnv reads the flags from the process environment.
func EnvFlagsFromEnv() EnvFlags {
	return EnvFlagsFrom(os.LookupEnv)
}

// EnvFlagsFrom reads the flags through lookup.
func EnvFlagsFrom(lookup func(string) (string, bool)) EnvFlags {
	_, noNotify := lookup(EnvNoNotifications)
	_, debug := lookup(EnvDebug)
	return EnvFlags{NoNotifications: noNotify, Debug: debug}
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already present in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
