package config

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig makes sure dataDir/config.yml exists, copying it from
// defaultPath, or writing Defaults() when the shipped file is missing too.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}

	// Copy defaultPath -> userPath
	src, err := os.Open(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] %s not found, writing built-in defaults to %s", defaultPath, userPath)
		b, err := yaml.Marshal(Defaults())
		if err != nil {
			return "", err
		}
		return userPath, os.WriteFile(userPath, b, 0o644)
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
