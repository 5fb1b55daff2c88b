package config

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"jobscout-engine/internal/output"
)

// Validate is NormalizeAndValidate without the normalized copy; warnings
// are ignored.
func Validate(cfg Config) error {
	_, v := NormalizeAndValidate(cfg)
	if !v.OK() {
		return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
	}
	return nil
}

// SaveAtomic validates cfg and replaces path with it, keeping the previous
// file as path+".bak". It shares the locked temp-file path of the result
// writer, so a concurrent save never leaves a torn file.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return output.WriteFileWithBackup(path, b)
}
