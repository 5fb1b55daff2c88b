// Package output writes scrape results to disk.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
)

// WriteJSON writes v as indented JSON to path through WriteFile.
func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFile(path, append(b, '\n'))
}

// WriteFile replaces path with b. Concurrent writers of the same path are
// serialized through path+".lock", and readers only ever see a complete file.
func WriteFile(path string, b []byte) error {
	return writeLocked(path, b, "")
}

// WriteFileWithBackup is WriteFile that first copies the current contents of
// path, if any, to path+".bak".
func WriteFileWithBackup(path string, b []byte) error {
	return writeLocked(path, b, path+".bak")
}

func writeLocked(path string, b []byte, bak string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lk := flock.New(path + ".lock")
	if err := lk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lk.Unlock() }()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if bak != "" {
		prev, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := os.WriteFile(bak, prev, 0o600); err != nil {
				return fmt.Errorf("backup %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return err
		}
	}
	return os.Rename(tmpName, path)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// FileName builds a stable file name for a search, e.g.
// "software-engineer_austin.json" or "designer.json".
func FileName(title, location string) string {
	parts := []string{slug(title)}
	if location != "" {
		parts = append(parts, slug(location))
	}
	return strings.Join(parts, "_") + ".json"
}

func slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Encode writes v to w with the same formatting as WriteJSON.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
