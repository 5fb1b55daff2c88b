package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

func TestWriteJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "jobs.json")
	in := []domain.Listing{{Title: "Backend Engineer", Company: "Acme", Location: domain.Placeholder}}

	require.NoError(t, WriteJSON(p, in))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	var got []domain.Listing
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, in, got)
	require.Contains(t, string(b), "\n  {")

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(p), "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestWriteJSONConcurrent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "jobs.json")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, WriteJSON(p, map[string]int{"writer": i}))
		}(i)
	}
	wg.Wait()

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	var got map[string]int
	require.NoError(t, json.Unmarshal(b, &got))
	require.Contains(t, got, "writer")
}

func TestWriteJSONUnencodable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.Error(t, WriteJSON(p, map[string]any{"ch": make(chan int)}))
	_, err := os.Stat(p)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileWithBackup(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yml")

	require.NoError(t, WriteFileWithBackup(p, []byte("v: 1\n")))
	_, err := os.Stat(p + ".bak")
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, WriteFileWithBackup(p, []byte("v: 2\n")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "v: 2\n", string(b))
	b, err = os.ReadFile(p + ".bak")
	require.NoError(t, err)
	require.Equal(t, "v: 1\n", string(b))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "software-engineer_austin.json", FileName("Software Engineer", "Austin"))
	require.Equal(t, "designer.json", FileName("Designer", ""))
	require.Equal(t, "devops-engineer_district-of-columbia.json", FileName("DevOps Engineer", "District of Columbia"))
}
