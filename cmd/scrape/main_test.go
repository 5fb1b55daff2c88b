package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/wellfound"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-title", "Designer", "-location", "Austin"})
	require.NoError(t, err)
	require.Equal(t, []catalog.Query{{Title: "Designer", Location: "Austin"}}, o.queries())
	require.Equal(t, 3, o.parallel)

	o, err = parseFlags([]string{"-title", "Designer", "-all-locations", "-parallel", "5"})
	require.NoError(t, err)
	require.Len(t, o.queries(), len(catalog.Locations()))
	require.Equal(t, 5, o.parallel)

	_, err = parseFlags([]string{"-location", "Austin"})
	require.Error(t, err)

	_, err = parseFlags([]string{"-title", "Designer", "-location", "Austin", "-all-locations"})
	require.Error(t, err)

	o, err = parseFlags([]string{"-list"})
	require.NoError(t, err)
	require.True(t, o.list)

	o, err = parseFlags([]string{"-from-html", "page.html"})
	require.NoError(t, err)
	require.Equal(t, "page.html", o.fromHTML)
}

const savedPage = `<html><body>
<div class="mb-6 w-full rounded border border-gray-400 bg-white">
  <h2 class="inline text-md font-semibold">Acme</h2>
  <a class="mr-2 text-sm font-semibold text-brand-burgandy hover:underline" href="/jobs/1-go">Go Developer</a>
  <span class="whitespace-nowrap rounded-lg bg-accent-yellow-100 px-2 py-1 text-[10px] font-semibold text-neutral-800">Full-time</span>
  <span class="text-xs lowercase text-dark-a mr-2 hidden flex-wrap content-center md:flex">today</span>
  <div class="flex items-center text-neutral-500"><span class="pl-1 text-xs">$100k</span></div>
</div>
</body></html>`

func TestExtractSaved(t *testing.T) {
	p := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(p, []byte(savedPage), 0o600))

	var buf bytes.Buffer
	require.NoError(t, extractSaved(&buf, p, config.Defaults()))

	var got []domain.Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Go Developer", got[0].Title)
	require.Equal(t, "https://wellfound.com/jobs/1-go", got[0].PostingURL)
	require.Equal(t, domain.Placeholder, got[0].Location)
}

func TestExtractSaved_LayoutChanged(t *testing.T) {
	p := filepath.Join(t.TempDir(), "page.html")
	broken := bytes.ReplaceAll([]byte(savedPage), []byte("inline text-md font-semibold"), []byte("company-name"))
	require.NoError(t, os.WriteFile(p, broken, 0o600))

	err := extractSaved(&bytes.Buffer{}, p, config.Defaults())
	require.ErrorIs(t, err, wellfound.ErrLayoutChanged)
}
