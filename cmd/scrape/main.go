// Command scrape runs board searches from the command line and writes the
// listings to JSON files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/output"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/types"
)

type options struct {
	configPath   string
	envPath      string
	title        string
	location     string
	allLocations bool
	parallel     int
	outDir       string
	merge        bool
	list         bool
	stdout       bool
	fromHTML     string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("scrape", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", filepath.Join("config", "config.yml"), "config file")
	fs.StringVar(&o.envPath, "env", ".env", "dotenv file with JOBSCOUT_* overrides")
	fs.StringVar(&o.title, "title", "", "job title label, e.g. \"Software Engineer\"")
	fs.StringVar(&o.location, "location", "", "location label, e.g. \"Austin\" (empty = any)")
	fs.BoolVar(&o.allLocations, "all-locations", false, "search the title in every catalog location")
	fs.IntVar(&o.parallel, "parallel", 3, "max searches in flight with -all-locations")
	fs.StringVar(&o.outDir, "out", "", "output directory (default: output.dir from config, under app.data_dir)")
	fs.BoolVar(&o.merge, "merge", false, "with -all-locations, also write a deduplicated all.json")
	fs.BoolVar(&o.list, "list", false, "print the catalog labels and exit")
	fs.BoolVar(&o.stdout, "stdout", false, "print listings as JSON to stdout instead of writing files")
	fs.StringVar(&o.fromHTML, "from-html", "", "extract listings from a saved search page and print them, without fetching")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.list || o.fromHTML != "" {
		return o, nil
	}
	if o.title == "" {
		return o, errors.New("-title is required (see -list)")
	}
	if o.allLocations && o.location != "" {
		return o, errors.New("-location and -all-locations are mutually exclusive")
	}
	return o, nil
}

func (o options) queries() []catalog.Query {
	if o.allLocations {
		return scrape.AllLocations(o.title)
	}
	return []catalog.Query{{Title: o.title, Location: o.location}}
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if o.list {
		printCatalog()
		return
	}
	os.Exit(run(o))
}

func run(o options) int {
	// Validate labels before touching config or the network.
	if o.fromHTML == "" {
		for _, q := range o.queries() {
			if err := q.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 2
			}
		}
	}

	cfg, err := config.Load(o.configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config load failed (%s): %v", o.configPath, err)
		return 1
	}
	if err := config.OverlayEnv(&cfg, o.envPath); err != nil {
		log.Print(err)
		return 1
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Printf("invalid config: %s", strings.Join(vr.Errors, "; "))
		return 1
	}
	if o.fromHTML != "" {
		if err := extractSaved(os.Stdout, o.fromHTML, cfg); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	}
	if o.outDir == "" {
		o.outDir = cfg.OutputDir()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var f types.Fetcher = scrape.NewHTTPFetcher(cfg)
	if cfg.Board.Fetcher == config.FetcherBrowser {
		s, err := browser.Launch(scrape.BrowserOptions(cfg))
		if err != nil {
			log.Print(err)
			return 1
		}
		defer s.Close()
		f = browser.PageFetcher{S: s}
	}

	searcher, err := scrape.NewSearcher(cfg, f)
	if err != nil {
		log.Print(err)
		return 1
	}

	perQuery := time.Duration(cfg.Board.TimeoutSeconds)*time.Second + 30*time.Second
	results := scrape.RunBatch(ctx, searcher.Search, o.queries(), o.parallel, perQuery)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if err := emit(o, output.FileName(r.Query.Title, r.Query.Location), r.Listings); err != nil {
			log.Printf("[scrape] write: %v", err)
			failed++
		}
	}
	if o.merge && o.allLocations {
		if err := emit(o, "all.json", scrape.Merge(results)); err != nil {
			log.Printf("[scrape] write: %v", err)
			failed++
		}
	}

	if failed > 0 {
		log.Printf("[scrape] %d of %d searches failed", failed, len(results))
		return 1
	}
	return 0
}

// extractSaved runs the configured marker table over a search page saved
// from a browser, which is how a changed board layout gets diagnosed.
func extractSaved(w io.Writer, path string, cfg config.Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	searcher, err := scrape.NewSearcher(cfg, nil)
	if err != nil {
		return err
	}
	listings, err := searcher.Extractor.ExtractHTML(string(b))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return output.Encode(w, listings)
}

func emit(o options, name string, v any) error {
	if o.stdout {
		return output.Encode(os.Stdout, v)
	}
	path := filepath.Join(o.outDir, name)
	if err := output.WriteJSON(path, v); err != nil {
		return err
	}
	log.Printf("[scrape] wrote %s", path)
	return nil
}

func printCatalog() {
	fmt.Println("Job titles:")
	for _, t := range catalog.Titles() {
		fmt.Println("  " + t)
	}
	fmt.Println("Locations:")
	for _, l := range catalog.Locations() {
		fmt.Println("  " + l)
	}
}
