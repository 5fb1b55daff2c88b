// Package catalog holds the fixed job-title and location tables accepted by
// the board search and builds search URLs from them.
package catalog

import "strings"

const DefaultBaseURL = "https://wellfound.com"

type entry struct {
	Label string
	Slug  string
}

// Table order is the order labels are listed back to callers.
var titles = []entry{
	{"Software Engineer", "software-engineer"},
	{"Engineering Manager", "engineering-manager"},
	{"Artificial Intelligence Engineer", "artificial-intelligence-engineer"},
	{"Machine Learning Engineer", "machine-learning-engineer"},
	{"Backend Engineer", "backend-engineer"},
	{"Mobile Engineer", "mobile-engineer"},
	{"Product Designer", "product-designer"},
	{"Frontend Engineer", "frontend-engineer"},
	{"Data Scientist", "data-scientist"},
	{"Full Stack Engineer", "full-stack-engineer"},
	{"Product Manager", "product-manager"},
	{"Designer", "designer"},
	{"Software Architect", "software-architect"},
	{"DevOps Engineer", "devops-engineer"},
}

var locations = []entry{
	{"Los Angeles", "los-angeles"},
	{"New York", "new-york"},
	{"San Francisco", "san-francisco"},
	{"Seattle", "seattle"},
	{"Boston", "boston"},
	{"Chicago", "chicago"},
	{"Denver", "denver"},
	{"Austin", "austin"},
	{"District of Columbia", "district-of-columbia"},
}

var (
	titleSlugs    = index(titles)
	locationSlugs = index(locations)
)

func index(es []entry) map[string]string {
	m := make(map[string]string, len(es))
	for _, e := range es {
		m[e.Label] = e.Slug
	}
	return m
}

func labels(es []entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Label)
	}
	return out
}

// Titles returns the accepted job-title labels in catalog order.
func Titles() []string { return labels(titles) }

// Locations returns the accepted location labels in catalog order.
func Locations() []string { return labels(locations) }

// ResolveTitle maps a job-title label to its URL slug. Labels must match verbatim.
func ResolveTitle(label string) (string, error) {
	if slug, ok := titleSlugs[label]; ok {
		return slug, nil
	}
	return "", &UnknownLabelError{Kind: KindTitle, Label: label, Valid: Titles()}
}

// ResolveLocation maps a location label to its URL slug. Labels must match verbatim.
func ResolveLocation(label string) (string, error) {
	if slug, ok := locationSlugs[label]; ok {
		return slug, nil
	}
	return "", &UnknownLabelError{Kind: KindLocation, Label: label, Valid: Locations()}
}

// BuildURL returns base/role/{title} when locationSlug is empty and
// base/role/l/{title}/{location} otherwise.
func BuildURL(base, titleSlug, locationSlug string) string {
	base = strings.TrimRight(base, "/")
	if locationSlug == "" {
		return base + "/role/" + titleSlug
	}
	return base + "/role/l/" + titleSlug + "/" + locationSlug
}

// Query is the caller-facing search criteria. An empty Location means no
// location filter.
type Query struct {
	Title    string `json:"job_title"`
	Location string `json:"job_location,omitempty"`
}

// Validate resolves both labels and reports the first unknown one.
func (q Query) Validate() error {
	_, _, err := q.slugs()
	return err
}

func (q Query) slugs() (title, location string, err error) {
	title, err = ResolveTitle(q.Title)
	if err != nil {
		return "", "", err
	}
	if q.Location == "" {
		return title, "", nil
	}
	location, err = ResolveLocation(q.Location)
	if err != nil {
		return "", "", err
	}
	return title, location, nil
}

// ResolveAndBuildURL validates q against the catalog and builds its search URL.
func ResolveAndBuildURL(base string, q Query) (string, error) {
	title, location, err := q.slugs()
	if err != nil {
		return "", err
	}
	return BuildURL(base, title, location), nil
}
