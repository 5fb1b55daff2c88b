package scrape

import (
	"net/url"
	"sort"
	"strings"

	"jobscout-engine/internal/domain"
)

func canonicalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == domain.Placeholder {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")

	// drop common tracking params
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "mc_cid" || lk == "mc_eid" ||
			lk == "mkt_tok" {
			q.Del(k)
		}
	}

	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// listingKey identifies a posting across searches: its canonical URL when it
// has one, else company and title.
func listingKey(l domain.Listing) string {
	if u := canonicalizeURL(l.PostingURL); u != "" {
		return "url:" + u
	}
	return "ct:" + strings.ToLower(l.Company) + "\x00" + strings.ToLower(l.Title)
}
