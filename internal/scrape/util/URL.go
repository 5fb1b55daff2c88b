package util

import (
	"net/url"
	"regexp"
	"strings"
)

var httpsURLRe = regexp.MustCompile(`https://[^\s]+`)

// AbsoluteURL joins a site-relative href onto origin. Hrefs that already
// carry a scheme and host are returned as is; an empty href yields "".
func AbsoluteURL(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if u, err := url.Parse(href); err == nil && u.Scheme != "" && u.Host != "" {
		return href
	}

	origin = strings.TrimRight(origin, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return origin + href
}

// EmbeddedHTTPSURL returns the first https:// URL inside s, e.g. the real
// image behind an image-proxy src. It returns "" when there is none.
func EmbeddedHTTPSURL(s string) string {
	return httpsURLRe.FindString(s)
}
