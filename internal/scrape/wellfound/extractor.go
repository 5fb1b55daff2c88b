// Package wellfound turns wellfound.com role search pages into listings.
package wellfound

import (
	"fmt"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// Extractor applies a marker table to search-result documents. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	origin string
	now    func() time.Time
	card   string
	rules  []Mapping
}

// NewExtractor validates mf and returns an Extractor that prefixes relative
// links with origin. now supplies the reference instant for posted dates;
// nil means time.Now.
func NewExtractor(origin string, mf MappingFile, now func() time.Time) (*Extractor, error) {
	mf.Mappings = append([]Mapping(nil), mf.Mappings...)
	if err := mf.compile(); err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Extractor{
		origin: origin,
		now:    now,
		card:   mf.CardSelector,
		rules:  mf.Mappings,
	}, nil
}

// ExtractHTML parses html and extracts its listings.
func (x *Extractor) ExtractHTML(html string) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return x.Extract(doc)
}

// Extract returns one listing per top-level job card, in document order.
// A page without cards yields an empty slice. A card missing a required
// marker fails the whole page with a *LayoutError.
func (x *Extractor) Extract(doc *goquery.Document) ([]domain.Listing, error) {
	ref := x.now()
	listings := make([]domain.Listing, 0)

	cards := doc.Find(x.card).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(x.card).Length() == 0
	})

	var err error
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		var l domain.Listing
		l, err = x.extractCard(i, card, ref)
		if err != nil {
			return false
		}
		listings = append(listings, l)
		return true
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (x *Extractor) extractCard(idx int, card *goquery.Selection, ref time.Time) (domain.Listing, error) {
	var l domain.Listing
	for _, m := range x.rules {
		v, err := x.apply(idx, card, m, ref)
		if err != nil {
			return domain.Listing{}, err
		}
		setField(&l, m.Field, v)
	}
	return l, nil
}

func (x *Extractor) apply(idx int, card *goquery.Selection, m Mapping, ref time.Time) (string, error) {
	missing := func(selector, reason string) (string, error) {
		if m.Optional {
			return domain.Placeholder, nil
		}
		return "", &LayoutError{Card: idx, Field: m.Field, Selector: selector, Reason: reason}
	}

	scope := card
	if m.Within != "" {
		rows := card.Find(m.Within)
		if rows.Length() <= m.Nth {
			return missing(m.Within, fmt.Sprintf("container #%d not found", m.Nth+1))
		}
		scope = rows.Eq(m.Nth)
	}

	node := scope.Find(m.Selector).First()
	if node.Length() == 0 {
		return missing(m.Selector, "marker not found")
	}

	var raw string
	if m.Extract == "attr" {
		v, ok := node.Attr(m.Attr)
		if !ok || strings.TrimSpace(v) == "" {
			return missing(m.Selector, "attribute "+m.Attr+" missing")
		}
		raw = v
	} else {
		raw = node.Text()
	}

	if m.re != nil {
		raw = m.re.FindString(raw)
		if raw == "" {
			return missing(m.Selector, "value does not match "+m.Match)
		}
	}

	v := x.transform(m.Transform, raw, ref)
	if v == "" && m.Transform == TransformEmbeddedURL {
		return missing(m.Selector, "no https url in value")
	}
	if m.NonEmpty && v == "" {
		return "", &LayoutError{Card: idx, Field: m.Field, Selector: m.Selector, Reason: "empty value"}
	}
	return v, nil
}

func (x *Extractor) transform(t Transform, raw string, ref time.Time) string {
	raw = strings.TrimSpace(raw)
	switch t {
	case TransformSanitize:
		return util.Sanitize(raw)
	case TransformRelativeDate:
		return util.NormalizeRelativeDate(raw, ref)
	case TransformAbsoluteURL:
		return util.AbsoluteURL(x.origin, raw)
	case TransformEmbeddedURL:
		return util.EmbeddedHTTPSURL(raw)
	default:
		return raw
	}
}

func setField(l *domain.Listing, f Field, v string) {
	switch f {
	case FieldTitle:
		l.Title = v
	case FieldEmploymentType:
		l.EmploymentType = v
	case FieldSalary:
		l.Salary = v
	case FieldCompany:
		l.Company = v
	case FieldCompanyImage:
		l.CompanyImage = v
	case FieldPostedDate:
		l.PostedDate = v
	case FieldLocation:
		l.Location = v
	case FieldPostingURL:
		l.PostingURL = v
	}
}
