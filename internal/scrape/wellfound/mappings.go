package wellfound

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Field string

const (
	FieldTitle          Field = "title"
	FieldEmploymentType Field = "type"
	FieldSalary         Field = "salary"
	FieldCompany        Field = "company"
	FieldCompanyImage   Field = "company_image"
	FieldPostedDate     Field = "posted_date"
	FieldLocation       Field = "location"
	FieldPostingURL     Field = "posting_url"
)

var allFields = []Field{
	FieldTitle, FieldEmploymentType, FieldSalary, FieldCompany,
	FieldCompanyImage, FieldPostedDate, FieldLocation, FieldPostingURL,
}

type Transform string

const (
	TransformTrim         Transform = "trim"
	TransformSanitize     Transform = "sanitize"
	TransformRelativeDate Transform = "relative_date"
	TransformAbsoluteURL  Transform = "absolute_url"
	// TransformEmbeddedURL keeps the first https:// URL in the value, e.g.
	// the real image behind an image-proxy src.
	TransformEmbeddedURL  Transform = "embedded_https_url"
)

// Mapping is one row of the field -> marker table.
//
// When Within is set the card is first narrowed to its Nth match of Within
// (0-based) and Selector is evaluated inside it. Extract is "text" or
// "attr". Match, if set, keeps only the first regex match of the value.
// Optional fields get domain.Placeholder when any step finds nothing;
// required ones fail the page with a LayoutError.
type Mapping struct {
	Field     Field     `yaml:"field"`
	Within    string    `yaml:"within,omitempty"`
	Nth       int       `yaml:"nth,omitempty"`
	Selector  string    `yaml:"selector"`
	Extract   string    `yaml:"extract"`
	Attr      string    `yaml:"attr,omitempty"`
	Match     string    `yaml:"match,omitempty"`
	Transform Transform `yaml:"transform,omitempty"`
	Optional  bool      `yaml:"optional,omitempty"`
	NonEmpty  bool      `yaml:"non_empty,omitempty"`

	re *regexp.Regexp
}

// MappingFile is the YAML layout accepted by LoadMappingFile.
type MappingFile struct {
	CardSelector string    `yaml:"card_selector"`
	Mappings     []Mapping `yaml:"mappings"`
}

const (
	cardSelector = `div[class="mb-6 w-full rounded border border-gray-400 bg-white"]`
	titleAnchor  = `a[class="mr-2 text-sm font-semibold text-brand-burgandy hover:underline"]`
	metaRow      = `div[class="flex items-center text-neutral-500"]`
	metaText     = `span[class="pl-1 text-xs"]`
)

// DefaultMappingFile describes the board's current job-card markup.
func DefaultMappingFile() MappingFile {
	return MappingFile{
		CardSelector: cardSelector,
		Mappings: []Mapping{
			{Field: FieldTitle, Selector: titleAnchor, Extract: "text", Transform: TransformTrim, NonEmpty: true},
			{Field: FieldEmploymentType, Selector: `span[class="whitespace-nowrap rounded-lg bg-accent-yellow-100 px-2 py-1 text-[10px] font-semibold text-neutral-800"]`, Extract: "text", Transform: TransformTrim},
			{Field: FieldSalary, Within: metaRow, Nth: 0, Selector: metaText, Extract: "text", Transform: TransformSanitize},
			{Field: FieldCompany, Selector: `h2[class="inline text-md font-semibold"]`, Extract: "text", Transform: TransformTrim, NonEmpty: true},
			{Field: FieldCompanyImage, Selector: "img", Extract: "attr", Attr: "src", Transform: TransformEmbeddedURL, Optional: true},
			{Field: FieldPostedDate, Selector: `span[class="text-xs lowercase text-dark-a mr-2 hidden flex-wrap content-center md:flex"]`, Extract: "text", Transform: TransformRelativeDate},
			{Field: FieldLocation, Within: metaRow, Nth: 1, Selector: metaText, Extract: "text", Transform: TransformSanitize, Optional: true},
			{Field: FieldPostingURL, Selector: titleAnchor, Extract: "attr", Attr: "href", Transform: TransformAbsoluteURL, Optional: true},
		},
	}
}

// LoadMappingFile reads a YAML marker table so markup changes can be
// handled without a rebuild.
func LoadMappingFile(path string) (MappingFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return MappingFile{}, fmt.Errorf("read mappings file: %w", err)
	}

	var mf MappingFile
	if err := yaml.Unmarshal(b, &mf); err != nil {
		return MappingFile{}, fmt.Errorf("parse mappings yaml: %w", err)
	}
	if err := mf.compile(); err != nil {
		return MappingFile{}, err
	}
	return mf, nil
}

// compile validates the table and prepares Match regexes.
func (mf *MappingFile) compile() error {
	if strings.TrimSpace(mf.CardSelector) == "" {
		return fmt.Errorf("mappings: card_selector is required")
	}

	seen := map[Field]bool{}
	for i := range mf.Mappings {
		m := &mf.Mappings[i]
		if strings.TrimSpace(m.Selector) == "" {
			return fmt.Errorf("mappings[%d] (%s): selector is required", i, m.Field)
		}
		switch m.Extract {
		case "text":
		case "attr":
			if m.Attr == "" {
				return fmt.Errorf("mappings[%d] (%s): attr is required when extract=attr", i, m.Field)
			}
		default:
			return fmt.Errorf("mappings[%d] (%s): unknown extract %q", i, m.Field, m.Extract)
		}
		switch m.Transform {
		case "", TransformTrim, TransformSanitize, TransformRelativeDate, TransformAbsoluteURL, TransformEmbeddedURL:
		default:
			return fmt.Errorf("mappings[%d] (%s): unknown transform %q", i, m.Field, m.Transform)
		}
		if m.Nth < 0 {
			return fmt.Errorf("mappings[%d] (%s): nth must be >= 0", i, m.Field)
		}
		if m.Match != "" {
			re, err := regexp.Compile(m.Match)
			if err != nil {
				return fmt.Errorf("mappings[%d] (%s): invalid match regex: %w", i, m.Field, err)
			}
			m.re = re
		}
		seen[m.Field] = true
	}

	for _, f := range allFields {
		if !seen[f] {
			return fmt.Errorf("mappings: no rule for field %q", f)
		}
	}
	return nil
}
