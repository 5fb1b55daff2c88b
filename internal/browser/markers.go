package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/util"
)

// InboxMarkers are the selectors for the login form and the messages list.
type InboxMarkers struct {
	EmailInput    string `yaml:"email_input"`
	PasswordInput string `yaml:"password_input"`
	Submit        string `yaml:"submit"`
	Row           string `yaml:"row"`
	Sender        string `yaml:"sender"`
	Text          string `yaml:"text"`
	Date          string `yaml:"date"`
}

func DefaultInboxMarkers() InboxMarkers {
	return InboxMarkers{
		EmailInput:    "#user_email",
		PasswordInput: "#user_password",
		Submit:        `[name="commit"]`,
		Row:           `[data-test="MessagesListItem"]`,
		Sender:        ".styles_sender__OXIee",
		Text:          ".styles_messageText__Xqdns",
		Date:          ".styles_date__oHT46",
	}
}

// withDefaults fills any empty selector from DefaultInboxMarkers.
func (m InboxMarkers) withDefaults() InboxMarkers {
	d := DefaultInboxMarkers()
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return InboxMarkers{
		EmailInput:    pick(m.EmailInput, d.EmailInput),
		PasswordInput: pick(m.PasswordInput, d.PasswordInput),
		Submit:        pick(m.Submit, d.Submit),
		Row:           pick(m.Row, d.Row),
		Sender:        pick(m.Sender, d.Sender),
		Text:          pick(m.Text, d.Text),
		Date:          pick(m.Date, d.Date),
	}
}

// ExtractInbox reads every message row of a rendered messages page in
// document order. Parts missing from a row come back as domain.Placeholder.
func ExtractInbox(doc *goquery.Document, m InboxMarkers) []domain.InboxMessage {
	m = m.withDefaults()
	out := []domain.InboxMessage{}
	doc.Find(m.Row).Each(func(_ int, row *goquery.Selection) {
		out = append(out, domain.InboxMessage{
			Sender:    rowText(row, m.Sender),
			Message:   rowText(row, m.Text),
			Timestamp: rowText(row, m.Date),
		})
	})
	return out
}

func rowText(row *goquery.Selection, sel string) string {
	s := row.Find(sel).First()
	if s.Length() == 0 {
		return domain.Placeholder
	}
	return util.CleanText(s.Text())
}
