package browser

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

const inboxFixture = `<html><body>
<ul>
  <li data-test="MessagesListItem">
    <span class="styles_sender__OXIee">Acme Robotics</span>
    <p class="styles_messageText__Xqdns">Thanks for applying,
      let's   talk!</p>
    <time class="styles_date__oHT46">Jan 9</time>
  </li>
  <li data-test="MessagesListItem">
    <span class="styles_sender__OXIee">Globex</span>
    <p class="styles_messageText__Xqdns">Are you free Friday?</p>
  </li>
  <li data-test="SomethingElse"><span class="styles_sender__OXIee">ignored</span></li>
</ul>
</body></html>`

func TestExtractInbox(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(inboxFixture))
	require.NoError(t, err)

	got := ExtractInbox(doc, DefaultInboxMarkers())
	require.Equal(t, []domain.InboxMessage{
		{Sender: "Acme Robotics", Message: "Thanks for applying, let's talk!", Timestamp: "Jan 9"},
		{Sender: "Globex", Message: "Are you free Friday?", Timestamp: domain.Placeholder},
	}, got)
}

func TestExtractInbox_Empty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>no messages</p></body></html>`))
	require.NoError(t, err)

	got := ExtractInbox(doc, InboxMarkers{})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestInboxMarkers_PartialOverride(t *testing.T) {
	m := InboxMarkers{Row: "div.thread"}.withDefaults()
	require.Equal(t, "div.thread", m.Row)
	require.Equal(t, DefaultInboxMarkers().Sender, m.Sender)
	require.Equal(t, "#user_email", m.EmailInput)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{BaseURL: "https://example.test/"}.withDefaults()
	require.Equal(t, "https://example.test", o.BaseURL)
	require.Equal(t, "/login", o.LoginPath)
	require.Equal(t, "/jobs/messages", o.MessagesPath)
	require.Equal(t, 2*time.Second, o.Settle)
	require.Equal(t, 5*time.Second, o.LoginWait)
	require.NotEmpty(t, o.UserAgent)
}

func TestSessionError(t *testing.T) {
	err := stepErr("launch", boomErr{})
	require.ErrorIs(t, err, ErrSession)
	require.Contains(t, err.Error(), "browser launch")
	require.NoError(t, stepErr("noop", nil))
}

type boomErr struct{}

func (boomErr) Error() string { return "boom" }
