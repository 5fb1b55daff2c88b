// Package browser drives a real Chromium session for the pages that need a
// logged-in account or client-side rendering.
package browser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/fetch"
)

type Options struct {
	BaseURL      string
	LoginPath    string
	MessagesPath string
	UserAgent    string
	Headless     bool
	// Settle is how long to wait after navigation before reading the page.
	Settle time.Duration
	// LoginWait is how long to wait after submitting the login form.
	LoginWait time.Duration
	Markers   InboxMarkers
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = "https://wellfound.com"
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.LoginPath == "" {
		o.LoginPath = "/login"
	}
	if o.MessagesPath == "" {
		o.MessagesPath = "/jobs/messages"
	}
	if o.UserAgent == "" {
		o.UserAgent = fetch.DefaultUserAgent
	}
	if o.Settle <= 0 {
		o.Settle = 2 * time.Second
	}
	if o.LoginWait <= 0 {
		o.LoginWait = 5 * time.Second
	}
	o.Markers = o.Markers.withDefaults()
	return o
}

// Session owns one playwright driver, one Chromium process and one browser
// context, so cookies from a login carry over to later pages. Operations are
// serialized.
type Session struct {
	opts Options

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	// account is the loginKey of the credentials that last logged in
	// successfully, or "" when the context holds no session.
	account string
}

func Launch(opts Options) (*Session, error) {
	opts = opts.withDefaults()

	pw, err := playwright.Run()
	if err != nil {
		return nil, stepErr("start playwright", err)
	}

	br, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			log.Printf("[browser] stop playwright: %v", stopErr)
		}
		return nil, stepErr("launch", err)
	}

	bctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(opts.UserAgent),
	})
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return nil, stepErr("new context", err)
	}

	log.Printf("[browser] launched headless=%v", opts.Headless)
	return &Session{opts: opts, pw: pw, browser: br, bctx: bctx}, nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.bctx != nil {
		errs = append(errs, s.bctx.Close())
		s.bctx = nil
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
		s.browser = nil
	}
	if s.pw != nil {
		errs = append(errs, s.pw.Stop())
		s.pw = nil
	}
	return errors.Join(errs...)
}

// loginKey identifies a set of credentials without keeping the password.
func loginKey(email, password string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email)) + "\x00" + password))
	return hex.EncodeToString(sum[:])
}

// onLoginPage reports whether current still points at the login form, which
// is where the board leaves you after rejected credentials.
func onLoginPage(current, loginPath string) bool {
	u, err := url.Parse(current)
	if err != nil {
		return true
	}
	return strings.TrimRight(u.Path, "/") == strings.TrimRight(loginPath, "/")
}

// login submits the board login form unless these exact credentials already
// hold the context's session.
func (s *Session) login(ctx context.Context, email, password string) error {
	key := loginKey(email, password)
	if s.account != "" && s.account == key {
		return nil
	}
	if s.bctx == nil {
		return stepErr("login", errors.New("session closed"))
	}
	if s.account != "" {
		if err := s.bctx.ClearCookies(); err != nil {
			return stepErr("clear cookies", err)
		}
		s.account = ""
	}

	page, err := s.bctx.NewPage()
	if err != nil {
		return stepErr("new page", err)
	}
	defer closePage(page)

	m := s.opts.Markers
	if err := s.navigate(ctx, page, s.opts.BaseURL+s.opts.LoginPath); err != nil {
		return err
	}
	if err := page.Locator(m.EmailInput).Fill(email); err != nil {
		return stepErr("fill email", err)
	}
	if err := page.Locator(m.PasswordInput).Fill(password); err != nil {
		return stepErr("fill password", err)
	}
	if err := page.Locator(m.Submit).First().Click(); err != nil {
		return stepErr("submit login", err)
	}
	if err := sleepCtx(ctx, s.opts.LoginWait); err != nil {
		return stepErr("login", err)
	}
	if onLoginPage(page.URL(), s.opts.LoginPath) {
		return stepErr("login", errors.New("still on the login page; check the account credentials"))
	}

	s.account = key
	log.Printf("[browser] logged in account=%s", email)
	return nil
}

// ScrapeInbox logs in (if needed) and reads every row of the messages page.
func (s *Session) ScrapeInbox(ctx context.Context, email, password string) ([]domain.InboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.login(ctx, email, password); err != nil {
		return nil, err
	}
	doc, err := s.render(ctx, s.opts.BaseURL+s.opts.MessagesPath)
	if err != nil {
		return nil, err
	}
	msgs := ExtractInbox(doc, s.opts.Markers)
	log.Printf("[browser] inbox rows=%d", len(msgs))
	return msgs, nil
}

// render opens url in a fresh page of the shared context and parses the
// rendered DOM.
func (s *Session) render(ctx context.Context, url string) (*goquery.Document, error) {
	if s.bctx == nil {
		return nil, stepErr("render", errors.New("session closed"))
	}
	page, err := s.bctx.NewPage()
	if err != nil {
		return nil, stepErr("new page", err)
	}
	defer closePage(page)

	if err := s.navigate(ctx, page, url); err != nil {
		return nil, err
	}
	html, err := page.Content()
	if err != nil {
		return nil, stepErr("read content", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, stepErr("parse content", err)
	}
	return doc, nil
}

func (s *Session) navigate(ctx context.Context, page playwright.Page, url string) error {
	if err := ctx.Err(); err != nil {
		return stepErr("navigate", err)
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return stepErr("navigate "+url, err)
	}
	if err := sleepCtx(ctx, s.opts.Settle); err != nil {
		return stepErr("navigate", err)
	}
	return nil
}

func closePage(p playwright.Page) {
	if err := p.Close(); err != nil {
		log.Printf("[browser] close page: %v", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
