package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync/atomic"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/secrets"
)

type InboxHandler struct {
	CfgVal      *atomic.Value // config.Config
	Hub         *events.Hub
	ScrapeInbox func(ctx context.Context, email, password string) ([]domain.InboxMessage, error)
}

// Message logs into the board account and returns the messages inbox. The
// email defaults to browser.account, the password to the keychain entry.
func (h InboxHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if h.ScrapeInbox == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "browser_unavailable", "browser session is not available on this engine")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		cfg := h.CfgVal.Load().(config.Config)
		email = cfg.Browser.Account
	}
	if email == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "email is required (or set browser.account)")
		return
	}

	password, err := secrets.ResolveBoardPassword(email, req.Password)
	if errors.Is(err, secrets.ErrNoPassword) {
		WriteError(w, r, http.StatusBadRequest, "missing_password", err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_failed", err.Error())
		return
	}

	if req.Message != "" {
		log.Printf("[inbox] request_id=%s message_len=%d", RequestIDFrom(r.Context()), len(req.Message))
	}

	msgs, err := h.ScrapeInbox(r.Context(), email, password)
	if err != nil {
		WriteEngineError(w, r, err)
		return
	}
	if msgs == nil {
		msgs = []domain.InboxMessage{}
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeInboxScraped, 1, events.InboxScraped{
		Account: email, Messages: len(msgs),
	}))
	writeJSON(w, messageResponse{Status: "Message sent successfully", Messages: msgs})
}
