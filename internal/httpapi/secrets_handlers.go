package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/zalando/go-keyring"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

func (h SecretsHandler) SetBoardPassword(w http.ResponseWriter, r *http.Request) {
	var req setBoardPasswordReq
	if !decodeBody(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		cfg := h.CfgVal.Load().(config.Config)
		email = cfg.Browser.Account
	}
	if err := secrets.SetBoardPassword(email, req.Password); err != nil {
		WriteError(w, r, http.StatusBadRequest, "store_failed", "failed to store password: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBoardPassword forgets the stored password of ?email=, defaulting to
// browser.account. Deleting a password that was never stored is not an error.
func (h SecretsHandler) DeleteBoardPassword(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		cfg := h.CfgVal.Load().(config.Config)
		email = cfg.Browser.Account
	}
	if email == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "email is required (or set browser.account)")
		return
	}
	if err := secrets.DeleteBoardPassword(email); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		WriteError(w, r, http.StatusInternalServerError, "keyring_failed", "failed to delete password: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
