// Package authn provides the session endpoints for the UI.
package authn

import (
	"net/http"
	"net/url"

	"github.com/checkdeck-io/checkdeck/internal/auth"
	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the session boundary.
type Handlers struct {
	auth *auth.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *auth.Service) *Handlers {
	return &Handlers{auth: svc}
}

// callbackRequest is the payload for POST /auth/callback.
type callbackRequest struct {
	Code string `json:"code"`
}

// localSession is what GET /auth/session returns when no provider is
// configured.
var localSession = map[string]any{"mode": "local", "user": nil}

// Session returns the current session, validated against the provider.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		common.JSON(w, http.StatusOK, localSession)
		return
	}

	session, err := h.auth.GetSession(r.Context(), r)
	if err != nil {
		common.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	common.JSON(w, http.StatusOK, session)
}

// Callback exchanges the OAuth authorization code and stores the token
// in the session cookie. Failures redirect back to /login with the
// error in the query string.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		common.BadRequest(w, "authentication is not configured")
		return
	}

	var req callbackRequest
	if err := r.ParseForm(); err == nil && r.FormValue("code") != "" {
		req.Code = r.FormValue("code")
	} else if !common.Decode(w, r, &req) {
		return
	}
	if req.Code == "" {
		h.redirectError(w, r, "missing authorization code")
		return
	}

	tokens, err := h.auth.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		h.redirectError(w, r, err.Error())
		return
	}
	if err := h.auth.SetSession(w, r, tokens.AccessToken); err != nil {
		h.redirectError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// SignOut revokes the session at the provider and clears the cookie.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), w, r); err != nil {
		common.Error(w, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handlers) redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(msg), http.StatusFound)
}
