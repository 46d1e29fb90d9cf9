package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/dyncan/data-bi-directional-sync/session"
	"github.com/dyncan/data-bi-directional-sync/types"
)

func (a *API) loginHandler(rw http.ResponseWriter, r *http.Request) {
	http.Redirect(rw, r, a.SForce.AuthorizeURL(""), http.StatusFound)
}

// callbackHandler is only ever called by Salesforce, carrying the
// authorization code from a completed login
func (a *API) callbackHandler(rw http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeErrorJSON(http.StatusInternalServerError,
			"failed to get authorization code from server callback", nil, rw)
		return
	}

	token, err := a.SForce.ExchangeCode(r.Context(), code)
	if err != nil {
		a.log.Errorf("Salesforce authorization error: %s", err)
		writeErrorJSON(http.StatusInternalServerError, "authorization failed", err, rw)
		return
	}

	identity, err := a.SForce.Identity(r.Context(), token)
	if err != nil {
		a.log.Errorf("Salesforce identity error: %s", err)
		writeErrorJSON(http.StatusInternalServerError, "identity lookup failed", err, rw)
		return
	}

	// Auth data stays server-side; the browser only ever sees the
	// session cookie
	sess := a.Sessions.New(rw)
	sess.Auth = &types.AuthContext{
		AccessToken:    token.AccessToken,
		InstanceURL:    token.InstanceURL,
		OrganizationID: identity.OrganizationID,
		Username:       identity.Username,
	}
	sess.Identity = identity
	a.Sessions.Update(sess)

	http.Redirect(rw, r, "/", http.StatusFound)
}

func (a *API) whoamiHandler(rw http.ResponseWriter, r *http.Request) {
	sess, ok := a.activeSession(rw, r)
	if !ok {
		return
	}

	// Hand the freshest auth context to the relay side; it decides
	// whether an instance is already running
	if a.StartRelay != nil {
		a.StartRelay(sess.Auth, sess.Identity)
	}

	WriteJSON(http.StatusOK, sess.Identity, rw)
}

func (a *API) logoutHandler(rw http.ResponseWriter, r *http.Request) {
	sess, ok := a.activeSession(rw, r)
	if !ok {
		return
	}

	if err := a.SForce.Revoke(r.Context(), sess.Auth); err != nil {
		a.log.Errorf("Salesforce OAuth revoke error: %s", err)
		writeErrorJSON(http.StatusInternalServerError, "revoke failed", err, rw)
		return
	}

	a.Sessions.Destroy(rw, r)

	http.Redirect(rw, r, "/", http.StatusFound)
}

func (a *API) contactHandler(rw http.ResponseWriter, r *http.Request, params httprouter.Params) {
	sess, ok := a.activeSession(rw, r)
	if !ok {
		return
	}

	result, err := a.SForce.QueryContact(r.Context(), sess.Auth, params.ByName("contactId"))
	if err != nil {
		a.log.Errorf("Salesforce data API error: %s", err)
		writeErrorJSON(http.StatusInternalServerError, "contact lookup failed", err, rw)
		return
	}

	WriteJSON(http.StatusOK, result, rw)
}

func (a *API) wsHandler(rw http.ResponseWriter, r *http.Request) {
	sess, ok := a.activeSession(rw, r)
	if !ok {
		return
	}

	a.Hub.ServeWS(rw, r, sess.Identity.UserID)
}

// activeSession resolves an authenticated session or 401s the request
func (a *API) activeSession(rw http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := a.Sessions.Get(r)
	if !ok || sess.Auth == nil {
		writeErrorJSON(http.StatusUnauthorized, "no active session", nil, rw)
		return nil, false
	}

	return sess, true
}
