// Package session is a minimal in-memory, cookie-keyed session store. All
// durable state lives in Salesforce; losing sessions on restart just
// forces a re-login.
package session

import (
	"net/http"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/dyncan/data-bi-directional-sync/types"
)

const CookieName = "relay_session"

type Session struct {
	ID        string
	Auth      *types.AuthContext
	Identity  *types.Identity
	CreatedAt time.Time
}

type Store struct {
	sessions map[string]*Session
	mutex    *sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		mutex:    &sync.RWMutex{},
	}
}

// New creates a session and sets its cookie on the response
func (s *Store) New(w http.ResponseWriter) *Session {
	sess := &Session{
		ID:        uuid.NewV4().String(),
		CreatedAt: time.Now().UTC(),
	}

	s.mutex.Lock()
	s.sessions[sess.ID] = sess
	s.mutex.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// Get resolves the session for a request, if any
func (s *Store) Get(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, ok := s.sessions[cookie.Value]
	return sess, ok
}

// Update stores the authenticated context on an existing session
func (s *Store) Update(sess *Session) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sessions[sess.ID] = sess
}

// Destroy drops the session and expires its cookie. Destroying an unknown
// session is a no-op.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return
	}

	s.mutex.Lock()
	delete(s.sessions, cookie.Value)
	s.mutex.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.sessions)
}
