package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "storefront-session"

	cartIDSessionKey = "cartID"

	// CartStorageKey is where the cookie-backed cart record lives inside the
	// session.
	CartStorageKey = "cart"
)

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(7 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession never fails: a cookie that cannot be decoded yields a fresh
// session, which is the same thing as an absent cart.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil && session == nil {
		session = sessions.NewSession(c.store, sessionCookieName)
		session.Options = c.store.Options
		session.IsNew = true
	}
	return session
}

// CartID returns the cart id bound to the session, assigning a new one on
// first access.
func (c *CookieSessionStore) CartID(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)

	if cartID, ok := session.Values[cartIDSessionKey].(string); ok && cartID != "" {
		return cartID, nil
	}

	cartID := uuid.New().String()
	session.Values[cartIDSessionKey] = cartID
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return cartID, nil
}

// CartStorage exposes the session as durable cart storage for one request.
func (c *CookieSessionStore) CartStorage(w http.ResponseWriter, r *http.Request) *SessionCartStorage {
	return &SessionCartStorage{sessions: c, w: w, r: r}
}

type SessionCartStorage struct {
	sessions *CookieSessionStore
	w        http.ResponseWriter
	r        *http.Request
}

func (s *SessionCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	session := s.sessions.getSession(s.r)
	raw, ok := session.Values[key]
	if !ok {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		// a non-string value is unparseable cart data
		return "", true, nil
	}
	return value, true, nil
}

func (s *SessionCartStorage) Set(ctx context.Context, key, value string) error {
	session := s.sessions.getSession(s.r)
	session.Values[key] = value
	return session.Save(s.r, s.w)
}

func (s *SessionCartStorage) Delete(ctx context.Context, key string) error {
	session := s.sessions.getSession(s.r)
	delete(session.Values, key)
	return session.Save(s.r, s.w)
}
