package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *CookieSessionStore {
	return NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
}

func carryCookies(from *httptest.ResponseRecorder, to *http.Request) {
	for _, cookie := range from.Result().Cookies() {
		to.AddCookie(cookie)
	}
}

func TestCartID_StableAcrossRequests(t *testing.T) {
	store := newTestStore()

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id, err := store.CartID(first, req)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(first, next)
	again, err := store.CartID(httptest.NewRecorder(), next)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestSessionCartStorage_RoundTrip(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	storage := store.CartStorage(w, req)

	_, found, err := storage.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, storage.Set(ctx, CartStorageKey, `[{"productId":"p1","unitPrice":"3","quantity":2}]`))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(w, next)
	w2 := httptest.NewRecorder()
	storage = store.CartStorage(w2, next)

	value, found, err := storage.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"productId":"p1","unitPrice":"3","quantity":2}]`, value)

	require.NoError(t, storage.Delete(ctx, CartStorageKey))

	last := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(w2, last)
	_, found, err = store.CartStorage(httptest.NewRecorder(), last).Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionCartStorage_TamperedCookieIsAbsent(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})

	_, found, err := store.CartStorage(httptest.NewRecorder(), req).Get(context.Background(), CartStorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}
