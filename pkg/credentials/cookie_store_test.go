package credentials_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/authkit/pkg/cookiejar"
	"github.com/stocklane/authkit/pkg/credentials"
)

func newRequestWithCookies(cookies map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for name, value := range cookies {
		r.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return r
}

func TestCookieStore_ReadsRequestCookies(t *testing.T) {
	t.Parallel()
	jar := cookiejar.New()
	r := newRequestWithCookies(map[string]string{"access_token": "abc"})
	store := credentials.NewCookieStore(jar, httptest.NewRecorder(), r)

	got, ok := store.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "abc", got)

	_, ok = store.Get("refresh_token")
	assert.False(t, ok)
}

func TestCookieStore_WritesVisibleWithinRequest(t *testing.T) {
	t.Parallel()
	jar := cookiejar.New()
	w := httptest.NewRecorder()
	r := newRequestWithCookies(map[string]string{"access_token": "stale"})
	store := credentials.NewCookieStore(jar, w, r)

	store.Set("access_token", "fresh", time.Minute)

	got, ok := store.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "fresh", got, "a token written mid-request must shadow the request cookie")

	headers := w.Header().Values("Set-Cookie")
	require.Len(t, headers, 1)
	assert.Contains(t, headers[0], "access_token=fresh")
	assert.Contains(t, headers[0], "Max-Age=60")
}

func TestCookieStore_DeleteShadowsRequestCookie(t *testing.T) {
	t.Parallel()
	jar := cookiejar.New()
	w := httptest.NewRecorder()
	r := newRequestWithCookies(map[string]string{"refresh_token": "r1"})
	store := credentials.NewCookieStore(jar, w, r)

	store.Delete("refresh_token")

	_, ok := store.Get("refresh_token")
	assert.False(t, ok, "a deleted cookie must be absent for the rest of the request")

	headers := w.Header().Values("Set-Cookie")
	require.Len(t, headers, 1)
	assert.Contains(t, headers[0], "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
}

func TestMemoryStore_TTL(t *testing.T) {
	t.Parallel()
	store := credentials.NewMemoryStore()

	store.Set("k", "v", 10*time.Millisecond)
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	time.Sleep(20 * time.Millisecond)
	_, ok = store.Get("k")
	assert.False(t, ok)
}

func TestMemoryStore_NoTTL(t *testing.T) {
	t.Parallel()
	store := credentials.NewMemoryStore()

	store.Set("k", "v", 0)
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	store.Delete("k")
	_, ok = store.Get("k")
	assert.False(t, ok)
}
