package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenancy/pkg/cookie"
)

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults and domain", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithDomain("shop.test"), cookie.WithSecure(true))
		w := httptest.NewRecorder()
		expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

		require.NoError(t, m.Set(w, "access_token", "abc", expires))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "access_token", c.Name)
		assert.Equal(t, "abc", c.Value)
		assert.Equal(t, "shop.test", c.Domain)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.True(t, expires.Equal(c.Expires))
	})

	t.Run("dotless domain stays host-only", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithDomain("localhost"))
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "a", "b", time.Time{}))

		assert.Empty(t, w.Result().Cookies()[0].Domain)
	})

	t.Run("per call options do not leak", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "a", "1", time.Time{}, cookie.WithPath("/tenant")))
		require.NoError(t, m.Set(w, "b", "2", time.Time{}))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, "/tenant", cookies[0].Path)
		assert.Equal(t, "/", cookies[1].Path)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		err := cookie.New().Set(httptest.NewRecorder(), "", "x", time.Time{})
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "access_token", Value: "abc"})
	v, err := m.Get(r, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "access_token")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithDomain("shop.test"))
	w := httptest.NewRecorder()
	m.Delete(w, "access_token")

	c := w.Result().Cookies()[0]
	assert.Equal(t, "access_token", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, "shop.test", c.Domain)
	assert.Less(t, c.MaxAge, 0)
}
