package store

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

const tokenCookieName = "auth_token"

// CookieStore mirrors the auth token into a cookie jar so the HTTP layer
// sends it alongside the Authorization header, the same way the routing
// middleware of the hosting app reads it. SameSite=Strict, Secure only on
// HTTPS origins, 7-day expiry by default.
type CookieStore struct {
	jar  http.CookieJar
	base *url.URL
	ttl  time.Duration
	now  func() time.Time
}

func NewCookieStore(baseURL string, ttl time.Duration) (*CookieStore, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &CookieStore{
		jar:  jar,
		base: base,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

// Jar exposes the jar for installation on an http.Client.
func (s *CookieStore) Jar() http.CookieJar {
	return s.jar
}

// SetToken implements TokenStore.
func (s *CookieStore) SetToken(token string) error {
	s.jar.SetCookies(s.base, []*http.Cookie{{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(s.ttl),
		SameSite: http.SameSiteStrictMode,
		Secure:   s.base.Scheme == "https",
	}})
	return nil
}

// Token implements TokenStore.
func (s *CookieStore) Token() (string, bool) {
	for _, c := range s.jar.Cookies(s.base) {
		if c.Name == tokenCookieName && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

// ClearToken implements TokenStore.
func (s *CookieStore) ClearToken() error {
	s.jar.SetCookies(s.base, []*http.Cookie{{
		Name:   tokenCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
	return nil
}
