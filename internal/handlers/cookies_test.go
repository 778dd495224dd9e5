package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobportal/internal/config"
)

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("lax"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("  Lax "))
	assert.Equal(t, http.SameSiteStrictMode, parseSameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, parseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("bogus"))
}

func TestBuildTokenCookie(t *testing.T) {
	cfg := config.CookieConfig{Domain: "example.com", SameSite: "strict", Secure: true}

	c := buildTokenCookie(cfg, refreshCookieName, "tok", time.Hour)
	assert.Equal(t, "jwt", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.True(t, c.Expires.After(time.Now()))
}

func TestBuildTokenCookie_EmptyDomainOmitted(t *testing.T) {
	c := buildTokenCookie(config.CookieConfig{SameSite: "lax"}, resetCookieName, "tok", time.Minute)
	assert.Empty(t, c.Domain)
	assert.Equal(t, "resetToken", c.Name)
}

func TestBuildDeletionCookie(t *testing.T) {
	cfg := config.CookieConfig{Domain: "example.com", SameSite: "strict", Secure: true}

	c := buildDeletionCookie(cfg, refreshCookieName)
	assert.Equal(t, "jwt", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.False(t, c.Expires.After(time.Unix(1, 0)))
	// атрибуты должны совпадать с исходной кукой, иначе браузер не удалит
	assert.Equal(t, "example.com", c.Domain)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}
