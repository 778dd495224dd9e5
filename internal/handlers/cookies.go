package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"jobportal/internal/config"
)

// имена кук фиксированы контрактом фронтенда
const (
	refreshCookieName = "jwt"
	resetCookieName   = "resetToken"
)

// parseSameSite конвертирует строку из конфига в http.SameSite.
// Принимает: "", "lax", "strict", "none" (без учёта регистра). Default: Lax.
func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		log.Printf("cookie: unknown SameSite=%q, falling back to Lax", s)
		return http.SameSiteLaxMode
	}
}

// buildTokenCookie — httpOnly-кука для refresh/reset токена;
// флаги безопасности из конфига, не из кода
func buildTokenCookie(cfg config.CookieConfig, name, value string, ttl time.Duration) *http.Cookie {
	ss := parseSameSite(cfg.SameSite)
	if ss == http.SameSiteNoneMode && !cfg.Secure {
		// браузеры могут отвергнуть SameSite=None без Secure
		log.Printf("cookie: SameSite=None without Secure; some browsers may reject the cookie (domain=%q)", cfg.Domain)
	}
	now := time.Now().UTC()

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: ss,
	}
	if cfg.Domain != "" {
		c.Domain = cfg.Domain
	}
	return c
}

// buildDeletionCookie — кука, затирающая токен в браузере.
// Name/Domain/SameSite/Secure должны совпадать с исходной, иначе браузер не удалит.
func buildDeletionCookie(cfg config.CookieConfig, name string) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(cfg.SameSite),
	}
	if cfg.Domain != "" {
		c.Domain = cfg.Domain
	}
	return c
}
