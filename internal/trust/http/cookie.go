package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civicgate/trustplane/internal/config"
)

// SetTrustTokenCookie attaches the trust token to the response as an
// HttpOnly, SameSite=Strict session cookie. The token never reaches page
// scripts; browsers replay it and the gateway turns it into signed headers.
func SetTrustTokenCookie(c *gin.Context, cfg *config.Config, token string, expiration time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.TrustTokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.TrustTokenCookieDomain,
		MaxAge:   int(expiration.Seconds()),
		Secure:   cfg.TrustTokenCookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearTrustTokenCookie expires the trust token cookie. Used by logout.
func ClearTrustTokenCookie(c *gin.Context, cfg *config.Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.TrustTokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.TrustTokenCookieDomain,
		MaxAge:   -1,
		Secure:   cfg.TrustTokenCookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// TrustTokenFromRequest extracts the trust token from the request cookie.
// Returns an empty string when the cookie is absent.
func TrustTokenFromRequest(c *gin.Context, cfg *config.Config) string {
	cookie, err := c.Request.Cookie(cfg.TrustTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
