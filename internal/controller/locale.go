package controller

import (
	"strings"

	"learnhub_backend/internal/i18n"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// requestLocale picks the locale for a request: explicit query parameter,
// then the first Accept-Language entry, then the platform default.
func requestLocale(c *gin.Context) string {
	if locale := c.Query("locale"); locale != "" {
		return locale
	}
	if header := c.GetHeader("Accept-Language"); header != "" {
		first := strings.SplitN(header, ",", 2)[0]
		if first = strings.TrimSpace(strings.SplitN(first, ";", 2)[0]); first != "" {
			return first
		}
	}
	return i18n.DefaultLocale()
}

// requesterID returns the authenticated user id, or 0 for anonymous.
func requesterID(c *gin.Context) uint {
	if claims := util.GetUserFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// requesterPrivileged reports whether the authenticated user bypasses
// gating.
func requesterPrivileged(c *gin.Context) bool {
	claims := util.GetUserFromContext(c)
	return claims != nil && claims.Role.IsPrivileged()
}
