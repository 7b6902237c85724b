package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP keys rate limits and logs. The dashboard sits behind a single proxy
// on the hosting platform, so the first forwarded address is the browser.
func clientIP(c *gin.Context) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-IP"} {
		first, _, _ := strings.Cut(c.GetHeader(header), ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
