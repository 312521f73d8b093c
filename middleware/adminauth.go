package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// RequireAdminPassword gates the admin surface behind the shared kiosk
// password supplied in the X-Admin-Password header. Plain equality, no
// lockout: the kiosk admin panel is a trusted back-of-house tool.
func RequireAdminPassword(c *gin.Context) {
	password := c.GetHeader("X-Admin-Password")
	if password == "" || password != os.Getenv("ADMIN_PASSWORD") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}
	c.Next()
}
