package middlewares

import (
	"net/http"
	"net/url"

	"Inkwell/api/auth"
	"Inkwell/api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const loginPath = "/auth/login/"

// LoginRequiredMiddleware guards write and feed routes. Callers without a
// valid session are bounced to the login flow with the original path
// preserved in the next parameter, so they land back where they started
// after authenticating.
func LoginRequiredMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ExtractTokenID(c.Request)
		if err != nil {
			redirectToLogin(c)
			return
		}

		var user models.User
		if err := db.Select("id").First(&user, userID).Error; err != nil {
			redirectToLogin(c)
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.Path
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(next))
	c.Abort()
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
