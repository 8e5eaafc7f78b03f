package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "flash_session"
	SessionIDKey  = "sessionID"
)

// FlashSession выдаёт браузеру идентификатор сессии для flash-сообщений.
// Значение cookie, не являющееся uuid, заменяется новым.
func FlashSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err == nil {
			if _, err = uuid.Parse(id); err != nil {
				id = ""
			}
		}

		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
