package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ysakata/member-api/internal/application"
	"github.com/ysakata/member-api/pkg/helpers"
	"github.com/ysakata/member-api/pkg/response"
)

// CtxPrincipalKey holds the resolved principal in the Gin context.
const CtxPrincipalKey = "principal"

// MemberAuth validates the session cookie and ensures an active member
// session exists in Redis. The guard claim is resolved here, once; tokens
// minted for any other principal namespace never reach a handler. The sid
// comparison is what invalidates sessions after rotation or logout.
func MemberAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortUnauthorized(c)
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			response.AbortUnauthorized(c)
			return
		}
		if claims.Guard != helpers.GuardMember {
			response.AbortUnauthorized(c)
			return
		}

		key := helpers.MemberSessionKey(claims.UserID)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.AbortUnauthorized(c)
			return
		}

		c.Set(CtxPrincipalKey, application.Principal{
			UserID: claims.UserID,
			Email:  data["email"],
			Guard:  claims.Guard,
		})
		c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal set by MemberAuth.
func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return application.Principal{}, false
	}
	pr, ok := v.(application.Principal)
	return pr, ok
}
