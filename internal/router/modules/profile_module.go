package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ysakata/member-api/internal/interface/http"
	"github.com/ysakata/member-api/internal/interface/middleware"
	"github.com/ysakata/member-api/pkg/helpers"
)

// ProfileModule wires the authenticated self-service routes under
// /api/member/profile.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	profile := rg.Group("/member/profile")
	profile.Use(middleware.MemberAuth(m.Redis, m.JWT))
	{
		profile.PUT("", m.Handler.UpdateProfile)
		profile.POST("/token", m.Handler.SendUpdateEmailToken)
		profile.PATCH("/mail", m.Handler.UpdateEmail)
		profile.PATCH("/password", m.Handler.UpdatePassword)
	}
}
