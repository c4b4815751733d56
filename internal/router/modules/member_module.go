package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ysakata/member-api/internal/interface/http"
	"github.com/ysakata/member-api/internal/interface/middleware"
	"github.com/ysakata/member-api/pkg/helpers"
)

// MemberModule wires the member lifecycle routes.
// Public: GET /api/member/validate-email-token, POST /api/member/provisional-register,
// POST /api/member/register, POST /api/member/login
// Protected: POST /api/member/logout, GET /api/member/auth
type MemberModule struct {
	Handler *handlers.MemberHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewMemberModule(h *handlers.MemberHandler, jwt *helpers.JWTManager, rdb *redis.Client) *MemberModule {
	return &MemberModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *MemberModule) Register(rg *gin.RouterGroup) {
	member := rg.Group("/member")

	member.GET("/validate-email-token", m.Handler.ValidateEmailToken)
	member.POST("/provisional-register", m.Handler.ProvisionalRegister)
	member.POST("/register", m.Handler.Register)
	member.POST("/login", m.Handler.Login)

	auth := member.Group("/")
	auth.Use(middleware.MemberAuth(m.Redis, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/auth", m.Handler.CheckAuth)
	}
}
