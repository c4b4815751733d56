package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/ysakata/member-api/internal/interface/http"
)

// MasterDataModule wires the public lookup routes: GET /api/master-data and
// GET /api/health.
type MasterDataModule struct {
	Handler *handlers.MasterDataHandler
}

func NewMasterDataModule(h *handlers.MasterDataHandler) *MasterDataModule {
	return &MasterDataModule{Handler: h}
}

func (m *MasterDataModule) Register(rg *gin.RouterGroup) {
	rg.GET("/master-data", m.Handler.Get)
	rg.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
