package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ysakata/member-api/internal/application"
)

type MasterDataHandler struct{}

func NewMasterDataHandler() *MasterDataHandler {
	return &MasterDataHandler{}
}

// Get serves the display enumerations used by registration and profile forms.
func (h *MasterDataHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, application.GetMasterData())
}
