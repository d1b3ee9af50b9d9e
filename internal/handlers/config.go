package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estiloplus-backend/internal/config"
	"estiloplus-backend/internal/models"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GetConfig godoc
// @Summary     Frontend configuration
// @Description Returns the Supabase URL and anon key the web client needs to initialize
// @Tags        config
// @Accept      json
// @Produce     json
// @Success     200 {object} models.ConfigResponse
// @Router      /api/config [get]
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, models.ConfigResponse{
		SupabaseURL:     h.cfg.SupabaseURL,
		SupabaseAnonKey: h.cfg.SupabaseAnonKey,
	})
}
