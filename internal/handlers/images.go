package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

type ImagesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewImagesHandler(dbClient *supabase.DatabaseClient) *ImagesHandler {
	return &ImagesHandler{dbClient: dbClient}
}

// ListGeneratedImages godoc
// @Summary     List a user's generated images
// @Description Returns generation artifacts newest first, with the source product attached when it still exists
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       userId path string true "User ID"
// @Success     200 {array} models.GeneratedImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/generated-images/{userId} [get]
func (h *ImagesHandler) ListGeneratedImages(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	images, products, err := h.dbClient.ListGeneratedImages(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list generated images",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.GeneratedImageResponse, 0, len(images))
	for _, img := range images {
		resp := models.NewGeneratedImageResponse(img)
		if img.ProductID.Valid {
			if product, ok := products[img.ProductID.UUID]; ok {
				productResp := models.NewProductResponse(product)
				resp.Product = &productResp
			}
		}
		response = append(response, resp)
	}

	c.JSON(http.StatusOK, response)
}
