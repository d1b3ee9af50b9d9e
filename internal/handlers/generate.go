package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/services"
	"estiloplus-backend/internal/supabase"
)

type GenerateHandler struct {
	generation *services.GenerationService
}

func NewGenerateHandler(generation *services.GenerationService) *GenerateHandler {
	return &GenerateHandler{generation: generation}
}

// TryOn godoc
// @Summary     Generate a try-on image for a catalog product
// @Description Composes the user's photo with the product's garment image. Costs 1 credit, debited only after the image is stored.
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.TryOnRequest true "Generation input"
// @Success     200 {object} models.TryOnResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/generate-try-on [post]
func (h *GenerateHandler) TryOn(c *gin.Context) {
	if h.generation == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "generation not available"})
		return
	}

	var req models.TryOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userId inválido"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "productId inválido"})
		return
	}

	if req.UserImageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userImageUrl é obrigatória"})
		return
	}

	result, err := h.generation.TryOn(c.Request.Context(), services.TryOnInput{
		UserID:       userID,
		UserImageURL: req.UserImageURL,
		ProductID:    uuid.NullUUID{UUID: productID, Valid: true},
	})
	if err != nil {
		h.respondTryOnError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TryOnResponse{
		ImageURL:         result.ImageURL,
		CreditsRemaining: result.CreditsRemaining,
	})
}

// TryOnLocal godoc
// @Summary     Generate a try-on image from a supplied garment image
// @Description Same workflow as the catalog variant, but the clothing image URL comes straight from the caller.
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.TryOnLocalRequest true "Generation input"
// @Success     200 {object} models.TryOnResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/generate-try-on-local [post]
func (h *GenerateHandler) TryOnLocal(c *gin.Context) {
	if h.generation == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "generation not available"})
		return
	}

	var req models.TryOnLocalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userId inválido"})
		return
	}

	if req.UserImageURL == "" || req.ClothingImageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userImageUrl e clothingImageUrl são obrigatórias"})
		return
	}

	result, err := h.generation.TryOn(c.Request.Context(), services.TryOnInput{
		UserID:           userID,
		UserImageURL:     req.UserImageURL,
		ClothingImageURL: req.ClothingImageURL,
	})
	if err != nil {
		h.respondTryOnError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TryOnResponse{
		ImageURL:         result.ImageURL,
		CreditsRemaining: result.CreditsRemaining,
	})
}

func (h *GenerateHandler) respondTryOnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Usuário não encontrado"})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Produto não encontrado"})
	case errors.Is(err, supabase.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{
			Error: "Créditos insuficientes. Compre mais créditos para continuar.",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Erro ao gerar imagem",
			Message: err.Error(),
		})
	}
}
