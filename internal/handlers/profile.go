package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

type ProfileHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProfileHandler(dbClient *supabase.DatabaseClient) *ProfileHandler {
	return &ProfileHandler{dbClient: dbClient}
}

// UploadProfilePhoto godoc
// @Summary     Set the profile photo
// @Description Stores the photo URL and debits 5 credits in one statement. Fails with 402 when the balance is short.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProfilePhotoRequest true "Photo URL"
// @Success     200 {object} models.ProfilePhotoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/upload-profile-photo [post]
func (h *ProfileHandler) UploadProfilePhoto(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.ProfilePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userId inválido"})
		return
	}

	if req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "imageUrl é obrigatória"})
		return
	}

	remaining, err := h.dbClient.SetProfilePhoto(userID, req.ImageURL)
	if err != nil {
		if errors.Is(err, supabase.ErrInsufficientCredits) {
			current, creditsErr := h.dbClient.GetCredits(userID)
			if creditsErr != nil {
				if errors.Is(creditsErr, sql.ErrNoRows) {
					c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Usuário não encontrado"})
					return
				}
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error:   "failed to get credits",
					Message: creditsErr.Error(),
				})
				return
			}
			c.JSON(http.StatusPaymentRequired, models.ErrorResponse{
				Error:    "Créditos insuficientes. Compre mais créditos para continuar.",
				Required: models.ProfilePhotoCost,
				Current:  current,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update profile photo",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProfilePhotoResponse{
		Success:          true,
		CreditsRemaining: remaining,
		ProfileImageURL:  req.ImageURL,
	})
}
