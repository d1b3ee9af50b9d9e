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

type CreditsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewCreditsHandler(dbClient *supabase.DatabaseClient) *CreditsHandler {
	return &CreditsHandler{dbClient: dbClient}
}

// GetUserCredits godoc
// @Summary     Get a user's credit balance
// @Tags        credits
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       userId path string true "User ID"
// @Success     200 {object} models.CreditsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/user-credits/{userId} [get]
func (h *CreditsHandler) GetUserCredits(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	credits, err := h.dbClient.GetCredits(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get credits",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.CreditsResponse{Credits: credits})
}

// GetPurchaseHistory godoc
// @Summary     List a user's credit purchases
// @Description Returns purchase receipts newest first, manual grants included
// @Tags        credits
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       userId path string true "User ID"
// @Success     200 {array} models.CreditPurchaseResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/purchase-history/{userId} [get]
func (h *CreditsHandler) GetPurchaseHistory(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	purchases, err := h.dbClient.ListPurchases(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list purchases",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.CreditPurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		response = append(response, models.NewCreditPurchaseResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

// ListCreditPackages godoc
// @Summary     List purchasable credit packages
// @Description Returns active packages, cheapest first
// @Tags        credits
// @Accept      json
// @Produce     json
// @Success     200 {array} models.CreditPackageResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/credit-packages [get]
func (h *CreditsHandler) ListCreditPackages(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	packages, err := h.dbClient.ListActivePackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list credit packages",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.CreditPackageResponse, 0, len(packages))
	for _, p := range packages {
		response = append(response, models.NewCreditPackageResponse(p))
	}

	c.JSON(http.StatusOK, response)
}
