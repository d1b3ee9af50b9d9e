package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/config"
	"estiloplus-backend/internal/middleware"
	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
	cfg      *config.Config
}

func NewCheckoutHandler(checkout *services.CheckoutService, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		cfg:      cfg,
	}
}

// CreateCheckoutSession godoc
// @Summary     Start a credit package purchase
// @Description Opens a Stripe hosted checkout for the package and returns the redirect URL
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CheckoutRequest true "Package to buy"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/create-checkout-session [post]
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	if h.checkout == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "payments not available"})
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "packageId inválido"})
		return
	}

	userIDStr := req.UserID
	if userIDStr == "" {
		if v, exists := c.Get(middleware.UserIDKey); exists {
			userIDStr, _ = v.(string)
		}
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userId inválido"})
		return
	}

	url, err := h.checkout.CreateSession(userID, packageID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Pacote não encontrado"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Usuário não encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to create checkout session",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{URL: url})
}

// GetPublishableKey godoc
// @Summary     Stripe publishable key
// @Description Returns the publishable key the web client needs for Stripe.js
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Success     200 {object} models.PublishableKeyResponse
// @Router      /api/stripe/publishable-key [get]
func (h *CheckoutHandler) GetPublishableKey(c *gin.Context) {
	c.JSON(http.StatusOK, models.PublishableKeyResponse{
		PublishableKey: h.cfg.StripePublishableKey,
	})
}
