package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/payments"
	"estiloplus-backend/internal/services"
)

type WebhookHandler struct {
	paymentsClient *payments.Client
	checkout       *services.CheckoutService
}

func NewWebhookHandler(paymentsClient *payments.Client, checkout *services.CheckoutService) *WebhookHandler {
	return &WebhookHandler{
		paymentsClient: paymentsClient,
		checkout:       checkout,
	}
}

// HandleStripeWebhook godoc
// @Summary     Stripe webhook receiver
// @Description Verifies the event signature against the raw body and settles completed checkout sessions. Other event types are acknowledged and ignored.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]bool
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	if h.paymentsClient == nil || h.checkout == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "payments not available"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read request body"})
		return
	}

	event, err := h.paymentsClient.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid webhook signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		session, err := payments.ParseCheckoutSession(event)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid checkout session payload"})
			return
		}
		if err := h.checkout.HandleCheckoutCompleted(session.ID, session.AmountTotal, session.Metadata); err != nil {
			// Non-2xx makes Stripe redeliver; the receipt insert keeps the
			// retry from double crediting.
			log.Printf("Failed to settle checkout session %s: %v", session.ID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process event"})
			return
		}
	default:
		log.Printf("Ignoring Stripe event type %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
