package handlers_test

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"estiloplus-backend/internal/handlers"
	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/payments"
	"estiloplus-backend/internal/services"
)

type noopCheckoutStore struct{}

func (noopCheckoutStore) GetUser(userID uuid.UUID) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (noopCheckoutStore) GetPackage(packageID uuid.UUID) (*models.CreditPackage, error) {
	return nil, sql.ErrNoRows
}

func (noopCheckoutStore) SetStripeCustomerID(userID uuid.UUID, customerID string) error {
	return nil
}

func (noopCheckoutStore) GrantPurchase(userID uuid.UUID, credits int, amountPaid int64, sessionID string) (bool, error) {
	return true, nil
}

type noopProvider struct{}

func (noopProvider) CreateCustomer(email, userID string) (string, error) {
	return "cus_noop", nil
}

func (noopProvider) CreateCheckoutSession(req payments.CheckoutSessionRequest) (string, error) {
	return "https://checkout.stripe.com/pay/cs_noop", nil
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	paymentsClient := payments.NewClient("sk_test_dummy", "whsec_dummy")
	checkout := services.NewCheckoutService(&noopCheckoutStore{}, &noopProvider{}, "https://estiloplus.app")
	handler := handlers.NewWebhookHandler(paymentsClient, checkout)

	router := gin.New()
	router.POST("/api/webhooks/stripe", handler.HandleStripeWebhook)

	payload := []byte(`{"type":"checkout.session.completed"}`)
	req, _ := http.NewRequest("POST", "/api/webhooks/stripe", bytes.NewBuffer(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid webhook signature")
}
