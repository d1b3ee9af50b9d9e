package services_test

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/payments"
	"estiloplus-backend/internal/services"
)

type fakeCheckoutStore struct {
	user           *models.User
	pkg            *models.CreditPackage
	savedCustomer  string
	grantedSession map[string]bool
	grantCount     int
}

func (f *fakeCheckoutStore) GetUser(userID uuid.UUID) (*models.User, error) {
	if f.user == nil {
		return nil, fmt.Errorf("failed to get user: %w", sql.ErrNoRows)
	}
	return f.user, nil
}

func (f *fakeCheckoutStore) GetPackage(packageID uuid.UUID) (*models.CreditPackage, error) {
	if f.pkg == nil {
		return nil, fmt.Errorf("failed to get package: %w", sql.ErrNoRows)
	}
	return f.pkg, nil
}

func (f *fakeCheckoutStore) SetStripeCustomerID(userID uuid.UUID, customerID string) error {
	f.savedCustomer = customerID
	return nil
}

func (f *fakeCheckoutStore) GrantPurchase(userID uuid.UUID, credits int, amountPaid int64, sessionID string) (bool, error) {
	if f.grantedSession == nil {
		f.grantedSession = make(map[string]bool)
	}
	if f.grantedSession[sessionID] {
		return false, nil
	}
	f.grantedSession[sessionID] = true
	f.grantCount++
	return true, nil
}

type fakeProvider struct {
	customersCreated int
	lastRequest      payments.CheckoutSessionRequest
}

func (f *fakeProvider) CreateCustomer(email, userID string) (string, error) {
	f.customersCreated++
	return "cus_test123", nil
}

func (f *fakeProvider) CreateCheckoutSession(req payments.CheckoutSessionRequest) (string, error) {
	f.lastRequest = req
	return "https://checkout.stripe.com/pay/cs_test", nil
}

func newTestPackage() *models.CreditPackage {
	return &models.CreditPackage{
		ID:           uuid.New(),
		Name:         "Pacote Básico",
		Credits:      50,
		PriceInCents: 1990,
		IsActive:     true,
	}
}

func TestCreateSession_CreatesCustomerOnFirstPurchase(t *testing.T) {
	store := &fakeCheckoutStore{user: newTestUser(0), pkg: newTestPackage()}
	provider := &fakeProvider{}

	svc := services.NewCheckoutService(store, provider, "https://estiloplus.app")
	url, err := svc.CreateSession(store.user.ID, store.pkg.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", url)
	assert.Equal(t, 1, provider.customersCreated)
	assert.Equal(t, "cus_test123", store.savedCustomer)

	req := provider.lastRequest
	assert.Equal(t, "cus_test123", req.CustomerID)
	assert.Equal(t, store.pkg.Name, req.Name)
	assert.Equal(t, int64(1990), req.UnitAmount)
	assert.Equal(t, "https://estiloplus.app/client?payment=success", req.SuccessURL)
	assert.Equal(t, "https://estiloplus.app/client?payment=cancelled", req.CancelURL)
	assert.Equal(t, store.user.ID.String(), req.Metadata["userId"])
	assert.Equal(t, store.pkg.ID.String(), req.Metadata["packageId"])
	assert.Equal(t, "50", req.Metadata["credits"])
}

func TestCreateSession_ReusesExistingCustomer(t *testing.T) {
	user := newTestUser(0)
	user.StripeCustomerID = sql.NullString{String: "cus_existing", Valid: true}
	store := &fakeCheckoutStore{user: user, pkg: newTestPackage()}
	provider := &fakeProvider{}

	svc := services.NewCheckoutService(store, provider, "https://estiloplus.app")
	_, err := svc.CreateSession(user.ID, store.pkg.ID)

	require.NoError(t, err)
	assert.Zero(t, provider.customersCreated)
	assert.Equal(t, "cus_existing", provider.lastRequest.CustomerID)
}

func TestCreateSession_PackageNotFound(t *testing.T) {
	store := &fakeCheckoutStore{user: newTestUser(0)}
	svc := services.NewCheckoutService(store, &fakeProvider{}, "https://estiloplus.app")

	_, err := svc.CreateSession(store.user.ID, uuid.New())

	assert.ErrorIs(t, err, services.ErrPackageNotFound)
}

func TestHandleCheckoutCompleted_GrantsOnce(t *testing.T) {
	store := &fakeCheckoutStore{}
	svc := services.NewCheckoutService(store, &fakeProvider{}, "https://estiloplus.app")

	userID := uuid.New()
	metadata := map[string]string{
		"userId":    userID.String(),
		"packageId": uuid.New().String(),
		"credits":   "50",
	}

	require.NoError(t, svc.HandleCheckoutCompleted("cs_test_1", 1990, metadata))
	require.NoError(t, svc.HandleCheckoutCompleted("cs_test_1", 1990, metadata))

	assert.Equal(t, 1, store.grantCount)
}

func TestHandleCheckoutCompleted_InvalidMetadata(t *testing.T) {
	store := &fakeCheckoutStore{}
	svc := services.NewCheckoutService(store, &fakeProvider{}, "https://estiloplus.app")

	err := svc.HandleCheckoutCompleted("cs_test_2", 1990, map[string]string{
		"userId":  "not-a-uuid",
		"credits": "50",
	})
	assert.Error(t, err)

	err = svc.HandleCheckoutCompleted("cs_test_3", 1990, map[string]string{
		"userId":  uuid.New().String(),
		"credits": "zero",
	})
	assert.Error(t, err)

	assert.Zero(t, store.grantCount)
}
