package handlers_test

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estiloplus-backend/internal/handlers"
	"estiloplus-backend/internal/models"
)

// fakeAdminStore mirrors the ledger contract of the real adjustment
// primitive: clamp at zero, and a zero-paid receipt recorded in the same
// operation as a positive grant.
type fakeAdminStore struct {
	user     *models.User
	adjusts  []int
	receipts []models.CreditPurchase
}

func (f *fakeAdminStore) AdjustCredits(userID uuid.UUID, amount int) (*models.User, error) {
	if f.user == nil {
		return nil, fmt.Errorf("failed to adjust credits: %w", sql.ErrNoRows)
	}
	f.adjusts = append(f.adjusts, amount)
	f.user.Credits += amount
	if f.user.Credits < 0 {
		f.user.Credits = 0
	}
	if amount > 0 {
		f.receipts = append(f.receipts, models.CreditPurchase{
			UserID:          userID,
			Credits:         amount,
			AmountPaid:      0,
			Status:          "completed",
			StripeSessionID: fmt.Sprintf("manual_%s", uuid.New()),
		})
	}
	return f.user, nil
}

func (f *fakeAdminStore) ListUsers() ([]models.User, error) { return nil, nil }

func (f *fakeAdminStore) UpdateUser(userID uuid.UUID, name, role *string, credits *int) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) DeleteUser(userID uuid.UUID) error { return nil }

func (f *fakeAdminStore) ListStores() ([]models.Store, error) { return nil, nil }

func (f *fakeAdminStore) DeleteStore(storeID uuid.UUID) error { return nil }

func (f *fakeAdminStore) ListPackages() ([]models.CreditPackage, error) { return nil, nil }

func (f *fakeAdminStore) CreatePackage(req models.CreatePackageRequest) (*models.CreditPackage, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) UpdatePackage(packageID uuid.UUID, req models.UpdatePackageRequest) (*models.CreditPackage, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) DeletePackage(packageID uuid.UUID) error { return nil }

func (f *fakeAdminStore) GetStats() (*models.StatsResponse, error) { return &models.StatsResponse{}, nil }

func newAdminRouter(store *fakeAdminStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewAdminHandler(store, nil)

	router := gin.New()
	router.POST("/api/admin/users/:id/credits", handler.AdjustCredits)
	return router
}

func TestAdjustCredits_NegativeClampsAtZero(t *testing.T) {
	store := &fakeAdminStore{
		user: &models.User{ID: uuid.New(), Role: models.RoleClient, Credits: 3},
	}
	router := newAdminRouter(store)

	path := fmt.Sprintf("/api/admin/users/%s/credits", store.user.ID)
	w := postJSON(router, path, `{"amount":-10,"reason":"estorno"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credits":0`)
	assert.Equal(t, []int{-10}, store.adjusts)
	assert.Empty(t, store.receipts)
}

func TestAdjustCredits_PositiveWritesOneZeroPaidReceipt(t *testing.T) {
	store := &fakeAdminStore{
		user: &models.User{ID: uuid.New(), Role: models.RoleClient, Credits: 0},
	}
	router := newAdminRouter(store)

	path := fmt.Sprintf("/api/admin/users/%s/credits", store.user.ID)
	w := postJSON(router, path, `{"amount":50,"reason":"cortesia"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credits":50`)
	assert.Equal(t, []int{50}, store.adjusts)

	require.Len(t, store.receipts, 1)
	receipt := store.receipts[0]
	assert.Equal(t, store.user.ID, receipt.UserID)
	assert.Equal(t, 50, receipt.Credits)
	assert.Zero(t, receipt.AmountPaid)
	assert.Contains(t, receipt.StripeSessionID, "manual_")
}

func TestAdjustCredits_UserNotFound(t *testing.T) {
	router := newAdminRouter(&fakeAdminStore{})

	path := fmt.Sprintf("/api/admin/users/%s/credits", uuid.New())
	w := postJSON(router, path, `{"amount":10,"reason":"cortesia"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Usuário não encontrado")
}

func TestAdjustCredits_ZeroAmountRejected(t *testing.T) {
	store := &fakeAdminStore{
		user: &models.User{ID: uuid.New(), Role: models.RoleClient, Credits: 3},
	}
	router := newAdminRouter(store)

	path := fmt.Sprintf("/api/admin/users/%s/credits", store.user.ID)
	w := postJSON(router, path, `{"amount":0,"reason":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.adjusts)
}
