package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/payments"
)

var ErrPackageNotFound = errors.New("credit package not found")

// CheckoutStore is the slice of the datastore the checkout flow needs.
// *supabase.DatabaseClient satisfies it.
type CheckoutStore interface {
	GetUser(userID uuid.UUID) (*models.User, error)
	GetPackage(packageID uuid.UUID) (*models.CreditPackage, error)
	SetStripeCustomerID(userID uuid.UUID, customerID string) error
	GrantPurchase(userID uuid.UUID, credits int, amountPaid int64, sessionID string) (bool, error)
}

// PaymentProvider is the slice of the Stripe client the flow needs.
// *payments.Client satisfies it.
type PaymentProvider interface {
	CreateCustomer(email, userID string) (string, error)
	CreateCheckoutSession(req payments.CheckoutSessionRequest) (string, error)
}

// CheckoutService sells credit packages through hosted checkout and settles
// completed sessions into the ledger exactly once.
type CheckoutService struct {
	store    CheckoutStore
	provider PaymentProvider
	baseURL  string
}

func NewCheckoutService(store CheckoutStore, provider PaymentProvider, baseURL string) *CheckoutService {
	return &CheckoutService{
		store:    store,
		provider: provider,
		baseURL:  baseURL,
	}
}

// CreateSession opens a checkout for one package. The Stripe customer is
// created lazily on the first purchase and persisted for reuse.
func (s *CheckoutService) CreateSession(userID, packageID uuid.UUID) (string, error) {
	pkg, err := s.store.GetPackage(packageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPackageNotFound
		}
		return "", err
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	customerID := user.StripeCustomerID.String
	if customerID == "" {
		customerID, err = s.provider.CreateCustomer(user.Email, user.ID.String())
		if err != nil {
			return "", err
		}
		if err := s.store.SetStripeCustomerID(user.ID, customerID); err != nil {
			return "", err
		}
	}

	return s.provider.CreateCheckoutSession(payments.CheckoutSessionRequest{
		CustomerID:  customerID,
		Name:        pkg.Name,
		Description: fmt.Sprintf("%d créditos para o provador virtual", pkg.Credits),
		UnitAmount:  pkg.PriceInCents,
		SuccessURL:  s.baseURL + "/client?payment=success",
		CancelURL:   s.baseURL + "/client?payment=cancelled",
		Metadata: map[string]string{
			"userId":    user.ID.String(),
			"packageId": pkg.ID.String(),
			"credits":   strconv.Itoa(pkg.Credits),
		},
	})
}

// HandleCheckoutCompleted settles one completed session. The session id keys
// the receipt, so webhook redelivery cannot credit twice.
func (s *CheckoutService) HandleCheckoutCompleted(sessionID string, amountTotal int64, metadata map[string]string) error {
	userID, err := uuid.Parse(metadata["userId"])
	if err != nil {
		return fmt.Errorf("invalid userId in session metadata: %w", err)
	}

	credits, err := strconv.Atoi(metadata["credits"])
	if err != nil || credits <= 0 {
		return fmt.Errorf("invalid credits in session metadata: %q", metadata["credits"])
	}

	granted, err := s.store.GrantPurchase(userID, credits, amountTotal, sessionID)
	if err != nil {
		return err
	}
	if !granted {
		log.Printf("Checkout session %s already settled, skipping", sessionID)
		return nil
	}

	log.Printf("Granted %d credits to user %s for session %s", credits, userID, sessionID)
	return nil
}
