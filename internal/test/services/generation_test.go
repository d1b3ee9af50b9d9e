package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/services"
	"estiloplus-backend/internal/supabase"
)

type fakeGenerationStore struct {
	user      *models.User
	product   *models.Product
	prompt    *models.Prompt
	debitErr  error
	debits    []int
	artifacts []*models.GeneratedImage
}

func (f *fakeGenerationStore) GetUser(userID uuid.UUID) (*models.User, error) {
	if f.user == nil {
		return nil, fmt.Errorf("failed to get user: %w", sql.ErrNoRows)
	}
	return f.user, nil
}

func (f *fakeGenerationStore) GetProduct(productID uuid.UUID) (*models.Product, error) {
	if f.product == nil {
		return nil, fmt.Errorf("failed to get product: %w", sql.ErrNoRows)
	}
	return f.product, nil
}

func (f *fakeGenerationStore) GetActivePrompt() (*models.Prompt, error) {
	return f.prompt, nil
}

func (f *fakeGenerationStore) DebitCredits(userID uuid.UUID, amount int) (int, error) {
	if f.debitErr != nil {
		return 0, f.debitErr
	}
	if f.user.Credits < amount {
		return 0, supabase.ErrInsufficientCredits
	}
	f.user.Credits -= amount
	f.debits = append(f.debits, amount)
	return f.user.Credits, nil
}

func (f *fakeGenerationStore) CreateGeneratedImage(img *models.GeneratedImage) error {
	f.artifacts = append(f.artifacts, img)
	return nil
}

type fakeComposer struct {
	lastPrompt string
	err        error
}

func (f *fakeComposer) GenerateTryOn(ctx context.Context, userImageURL, clothingImageURL, prompt string) ([]byte, string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("png-bytes"), "image/png", nil
}

type fakeUploader struct {
	uploads int
	err     error
}

func (f *fakeUploader) UploadGeneratedImage(userID uuid.UUID, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return "https://cdn.example.com/generated/result.png", nil
}

func newTestUser(credits int) *models.User {
	return &models.User{
		ID:      uuid.New(),
		Email:   "cliente@example.com",
		Name:    "Cliente",
		Role:    models.RoleClient,
		Credits: credits,
	}
}

func TestTryOn_DebitsOneCreditAndRecordsArtifact(t *testing.T) {
	user := newTestUser(3)
	product := &models.Product{ID: uuid.New(), ImageURL: "https://example.com/dress.jpg"}
	store := &fakeGenerationStore{user: user, product: product}
	composer := &fakeComposer{}
	uploader := &fakeUploader{}

	svc := services.NewGenerationService(store, composer, uploader)
	result, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:       user.ID,
		UserImageURL: "https://example.com/me.jpg",
		ProductID:    uuid.NullUUID{UUID: product.ID, Valid: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/generated/result.png", result.ImageURL)
	assert.Equal(t, 2, result.CreditsRemaining)
	assert.Equal(t, []int{1}, store.debits)

	require.Len(t, store.artifacts, 1)
	artifact := store.artifacts[0]
	assert.Equal(t, user.ID, artifact.UserID)
	assert.Equal(t, product.ID, artifact.ProductID.UUID)
	assert.Equal(t, "https://example.com/me.jpg", artifact.OriginalImageURL)
	assert.Equal(t, result.ImageURL, artifact.GeneratedImageURL)
}

func TestTryOn_InsufficientCredits(t *testing.T) {
	store := &fakeGenerationStore{user: newTestUser(0)}
	composer := &fakeComposer{}
	uploader := &fakeUploader{}

	svc := services.NewGenerationService(store, composer, uploader)
	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           store.user.ID,
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	assert.ErrorIs(t, err, supabase.ErrInsufficientCredits)
	assert.Empty(t, store.debits)
	assert.Empty(t, store.artifacts)
	assert.Zero(t, uploader.uploads)
}

func TestTryOn_UserNotFound(t *testing.T) {
	store := &fakeGenerationStore{}
	svc := services.NewGenerationService(store, &fakeComposer{}, &fakeUploader{})

	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           uuid.New(),
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestTryOn_UserDeletedBeforeDebit(t *testing.T) {
	store := &fakeGenerationStore{
		user:     newTestUser(3),
		debitErr: fmt.Errorf("failed to debit credits: %w", sql.ErrNoRows),
	}
	svc := services.NewGenerationService(store, &fakeComposer{}, &fakeUploader{})

	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           store.user.ID,
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.NotErrorIs(t, err, supabase.ErrInsufficientCredits)
}

func TestTryOn_ProductNotFound(t *testing.T) {
	store := &fakeGenerationStore{user: newTestUser(5)}
	svc := services.NewGenerationService(store, &fakeComposer{}, &fakeUploader{})

	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:       store.user.ID,
		UserImageURL: "https://example.com/me.jpg",
		ProductID:    uuid.NullUUID{UUID: uuid.New(), Valid: true},
	})

	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Empty(t, store.debits)
}

func TestTryOn_FallbackPromptWhenNoneActive(t *testing.T) {
	store := &fakeGenerationStore{user: newTestUser(2)}
	composer := &fakeComposer{}

	svc := services.NewGenerationService(store, composer, &fakeUploader{})
	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           store.user.ID,
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, services.DefaultPrompt, composer.lastPrompt)
	require.Len(t, store.artifacts, 1)
	assert.Equal(t, services.DefaultPrompt, store.artifacts[0].PromptUsed)
}

func TestTryOn_ActivePromptUsed(t *testing.T) {
	store := &fakeGenerationStore{
		user:   newTestUser(2),
		prompt: &models.Prompt{ID: uuid.New(), Content: "Show {user_image} wearing {clothing_image}.", IsActive: true},
	}
	composer := &fakeComposer{}

	svc := services.NewGenerationService(store, composer, &fakeUploader{})
	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           store.user.ID,
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, store.prompt.Content, composer.lastPrompt)
}

func TestTryOn_ComposerFailureSkipsDebit(t *testing.T) {
	store := &fakeGenerationStore{user: newTestUser(2)}
	composer := &fakeComposer{err: errors.New("model unavailable")}
	uploader := &fakeUploader{}

	svc := services.NewGenerationService(store, composer, uploader)
	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           store.user.ID,
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	assert.Error(t, err)
	assert.Empty(t, store.debits)
	assert.Empty(t, store.artifacts)
	assert.Zero(t, uploader.uploads)
}

func TestTryOn_UploadFailureSkipsDebit(t *testing.T) {
	store := &fakeGenerationStore{user: newTestUser(2)}
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}

	svc := services.NewGenerationService(store, &fakeComposer{}, uploader)
	_, err := svc.TryOn(context.Background(), services.TryOnInput{
		UserID:           store.user.ID,
		UserImageURL:     "https://example.com/me.jpg",
		ClothingImageURL: "https://example.com/dress.jpg",
	})

	assert.Error(t, err)
	assert.Empty(t, store.debits)
	assert.Empty(t, store.artifacts)
}
