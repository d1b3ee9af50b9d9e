package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

// DefaultPrompt is the built-in template used when no prompt row is active.
const DefaultPrompt = `Generate a realistic image of the person in the first image wearing the clothing shown in the second image.
Keep the person's face, body shape, and pose consistent.
The clothing should fit naturally on the person's body.
Maintain the same background and lighting from the original photo.
The result should look like a real photograph, not a composite.`

// TryOnCost is the credit price of one generation.
const TryOnCost = 1

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// GenerationStore is the slice of the datastore the workflow needs.
// *supabase.DatabaseClient satisfies it.
type GenerationStore interface {
	GetUser(userID uuid.UUID) (*models.User, error)
	GetProduct(productID uuid.UUID) (*models.Product, error)
	GetActivePrompt() (*models.Prompt, error)
	DebitCredits(userID uuid.UUID, amount int) (int, error)
	CreateGeneratedImage(img *models.GeneratedImage) error
}

// Composer produces one composite image from a subject photo, a garment
// photo and an instruction. *gemini.Client satisfies it.
type Composer interface {
	GenerateTryOn(ctx context.Context, userImageURL, clothingImageURL, prompt string) ([]byte, string, error)
}

// Uploader persists generated bytes and returns a public URL.
// *supabase.StorageClient satisfies it.
type Uploader interface {
	UploadGeneratedImage(userID uuid.UUID, data []byte, contentType string) (string, error)
}

// GenerationService runs the credit-metered try-on workflow: balance check,
// garment resolution, prompt resolution, composition, upload, debit,
// artifact record. No retries; a failure aborts the request, and nothing
// before the debit needs compensation.
type GenerationService struct {
	store    GenerationStore
	composer Composer
	uploader Uploader
}

func NewGenerationService(store GenerationStore, composer Composer, uploader Uploader) *GenerationService {
	return &GenerationService{
		store:    store,
		composer: composer,
		uploader: uploader,
	}
}

// TryOnInput targets either a catalog product (ProductID set) or a directly
// supplied garment image URL.
type TryOnInput struct {
	UserID           uuid.UUID
	UserImageURL     string
	ProductID        uuid.NullUUID
	ClothingImageURL string
}

type TryOnResult struct {
	ImageURL         string
	CreditsRemaining int
}

func (s *GenerationService) TryOn(ctx context.Context, in TryOnInput) (*TryOnResult, error) {
	user, err := s.store.GetUser(in.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Credits < TryOnCost {
		return nil, supabase.ErrInsufficientCredits
	}

	clothingURL := in.ClothingImageURL
	if in.ProductID.Valid {
		product, err := s.store.GetProduct(in.ProductID.UUID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		clothingURL = product.ImageURL
	}

	promptText := DefaultPrompt
	if active, err := s.store.GetActivePrompt(); err != nil {
		return nil, err
	} else if active != nil {
		promptText = active.Content
	}

	data, contentType, err := s.composer.GenerateTryOn(ctx, in.UserImageURL, clothingURL, promptText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate try-on image: %w", err)
	}

	imageURL, err := s.uploader.UploadGeneratedImage(user.ID, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload generated image: %w", err)
	}

	remaining, err := s.store.DebitCredits(user.ID, TryOnCost)
	if err != nil {
		// The account can disappear between the lookup and the debit.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	artifact := &models.GeneratedImage{
		UserID:            user.ID,
		ProductID:         in.ProductID,
		OriginalImageURL:  in.UserImageURL,
		GeneratedImageURL: imageURL,
		PromptUsed:        promptText,
	}
	if err := s.store.CreateGeneratedImage(artifact); err != nil {
		return nil, err
	}

	return &TryOnResult{
		ImageURL:         imageURL,
		CreditsRemaining: remaining,
	}, nil
}
