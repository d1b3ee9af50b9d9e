package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"estiloplus-backend/internal/handlers"
	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/services"
	"estiloplus-backend/internal/supabase"
)

type stubStore struct {
	user    *models.User
	product *models.Product
}

func (s *stubStore) GetUser(userID uuid.UUID) (*models.User, error) {
	if s.user == nil {
		return nil, fmt.Errorf("failed to get user: %w", sql.ErrNoRows)
	}
	return s.user, nil
}

func (s *stubStore) GetProduct(productID uuid.UUID) (*models.Product, error) {
	if s.product == nil {
		return nil, fmt.Errorf("failed to get product: %w", sql.ErrNoRows)
	}
	return s.product, nil
}

func (s *stubStore) GetActivePrompt() (*models.Prompt, error) { return nil, nil }

func (s *stubStore) DebitCredits(userID uuid.UUID, amount int) (int, error) {
	if s.user.Credits < amount {
		return 0, supabase.ErrInsufficientCredits
	}
	s.user.Credits -= amount
	return s.user.Credits, nil
}

func (s *stubStore) CreateGeneratedImage(img *models.GeneratedImage) error { return nil }

type stubComposer struct{}

func (stubComposer) GenerateTryOn(ctx context.Context, userImageURL, clothingImageURL, prompt string) ([]byte, string, error) {
	return []byte("png"), "image/png", nil
}

type stubUploader struct{}

func (stubUploader) UploadGeneratedImage(userID uuid.UUID, data []byte, contentType string) (string, error) {
	return "https://cdn.example.com/result.png", nil
}

func newTryOnRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewGenerationService(store, stubComposer{}, stubUploader{})
	handler := handlers.NewGenerateHandler(svc)

	router := gin.New()
	router.POST("/api/generate-try-on", handler.TryOn)
	router.POST("/api/generate-try-on-local", handler.TryOnLocal)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTryOnHandler_Success(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleClient, Credits: 2}
	product := &models.Product{ID: uuid.New(), ImageURL: "https://example.com/dress.jpg"}
	router := newTryOnRouter(&stubStore{user: user, product: product})

	body := fmt.Sprintf(`{"productId":%q,"userId":%q,"userImageUrl":"https://example.com/me.jpg"}`,
		product.ID, user.ID)
	w := postJSON(router, "/api/generate-try-on", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/result.png")
	assert.Contains(t, w.Body.String(), `"creditsRemaining":1`)
}

func TestTryOnHandler_InsufficientCredits(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleClient, Credits: 0}
	router := newTryOnRouter(&stubStore{user: user})

	body := fmt.Sprintf(`{"clothingImageUrl":"https://example.com/dress.jpg","userId":%q,"userImageUrl":"https://example.com/me.jpg"}`, user.ID)
	w := postJSON(router, "/api/generate-try-on-local", body)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Créditos insuficientes")
}

func TestTryOnHandler_UserNotFound(t *testing.T) {
	router := newTryOnRouter(&stubStore{})

	body := fmt.Sprintf(`{"clothingImageUrl":"https://example.com/dress.jpg","userId":%q,"userImageUrl":"https://example.com/me.jpg"}`, uuid.New())
	w := postJSON(router, "/api/generate-try-on-local", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Usuário não encontrado")
}

func TestTryOnHandler_ProductNotFound(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleClient, Credits: 2}
	router := newTryOnRouter(&stubStore{user: user})

	body := fmt.Sprintf(`{"productId":%q,"userId":%q,"userImageUrl":"https://example.com/me.jpg"}`,
		uuid.New(), user.ID)
	w := postJSON(router, "/api/generate-try-on", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Produto não encontrado")
}

func TestTryOnHandler_InvalidIDs(t *testing.T) {
	router := newTryOnRouter(&stubStore{})

	w := postJSON(router, "/api/generate-try-on", `{"productId":"nope","userId":"nope","userImageUrl":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
