package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"estiloplus-backend/internal/config"
	"estiloplus-backend/internal/handlers"
)

func TestGetConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		SupabaseURL:     "https://project.supabase.co",
		SupabaseAnonKey: "anon-key",
	}

	router := gin.New()
	router.GET("/api/config", handlers.NewConfigHandler(cfg).GetConfig)

	req, _ := http.NewRequest("GET", "/api/config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://project.supabase.co")
	assert.Contains(t, w.Body.String(), "anon-key")
}
