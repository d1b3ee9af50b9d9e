package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

type StoresHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewStoresHandler(dbClient *supabase.DatabaseClient) *StoresHandler {
	return &StoresHandler{dbClient: dbClient}
}

// UpsertStore godoc
// @Summary     Create or update a store profile
// @Description One store per account. Posting again for the same user replaces the profile fields.
// @Tags        stores
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpsertStoreRequest true "Store fields"
// @Success     200 {object} models.StoreResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/stores [post]
func (h *StoresHandler) UpsertStore(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.UpsertStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userId inválido"})
		return
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Nome da loja deve ter pelo menos 2 caracteres"})
		return
	}

	store, err := h.dbClient.UpsertStore(userID, req.Name, req.Description, req.LogoURL, req.WebsiteURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save store",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewStoreResponse(*store))
}

// GetStoreByUser godoc
// @Summary     Get the store owned by a user
// @Tags        stores
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       userId path string true "User ID"
// @Success     200 {object} models.StoreResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/stores/user/{userId} [get]
func (h *StoresHandler) GetStoreByUser(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	store, err := h.dbClient.GetStoreByUserID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Loja não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get store",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewStoreResponse(*store))
}

// UpdateStore godoc
// @Summary     Update a store
// @Description Applies a partial update to a store profile
// @Tags        stores
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                    true "Store ID"
// @Param       request body models.UpdateStoreRequest true "Fields to change"
// @Success     200 {object} models.StoreResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/stores/{id} [patch]
func (h *StoresHandler) UpdateStore(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid store id"})
		return
	}

	var req models.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Nome da loja deve ter pelo menos 2 caracteres"})
		return
	}

	store, err := h.dbClient.UpdateStore(storeID, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Loja não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update store",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewStoreResponse(*store))
}
