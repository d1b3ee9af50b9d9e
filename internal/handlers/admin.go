package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

// AdminStore is the slice of the datastore the back-office needs.
// *supabase.DatabaseClient satisfies it.
type AdminStore interface {
	ListUsers() ([]models.User, error)
	UpdateUser(userID uuid.UUID, name, role *string, credits *int) (*models.User, error)
	DeleteUser(userID uuid.UUID) error
	AdjustCredits(userID uuid.UUID, amount int) (*models.User, error)
	ListStores() ([]models.Store, error)
	DeleteStore(storeID uuid.UUID) error
	ListPackages() ([]models.CreditPackage, error)
	CreatePackage(req models.CreatePackageRequest) (*models.CreditPackage, error)
	UpdatePackage(packageID uuid.UUID, req models.UpdatePackageRequest) (*models.CreditPackage, error)
	DeletePackage(packageID uuid.UUID) error
	GetStats() (*models.StatsResponse, error)
}

// AdminHandler serves the back-office surface. The auth client is optional;
// without it user deletion skips the GoTrue side.
type AdminHandler struct {
	dbClient   AdminStore
	authClient *supabase.Client
}

func NewAdminHandler(dbClient AdminStore, authClient *supabase.Client) *AdminHandler {
	return &AdminHandler{
		dbClient:   dbClient,
		authClient: authClient,
	}
}

// ListUsers godoc
// @Summary     List all users
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.UserResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	users, err := h.dbClient.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list users",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, models.NewUserResponse(u))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateUser godoc
// @Summary     Update a user
// @Description Partial update of name, role and credits
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                        true "User ID"
// @Param       request body models.AdminUpdateUserRequest true "Fields to change"
// @Success     200 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Role != nil && !models.ValidRole(*req.Role) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "role inválida"})
		return
	}

	if req.Credits != nil && *req.Credits < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "credits não pode ser negativo"})
		return
	}

	user, err := h.dbClient.UpdateUser(userID, req.Name, req.Role, req.Credits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update user",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(*user))
}

// DeleteUser godoc
// @Summary     Delete a user
// @Description Deletes the account row; stores, products, artifacts and receipts cascade. The GoTrue auth user is deleted best effort.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "User ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.dbClient.DeleteUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete user",
			Message: err.Error(),
		})
		return
	}

	if h.authClient != nil {
		if err := h.authClient.DeleteAuthUser(userID); err != nil {
			log.Printf("Failed to delete auth user %s: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// AdjustCredits godoc
// @Summary     Adjust a user's credit balance
// @Description Applies a signed adjustment clamped at zero. Positive amounts also write a zero-paid receipt into the purchase history.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                      true "User ID"
// @Param       request body models.AdjustCreditsRequest true "Amount and reason"
// @Success     200 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/users/{id}/credits [post]
func (h *AdminHandler) AdjustCredits(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Amount == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "amount não pode ser zero"})
		return
	}

	user, err := h.dbClient.AdjustCredits(userID, req.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to adjust credits",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(*user))
}

// ListStores godoc
// @Summary     List all stores
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.StoreResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/stores [get]
func (h *AdminHandler) ListStores(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	stores, err := h.dbClient.ListStores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list stores",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.StoreResponse, 0, len(stores))
	for _, s := range stores {
		response = append(response, models.NewStoreResponse(s))
	}

	c.JSON(http.StatusOK, response)
}

// DeleteStore godoc
// @Summary     Delete a store
// @Description Removes the store and, by cascade, its products
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Store ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/stores/{id} [delete]
func (h *AdminHandler) DeleteStore(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid store id"})
		return
	}

	if err := h.dbClient.DeleteStore(storeID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete store",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// ListPackages godoc
// @Summary     List all credit packages
// @Description Includes inactive packages, unlike the public listing
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.CreditPackageResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/credit-packages [get]
func (h *AdminHandler) ListPackages(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	packages, err := h.dbClient.ListPackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list credit packages",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.CreditPackageResponse, 0, len(packages))
	for _, p := range packages {
		response = append(response, models.NewCreditPackageResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

// CreatePackage godoc
// @Summary     Create a credit package
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreatePackageRequest true "Package fields"
// @Success     201 {object} models.CreditPackageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/credit-packages [post]
func (h *AdminHandler) CreatePackage(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Credits <= 0 || req.PriceInCents <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name, credits e priceInCents são obrigatórios"})
		return
	}

	pkg, err := h.dbClient.CreatePackage(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create credit package",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewCreditPackageResponse(*pkg))
}

// UpdatePackage godoc
// @Summary     Update a credit package
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                      true "Package ID"
// @Param       request body models.UpdatePackageRequest true "Fields to change"
// @Success     200 {object} models.CreditPackageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/credit-packages/{id} [patch]
func (h *AdminHandler) UpdatePackage(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid package id"})
		return
	}

	var req models.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	pkg, err := h.dbClient.UpdatePackage(packageID, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Pacote não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update credit package",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewCreditPackageResponse(*pkg))
}

// DeletePackage godoc
// @Summary     Delete a credit package
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Package ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/credit-packages/{id} [delete]
func (h *AdminHandler) DeletePackage(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid package id"})
		return
	}

	if err := h.dbClient.DeletePackage(packageID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete credit package",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// GetStats godoc
// @Summary     Platform totals
// @Description User counts per role, stores, products, generated images and credits in circulation
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.StatsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	stats, err := h.dbClient.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get stats",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, *stats)
}
