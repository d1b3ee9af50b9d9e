package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

type ProductsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProductsHandler(dbClient *supabase.DatabaseClient) *ProductsHandler {
	return &ProductsHandler{dbClient: dbClient}
}

// validImageURL accepts only http(s) URLs so javascript: and data: payloads
// never reach the catalog.
func validImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ListProducts godoc
// @Summary     List products
// @Description Returns the full catalog with each product's store attached
// @Tags        products
// @Accept      json
// @Produce     json
// @Success     200 {array} models.ProductResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	products, stores, err := h.dbClient.ListProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list products",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.ProductResponse, 0, len(products))
	for _, p := range products {
		resp := models.NewProductResponse(p)
		if store, ok := stores[p.StoreID]; ok {
			storeResp := models.NewStoreResponse(store)
			resp.Store = &storeResp
		}
		response = append(response, resp)
	}

	c.JSON(http.StatusOK, response)
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Adds a product to a store's catalog
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProductRequest true "Product fields"
// @Success     201 {object} models.ProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "storeId inválido"})
		return
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Nome do produto deve ter pelo menos 2 caracteres"})
		return
	}

	if !validImageURL(req.ImageURL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "imageUrl inválida"})
		return
	}

	if req.ProductURL != "" && !validImageURL(req.ProductURL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "productUrl inválida"})
		return
	}

	product, err := h.dbClient.CreateProduct(storeID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewProductResponse(*product))
}

// UpdateProduct godoc
// @Summary     Update a product
// @Description Applies a partial update to a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                      true "Product ID"
// @Param       request body models.UpdateProductRequest true "Fields to change"
// @Success     200 {object} models.ProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/products/{id} [patch]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Nome do produto deve ter pelo menos 2 caracteres"})
		return
	}

	if req.ImageURL != nil && !validImageURL(*req.ImageURL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "imageUrl inválida"})
		return
	}

	product, err := h.dbClient.UpdateProduct(productID, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Produto não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewProductResponse(*product))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Description Removes a product; generated images keep their rows with a null product reference
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Product ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.dbClient.DeleteProduct(productID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
