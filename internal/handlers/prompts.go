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

type PromptsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewPromptsHandler(dbClient *supabase.DatabaseClient) *PromptsHandler {
	return &PromptsHandler{dbClient: dbClient}
}

// ListPrompts godoc
// @Summary     List prompt templates
// @Description Returns all prompt templates, newest first
// @Tags        prompts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.PromptResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/prompts [get]
func (h *PromptsHandler) ListPrompts(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	prompts, err := h.dbClient.ListPrompts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list prompts",
			Message: err.Error(),
		})
		return
	}

	response := make([]models.PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		response = append(response, models.NewPromptResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

// CreatePrompt godoc
// @Summary     Create a prompt template
// @Description Creates a template. Activating it deactivates every other template in the same transaction.
// @Tags        prompts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreatePromptRequest true "Prompt fields"
// @Success     201 {object} models.PromptResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/prompts [post]
func (h *PromptsHandler) CreatePrompt(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name e content são obrigatórios"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	prompt, err := h.dbClient.CreatePrompt(req.Name, req.Content, isActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create prompt",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewPromptResponse(*prompt))
}

// UpdatePrompt godoc
// @Summary     Update a prompt template
// @Description Applies a partial update. Setting isActive true deactivates every other template.
// @Tags        prompts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                     true "Prompt ID"
// @Param       request body models.UpdatePromptRequest true "Fields to change"
// @Success     200 {object} models.PromptResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/prompts/{id} [patch]
func (h *PromptsHandler) UpdatePrompt(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	promptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid prompt id"})
		return
	}

	var req models.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	prompt, err := h.dbClient.UpdatePrompt(promptID, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Prompt não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update prompt",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewPromptResponse(*prompt))
}

// DeletePrompt godoc
// @Summary     Delete a prompt template
// @Tags        prompts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Prompt ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/prompts/{id} [delete]
func (h *PromptsHandler) DeletePrompt(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	promptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid prompt id"})
		return
	}

	if err := h.dbClient.DeletePrompt(promptID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete prompt",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
