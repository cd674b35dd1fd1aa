package handlers

import (
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc *application.CategoryService
}

func NewCategoryHandler(svc *application.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Create godoc
// @Summary Create a request category
// @Tags categories
// @Accept json
// @Produce json
// @Param input body category.CreateCategoryInput true "Category"
// @Success 201 {object} response.CreatedResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var input category.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("name is required"))
		return
	}

	created, err := h.svc.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.CreatedResponse{ID: created.ID})
}

// List godoc
// @Summary List request categories
// @Tags categories
// @Produce json
// @Success 200 {object} map[string][]category.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
