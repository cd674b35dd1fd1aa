package handlers

import (
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/company"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	svc *application.CompanyService
}

func NewCompanyHandler(svc *application.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// Create godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param input body company.CreateCompanyInput true "Company info"
// @Success 201 {object} response.CreatedResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var input company.CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("name and email are required"))
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
// @Summary List active companies with their members
// @Tags companies
// @Produce json
// @Success 200 {object} map[string][]company.CompanyView
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	views, err := h.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": views})
}

func (h *CompanyHandler) Get(c *gin.Context) {
	view, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var input company.UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	if err := h.svc.Update(c.Param("id"), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Company updated"})
}

// Delete godoc
// @Summary Deactivate a company
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.svc.Deactivate(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Company deleted"})
}

// AddUser godoc
// @Summary Add a member to a company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param input body user.CreateUserInput true "Member info"
// @Success 201 {object} response.CreatedResponse
// @Router /companies/{id}/users [post]
func (h *CompanyHandler) AddUser(c *gin.Context) {
	var input user.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("name and email are required"))
		return
	}

	u, err := h.svc.AddUser(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.CreatedResponse{ID: u.ID})
}

func (h *CompanyHandler) ListUsers(c *gin.Context) {
	members, err := h.svc.ListUsers(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": members})
}

func (h *CompanyHandler) UpdateUser(c *gin.Context) {
	var input user.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	if err := h.svc.UpdateUser(c.Param("id"), c.Param("userId"), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "User updated"})
}

func (h *CompanyHandler) RemoveUser(c *gin.Context) {
	if err := h.svc.RemoveUser(c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "User removed"})
}
