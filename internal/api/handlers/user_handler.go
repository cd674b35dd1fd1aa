package handlers

import (
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	auth *application.AuthService
	svc  *application.UserService
}

func NewUserHandler(auth *application.AuthService, svc *application.UserService) *UserHandler {
	return &UserHandler{auth: auth, svc: svc}
}

// Create godoc
// @Summary Create an account on behalf of a user
// @Tags users
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "Account info"
// @Success 201 {object} response.MessageResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var input user.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("email and password are required"))
		return
	}

	if err := h.auth.Register(input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.MessageResponse{Message: "User created"})
}

// List godoc
// @Summary List users, optionally filtered by role
// @Tags users
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {object} map[string][]user.UserView
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.svc.List(c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

type oversightRequest struct {
	CompanyIDs []string `json:"company_ids"`
}

// SetOversight godoc
// @Summary Replace the oversight company set of a manager or accountant
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param input body oversightRequest true "Company IDs"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /users/{id}/oversight [put]
func (h *UserHandler) SetOversight(c *gin.Context) {
	var input oversightRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("company_ids required"))
		return
	}

	if err := h.svc.SetOversight(c.Param("id"), input.CompanyIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Oversight updated"})
}
