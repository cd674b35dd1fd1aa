package handlers

import (
	"net/http"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/config"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "Account info"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input user.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid input"))
		return
	}

	if err := h.svc.Register(input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.MessageResponse{Message: "Registered successfully"})
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Email and password are required"))
		return
	}

	identifier := input.Email
	if identifier == "" {
		identifier = input.Username
	}

	u, token, err := h.svc.Login(identifier, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:     token,
		Role:      string(u.Role),
		ExpiresIn: config.JwtExpiresIn,
	})
}

// Verify godoc
// @Summary Check token validity
// @Tags auth
// @Produce json
// @Success 200 {object} response.VerifyResponse
// @Failure 401 {object} response.VerifyResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := ""
	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		token = strings.TrimPrefix(authz, "Bearer ")
	} else if q := c.Query("token"); q != "" {
		token = q
	}

	claims, err := h.svc.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.VerifyResponse{Valid: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.VerifyResponse{Valid: true, Role: claims.Role})
}
