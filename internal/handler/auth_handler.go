package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Register handles POST /auth/register. The new user joins the caller's
// company, only admins may call it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}
