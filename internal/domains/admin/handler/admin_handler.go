package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bestiespace-backend/internal/domains/admin/model"
	"bestiespace-backend/internal/domains/admin/service"
	"bestiespace-backend/internal/shared/middleware"
	"bestiespace-backend/internal/shared/response"
	"bestiespace-backend/pkg/logger"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Signup handles POST /auth/signup
func (h *AdminHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Account created successfully", auth)
}

// Login handles POST /auth/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Logged in successfully", auth)
}

// GetProfile handles GET /admin/profile
func (h *AdminHandler) GetProfile(c *gin.Context) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), adminID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", profile)
}

// UpdateProfile handles PUT /admin/profile. Name and email are immutable
// after signup and the photo changes through the upload flow, so this only
// tells the client what to use instead.
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	if _, ok := middleware.AdminIDFromContext(c); !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}
	response.Success(c, http.StatusOK,
		"Name and email cannot be changed. Use the password and profile photo endpoints to update credentials.", nil)
}

// UpdatePassword handles PUT /admin/password
func (h *AdminHandler) UpdatePassword(c *gin.Context) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), adminID, req); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated successfully", nil)
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		response.Conflict(c, "Email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, model.ErrWrongPassword):
		response.Unauthorized(c, "Current password is incorrect")
	case errors.Is(err, model.ErrAdminNotFound):
		response.NotFound(c, "Admin not found")
	default:
		logger.Error("admin handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
