package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expertbi/expertbi-api/internal/auth"
	"github.com/expertbi/expertbi-api/internal/db"
)

// AuthHandler handles registration, login and session lookup
type AuthHandler struct {
	common *CommonServices
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(common *CommonServices) *AuthHandler {
	return &AuthHandler{common: common}
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the standardized API response for a user
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// AuthResponse carries the issued token and the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(user db.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: timeOrNil(user.CreatedAt),
		LastLogin: timeOrNil(user.LastLogin),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		sendError(c, http.StatusBadRequest, "Password must be at least 8 characters", nil)
		return
	}

	if _, err := h.common.db.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		sendError(c, http.StatusConflict, "Email already registered", nil)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	user, err := h.common.db.CreateUser(c.Request.Context(), db.CreateUserParams{
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: hashed,
	})
	if err != nil {
		handleDBError(c, err, "User not found")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	sendSuccess(c, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.common.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		sendError(c, http.StatusUnauthorized, "Invalid email or password", err)
		return
	}
	if !auth.CheckPassword(user.HashedPassword, req.Password) {
		sendError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	user, err = h.common.db.UpdateUserLastLogin(c.Request.Context(), user.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to update login time", err)
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	sendSuccess(c, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	user, err := h.common.db.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleDBError(c, err, "User not found")
		return
	}

	sendSuccess(c, http.StatusOK, toUserResponse(user))
}
