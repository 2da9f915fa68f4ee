package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"prodcatalog/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh-token", h.RefreshToken)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/revoke-token", h.RevokeToken)
		authGroup.POST("/logout", h.Logout)
	}
	protected.GET("/users/:id", h.GetUserByID)
}

// Register creates a new account and returns the first token pair.
// @Summary		Register a new user
// @Description	Creates an account with a unique username and email, hashes the password and returns access and refresh tokens together with a user summary.
// @Tags		Authentication
// @Param		request	body	RegisterRequest	true	"Registration data (username, email, password)"
// @Success		201	{object}	map[string]interface{} "User created, token pair returned"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		409	{object}	map[string]interface{} "Email or username already taken"
// @Failure		500	{object}	map[string]interface{} "Server error"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrDuplicateUsername):
			response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "This username is already taken")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login authenticates a user and returns a token pair.
// @Summary		Log in
// @Description	Verifies email and password and returns access and refresh tokens. Unknown email and wrong password produce the same error.
// @Tags		Authentication
// @Param		request	body	LoginRequest	true	"Credentials (email, password)"
// @Success		200	{object}	map[string]interface{} "Token pair returned"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Invalid email or password"
// @Failure		500	{object}	map[string]interface{} "Server error"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RefreshToken exchanges a refresh token for a new pair.
// @Summary		Refresh tokens
// @Description	Rotates the presented refresh token: the old token is revoked and a fresh access+refresh pair is returned. Revoked, expired and unknown tokens are all rejected identically.
// @Tags		Authentication
// @Param		request	body	RefreshTokenRequest	true	"The refresh token"
// @Success		200	{object}	map[string]interface{} "New token pair"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Invalid refresh token"
// @Failure		500	{object}	map[string]interface{} "Server error"
// @Router		/auth/refresh-token [POST]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token is invalid")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh tokens")
		return
	}

	response.Success(c, http.StatusOK, pair)
}

// RevokeToken revokes a refresh token.
// @Summary		Revoke a refresh token
// @Description	Marks the refresh token revoked. Succeeds even when the token was never issued.
// @Tags		Authentication
// @Security	BearerAuth
// @Param		request	body	RefreshTokenRequest	true	"The refresh token"
// @Success		200	{object}	map[string]interface{} "Token revoked"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Authentication required"
// @Failure		500	{object}	map[string]interface{} "Server error"
// @Router		/auth/revoke-token [POST]
func (h *Handler) RevokeToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "REVOKE_FAILED", "Failed to revoke token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Token revoked successfully"})
}

// Logout revokes the session's refresh token.
// @Summary		Log out
// @Description	Revokes the presented refresh token if one is given. Always reports success.
// @Tags		Authentication
// @Security	BearerAuth
// @Param		request	body	LogoutRequest	true	"The refresh token (may be empty)"
// @Success		200	{object}	map[string]interface{} "Logged out"
// @Failure		401	{object}	map[string]interface{} "Authentication required"
// @Failure		500	{object}	map[string]interface{} "Server error"
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an absent body is treated like an empty token
		req.RefreshToken = ""
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetUserByID returns a user's public profile.
// @Summary		Get user by id
// @Description	Returns the public summary (id, username, email, last login) for a user.
// @Tags		Users
// @Security	BearerAuth
// @Param		id	path	string	true	"User id (UUID)"
// @Success		200	{object}	map[string]interface{} "User summary"
// @Failure		400	{object}	map[string]interface{} "Invalid id"
// @Failure		401	{object}	map[string]interface{} "Authentication required"
// @Failure		404	{object}	map[string]interface{} "User not found"
// @Router		/users/{id} [GET]
func (h *Handler) GetUserByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
