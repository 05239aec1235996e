// internal/handlers/auth_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/authz"
	"github.com/nazgool97/salon-bot-sub000/internal/config"
	"github.com/nazgool97/salon-bot-sub000/internal/middleware"
	"github.com/nazgool97/salon-bot-sub000/internal/models"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues JWTs for the REST façade. Real identity verification
// (the signed Telegram init payload, per spec.md §1) happens upstream of
// this handler; here we only resolve-or-provision the internal user row
// and mint a token an already-authenticated caller can use against the
// rest of the API.
type AuthHandler struct {
	users       *repository.UserRepository
	authz       *authz.Authorizer
	jwtSecret   string
	jwtExpiry   time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *repository.UserRepository, az *authz.Authorizer, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{users: users, authz: az, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

// LoginRequest identifies the caller by their messaging-platform external
// id, upserting the User row on first sight.
type LoginRequest struct {
	ExternalID int64   `json:"external_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Username   *string `json:"username,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Locale     *string `json:"locale,omitempty"`
}

// Login godoc
// @Summary Resolve or provision a user and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Caller identity"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := BindJSON[LoginRequest](c)
	if !ok {
		return
	}

	user, err := h.users.Upsert(c.Request.Context(), &models.User{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Locale:     req.Locale,
	})
	if err != nil {
		RespondInternalError(c, "resolve user", err)
		return
	}

	role := config.RoleClient
	ctx := c.Request.Context()
	if isMaster, _ := h.authz.IsMaster(ctx, req.ExternalID); isMaster {
		role = config.RoleMaster
	}
	if isAdmin, _ := h.authz.IsAdmin(ctx, req.ExternalID); isAdmin {
		role = config.RoleAdmin
	}

	token, err := middleware.GenerateToken(int(user.ID), user.ExternalID, role, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		RespondInternalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data: gin.H{
			"token":   token,
			"user_id": user.ID,
			"role":    role,
		},
	})
}

// Refresh godoc
// @Summary Refresh an existing JWT
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) {
		RespondUnauthorized(c, "missing bearer token")
		return
	}
	token, err := middleware.RefreshToken(authHeader[len(prefix):], h.jwtSecret, h.jwtExpiry)
	if err != nil {
		RespondUnauthorized(c, "invalid or expired token")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: gin.H{"token": token}})
}
