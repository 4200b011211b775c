package handlers

import (
	"net/http"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"
	"casa_arbol_gateway/internal/session"
	"casa_arbol_gateway/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes login, logout and identity endpoints.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	cookieValue, sess, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, cookieValue, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"email": sess.UserEmail, "expires_at": sess.ExpiresAt})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

type signupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName *string `json:"full_name"`
}

// Signup registers a new account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := h.service.Signup(c.Request.Context(), backend.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type activateOrgRequest struct {
	OrganizationID string `json:"organization_id" binding:"required"`
}

// ActivateOrganization sets the active organization for the session.
func (h *AuthHandler) ActivateOrganization(c *gin.Context) {
	var req activateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.service.ActivateOrganization(c.Request.Context(), req.OrganizationID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization_id": req.OrganizationID})
}

// ListUsers lists accounts (superuser only upstream).
func (h *AuthHandler) ListUsers(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListUsers(c.Request.Context(), backend.ListUsersParams{Skip: skip, Limit: limit})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// DeleteUser removes an account.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User deleted", map[string]interface{}{"user_id": c.Param("user_id")})
	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
