package handlers

import (
	"context"
	"errors"
	"net/http"

	"northwind-ai-api/internal/auth"
	"northwind-ai-api/internal/database"
	"northwind-ai-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserStore is the accounts table as seen by login and registration.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// AccountHandler issues tokens for the customer listing gate.
type AccountHandler struct {
	Users  UserStore
	Tokens *auth.TokenManager
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,max=50"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"max=100"`
}

// --- POST: /login ---
func (h *AccountHandler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindUserByUsername(ctx, input.Username)
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			zerolog.Ctx(ctx).Error().Err(err).Msg("login lookup failed")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Username, user.DisplayName)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
	})
}

// --- POST: /register (only mounted when ALLOW_REGISTRATION=true) ---
func (h *AccountHandler) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		DisplayName:  input.DisplayName,
		PasswordHash: hashedPassword,
	}
	if err := h.Users.CreateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!"})
}
