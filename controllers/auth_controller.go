package controllers

import (
	"ReframeGo/config"
	"ReframeGo/models"
	"ReframeGo/store"
	"ReframeGo/utils"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthController handles signup and login.
type AuthController struct {
	store *store.EventStore
}

func NewAuthController(st *store.EventStore) *AuthController {
	return &AuthController{store: st}
}

// Signup creates a new account with a bcrypt-hashed password.
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := models.User{
		ID:           utils.GenerateID(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := ac.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		config.Logger.Errorw("user creation failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

// GetUser returns the authenticated user's account.
func (ac *AuthController) GetUser(c *gin.Context) {
	uid := c.GetString("uid")

	user, err := ac.store.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		config.Logger.Errorw("user lookup failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// Login verifies the password and issues a JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.store.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		config.Logger.Errorw("user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": models.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}
