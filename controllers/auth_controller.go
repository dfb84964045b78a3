package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/dto"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/utils"
)

func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		user := doc.UserByEmail(strings.ToLower(strings.TrimSpace(body.Email)))
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		ttl := a.Cfg.SessionTTL()
		token, err := utils.GenerateSessionToken(user.ID, user.Email, string(user.Role), a.Cfg.JWTSecret, ttl)
		if err != nil {
			a.Log.WithError(err).Error("failed to sign session token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		utils.SetSessionCookie(c, token, ttl, a.Cfg.CookieDomain, a.Cfg.CookieSecure)

		a.Log.WithField("email", user.Email).Info("Admin logged in")
		c.JSON(http.StatusOK, gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

func (a *App) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.ClearSessionCookie(c, a.Cfg.CookieDomain, a.Cfg.CookieSecure)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func (a *App) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		user := doc.UserByID(c.GetString("userID"))
		if user == nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

func requireAdmin(c *gin.Context) bool {
	if c.GetString("role") != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	return true
}

// CreateUser registers another admin account.
func (a *App) CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		var body dto.RegisterUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		now := time.Now().UTC()
		user := models.User{
			ID:           utils.NewID(),
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			if doc.UserByEmail(email) != nil {
				return conflict("email already exists")
			}
			doc.Users = append(doc.Users, user)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// ChangeMyPassword also ends the current session.
func (a *App) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.CurrentPassword == body.NewPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "new password must be different"})
			return
		}

		newHash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		userID := c.GetString("userID")
		err = database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			user := doc.UserByID(userID)
			if user == nil {
				return &apiError{status: http.StatusUnauthorized, message: "invalid user"}
			}
			if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
				return &apiError{status: http.StatusUnauthorized, message: "invalid current password"}
			}
			user.PasswordHash = newHash
			user.UpdatedAt = time.Now().UTC()
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		utils.ClearSessionCookie(c, a.Cfg.CookieDomain, a.Cfg.CookieSecure)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
