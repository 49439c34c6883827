package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/models"
)

type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// POST /login
//
// Exactly one of username or email identifies the account; supplying both or
// neither is rejected before the credentials are ever checked.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Username == "" && input.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": `Must provide either "username" or "email"`})
			return
		}
		if input.Username != "" && input.Email != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": `Cannot provide both "username" and "email"`})
			return
		}

		var user models.User
		query := db.Where("username = ?", input.Username)
		if input.Email != "" {
			query = db.Where("email = ?", input.Email)
		}
		if err := query.First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "No active account found with the given credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
			return
		}

		if !CheckPassword(input.Password, user.PasswordHash) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No active account found with the given credentials"})
			return
		}

		tokens, err := IssueTokenPair(user.ID, user.Username, user.IsStaff)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		now := time.Now()
		db.Model(&user).UpdateColumn("last_login", now)

		c.JSON(http.StatusOK, tokens)
	}
}
